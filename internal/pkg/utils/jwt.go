package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// UserClaims are the identity claims issued by the external auth service.
// The contact fields feed the payment provider's billing data and may be
// empty.
type UserClaims struct {
	UserID string
	Role   string
	Name   string
	Email  string
	Phone  string
}

func ParseUserJWT(tokenString, secret string) (*UserClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return nil, fmt.Errorf("token missing user_id claim")
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	phone, _ := claims["phone"].(string)

	return &UserClaims{UserID: userID, Role: role, Name: name, Email: email, Phone: phone}, nil
}
