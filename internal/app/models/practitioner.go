package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Practitioner struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Specialty string             `bson:"specialty,omitempty" json:"specialty,omitempty"`
	// Price is the per-session consultation fee snapshotted onto a slot at
	// reservation time.
	Price float64 `bson:"price" json:"price"`
}
