package contracts

import (
	"context"
	"flexera-service/internal/app/models"
)

type PractitionerRepository interface {
	FindByID(ctx context.Context, practitionerID string) (*models.Practitioner, error)
}
