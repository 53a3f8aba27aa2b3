package repository

import (
	"context"

	"evergraze/entities"
)

// RecordRepository stores rows of any tracked kind. Values are keyed by column
// name; callers have already checked them against the kind's schema.
type RecordRepository interface {
	Create(ctx context.Context, k entities.Kind, values map[string]string) (uint, error)
	Recent(ctx context.Context, k entities.Kind, limit int) ([]entities.Record, error)
	All(ctx context.Context, k entities.Kind) ([]entities.Record, error)
	FindByID(ctx context.Context, k entities.Kind, id uint) (*entities.Record, error)
	ByAnimal(ctx context.Context, k entities.Kind, animalID string) ([]entities.Record, error)
	UpdateByID(ctx context.Context, k entities.Kind, id uint, values map[string]string) error
	DeleteByID(ctx context.Context, k entities.Kind, id uint) error
}
