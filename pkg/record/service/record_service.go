package service

import (
	"context"

	"evergraze/entities"
)

type RecordService interface {
	Create(ctx context.Context, k entities.Kind, fields map[string]string) (*entities.Record, error)
	ListRecent(ctx context.Context, k entities.Kind, limit int) ([]entities.Record, error)
	ListAll(ctx context.Context, k entities.Kind) ([]entities.Record, error)
	Manage(ctx context.Context) (*ManageView, error)
	Get(ctx context.Context, k entities.Kind, id uint) (*entities.Record, error)
	Update(ctx context.Context, k entities.Kind, id uint, fields map[string]string) (*entities.Record, error)
	Delete(ctx context.Context, k entities.Kind, id uint) error
}

// ManageView is every stored row, grouped by kind, oldest first.
type ManageView struct {
	Livestock    []entities.Record `json:"livestock"`
	Weights      []entities.Record `json:"weights"`
	Vaccinations []entities.Record `json:"vaccinations"`
}
