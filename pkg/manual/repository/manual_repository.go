package repository

import (
	"context"

	"kiku/entities"
)

type ManualFilter struct {
	Stage string
	// Query matches work names by substring.
	Query string
}

type ManualRepository interface {
	List(ctx context.Context, f ManualFilter) ([]entities.WorkManual, error)
	FindByID(ctx context.Context, id uint) (*entities.WorkManual, error)
	// FindByName returns the lowest-id manual with exactly this work name.
	FindByName(ctx context.Context, name string) (*entities.WorkManual, error)
	RiskContaining(ctx context.Context, marker string, limit int) ([]entities.WorkManual, error)
	Create(ctx context.Context, m *entities.WorkManual) error
	Save(ctx context.Context, m *entities.WorkManual) error
	Delete(ctx context.Context, id uint) error
}
