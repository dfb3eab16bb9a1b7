package repository

import (
	"context"
	"time"

	"kiku/entities"
)

type CycleFilter struct {
	GreenhouseID *uint
	// ActiveOn keeps cycles whose end date is unset or not before this date.
	ActiveOn *time.Time
}

type CycleRepository interface {
	List(ctx context.Context, f CycleFilter) ([]entities.CropCycle, error)
	FindByID(ctx context.Context, id uint) (*entities.CropCycle, error)
	Create(ctx context.Context, c *entities.CropCycle) error
	Update(ctx context.Context, c *entities.CropCycle) error
	Delete(ctx context.Context, id uint) error
}
