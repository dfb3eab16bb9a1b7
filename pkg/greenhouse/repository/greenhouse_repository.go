package repository

import (
	"context"

	"kiku/entities"
)

type GreenhouseRepository interface {
	List(ctx context.Context) ([]entities.Greenhouse, error)
	FindByID(ctx context.Context, id uint) (*entities.Greenhouse, error)
	FindByName(ctx context.Context, name string) (*entities.Greenhouse, error)
	Create(ctx context.Context, g *entities.Greenhouse) error
	Update(ctx context.Context, g *entities.Greenhouse) error
	Delete(ctx context.Context, id uint) error
}
