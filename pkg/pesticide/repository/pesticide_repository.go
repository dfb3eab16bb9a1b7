package repository

import (
	"context"

	"kiku/entities"
)

type RotationRepository interface {
	// List returns the program in spray order.
	List(ctx context.Context) ([]entities.PesticideRotation, error)
	FindByID(ctx context.Context, id uint) (*entities.PesticideRotation, error)
	Create(ctx context.Context, r *entities.PesticideRotation) error
	Save(ctx context.Context, r *entities.PesticideRotation) error
	Delete(ctx context.Context, id uint) error
	// ReplaceAll swaps the whole program for rows atomically.
	ReplaceAll(ctx context.Context, rows []entities.PesticideRotation) error
}
