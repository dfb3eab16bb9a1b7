package service

import (
	"context"
	"time"

	"kiku/entities"
)

// StageStatus is a rotation stage with when it was last sprayed.
type StageStatus struct {
	entities.PesticideRotation
	LastSprayed *time.Time `json:"last_sprayed"`
}

type Overview struct {
	Stages []StageStatus `json:"stages"`
	// NextStage follows the most recently sprayed stage, wrapping around.
	// Empty when the program has no stages.
	NextStage string `json:"next_stage"`
}

type RotationService interface {
	Overview(ctx context.Context) (*Overview, error)
	Create(ctx context.Context, r *entities.PesticideRotation) error
	Update(ctx context.Context, r *entities.PesticideRotation) error
	Delete(ctx context.Context, id uint) error
	ReplaceAll(ctx context.Context, rows []entities.PesticideRotation) error
}
