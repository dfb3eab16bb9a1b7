package service

import (
	"context"

	"kiku/entities"
	"kiku/pkg/manual/repository"
)

type ManualService interface {
	List(ctx context.Context, f repository.ManualFilter) ([]entities.WorkManual, error)
	Get(ctx context.Context, id uint) (*entities.WorkManual, error)
	Create(ctx context.Context, m *entities.WorkManual) error
	UpdatePartial(ctx context.Context, id uint, patch ManualPatch) (*entities.WorkManual, error)
	Delete(ctx context.Context, id uint) error
}

// ManualPatch carries only the fields the client sent.
type ManualPatch struct {
	WorkName        *string  `json:"work_name"`
	TaskType        *string  `json:"task_type"`
	Stage           *string  `json:"stage"`
	Purpose         *string  `json:"purpose"`
	TimingStandard  *string  `json:"timing_standard"`
	ActionSteps     *string  `json:"action_steps"`
	RiskIfSkipped   *string  `json:"risk_if_skipped"`
	Impact          *string  `json:"impact"`
	RequiredTime10a *float64 `json:"required_time_10a"`
	Difficulty      *int     `json:"difficulty"`
}
