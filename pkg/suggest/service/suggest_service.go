package service

import (
	"context"

	"kiku/entities"
	"kiku/pkg/suggest"
)

// Dashboard is the home screen payload.
type Dashboard struct {
	Date       string                `json:"date"`
	RiskAlerts []entities.WorkManual `json:"risk_alerts"`
	Tasks      []suggest.Suggestion  `json:"tasks"`
	// NextPesticideStage is empty when no rotation is configured.
	NextPesticideStage string `json:"next_pesticide_stage"`
}

type SuggestService interface {
	TodaysWork(ctx context.Context) ([]suggest.Suggestion, error)
	RiskAlerts(ctx context.Context) ([]entities.WorkManual, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}
