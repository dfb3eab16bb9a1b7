package repository

import (
	"context"
	"time"

	"kiku/entities"
)

type ScheduleFilter struct {
	GreenhouseID *uint
	// From/To select bars overlapping the window; zero means unbounded.
	From, To time.Time
}

type ScheduleRepository interface {
	List(ctx context.Context, f ScheduleFilter) ([]entities.CropSchedule, error)
	FindByID(ctx context.Context, id uint) (*entities.CropSchedule, error)
	Create(ctx context.Context, s *entities.CropSchedule) error
	Update(ctx context.Context, s *entities.CropSchedule) error
	Delete(ctx context.Context, id uint) error
	// ReplaceForGreenhouse swaps every bar of a greenhouse for rows atomically.
	// It returns ErrNotFound for an unregistered greenhouse.
	ReplaceForGreenhouse(ctx context.Context, greenhouseID uint, rows []entities.CropSchedule) error

	// FindOpen returns the open bar with the latest start date, or ErrNotFound.
	FindOpen(ctx context.Context, greenhouseID uint) (*entities.CropSchedule, error)
	// Close sets the end date only if the bar is still open at version.
	// It reports false when another writer got there first.
	Close(ctx context.Context, id uint, version int, end time.Time) (bool, error)
	Transaction(ctx context.Context, fn func(ScheduleRepository) error) error
}
