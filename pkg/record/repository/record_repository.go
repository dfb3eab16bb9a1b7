package repository

import (
	"context"
	"time"

	"kiku/entities"
)

// RecordFilter narrows a record listing. From is inclusive, To exclusive.
type RecordFilter struct {
	From         *time.Time
	To           *time.Time
	GreenhouseID *uint
	WorkName     string
	// NoteContains is a literal substring match on the note.
	NoteContains string
}

type RecordRepository interface {
	List(ctx context.Context, f RecordFilter) ([]entities.WorkRecord, error)
	FindByID(ctx context.Context, id uint) (*entities.WorkRecord, error)
	Create(ctx context.Context, r *entities.WorkRecord) error
	Save(ctx context.Context, r *entities.WorkRecord) error
	SetPhotoURL(ctx context.Context, id uint, url string) error
	Delete(ctx context.Context, id uint) error
}
