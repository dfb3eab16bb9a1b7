package service

import (
	"context"
	"io"
	"time"

	"kiku/entities"
	"kiku/pkg/record/repository"
)

// Photo is an image attached to a new record.
type Photo struct {
	Name        string
	ContentType string
	Data        []byte
}

type RecordService interface {
	List(ctx context.Context, f repository.RecordFilter) ([]entities.WorkRecord, error)
	Get(ctx context.Context, id uint) (*entities.WorkRecord, error)
	// Create stores the record, then attaches the photo and updates the
	// schedule. Those two steps never fail the call.
	Create(ctx context.Context, r *entities.WorkRecord, photo *Photo) error
	Update(ctx context.Context, r *entities.WorkRecord) error
	Delete(ctx context.Context, id uint) error
	// Export writes the records of [from, to) as an XLSX workbook.
	Export(ctx context.Context, from, to time.Time, w io.Writer) error
}
