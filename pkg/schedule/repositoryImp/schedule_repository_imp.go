package repositoryImp

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/schedule/repository"
)

type schedRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ScheduleRepository { return &schedRepo{db} }

func (r *schedRepo) List(ctx context.Context, f repository.ScheduleFilter) ([]entities.CropSchedule, error) {
	q := r.db.WithContext(ctx).Model(&entities.CropSchedule{})
	if f.GreenhouseID != nil {
		q = q.Where("greenhouse_id = ?", *f.GreenhouseID)
	}
	if !f.To.IsZero() {
		q = q.Where("start_date < ?", f.To.UTC())
	}
	if !f.From.IsZero() {
		q = q.Where("(end_date IS NULL OR end_date >= ?)", f.From.UTC())
	}
	var out []entities.CropSchedule
	if err := q.Order("greenhouse_id ASC, start_date ASC, schedule_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *schedRepo) FindByID(ctx context.Context, id uint) (*entities.CropSchedule, error) {
	var s entities.CropSchedule
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *schedRepo) Create(ctx context.Context, s *entities.CropSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// Update bumps the version so an in-flight auto-update does not overwrite
// an edit made from the Gantt editor.
func (r *schedRepo) Update(ctx context.Context, s *entities.CropSchedule) error {
	res := r.db.WithContext(ctx).Model(&entities.CropSchedule{}).
		Where("schedule_id = ?", s.ScheduleID).
		UpdateColumns(map[string]any{
			"greenhouse_id": s.GreenhouseID,
			"stage":         s.Stage,
			"start_date":    s.StartDate.UTC(),
			"end_date":      utc(s.EndDate),
			"color":         s.Color,
			"batch_number":  s.BatchNumber,
			"version":       gorm.Expr("version + 1"),
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *schedRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.CropSchedule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *schedRepo) ReplaceForGreenhouse(ctx context.Context, greenhouseID uint, rows []entities.CropSchedule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.Greenhouse{}).Where("greenhouse_id = ?", greenhouseID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperrors.ErrNotFound
		}
		if err := tx.Where("greenhouse_id = ?", greenhouseID).Delete(&entities.CropSchedule{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].ScheduleID = 0
			rows[i].GreenhouseID = greenhouseID
			rows[i].Version = 0
		}
		return tx.Create(&rows).Error
	})
}

func (r *schedRepo) FindOpen(ctx context.Context, greenhouseID uint) (*entities.CropSchedule, error) {
	var s entities.CropSchedule
	err := r.db.WithContext(ctx).
		Where("greenhouse_id = ? AND end_date IS NULL", greenhouseID).
		Order("start_date DESC, schedule_id DESC").
		First(&s).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *schedRepo) Close(ctx context.Context, id uint, version int, end time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entities.CropSchedule{}).
		Where("schedule_id = ? AND version = ? AND end_date IS NULL", id, version).
		UpdateColumns(map[string]any{
			"end_date":   end.UTC(),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *schedRepo) Transaction(ctx context.Context, fn func(repository.ScheduleRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&schedRepo{db: tx})
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
