package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/cycle/repository"
)

type cycleRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CycleRepository { return &cycleRepo{db} }

func (r *cycleRepo) List(ctx context.Context, f repository.CycleFilter) ([]entities.CropCycle, error) {
	q := r.db.WithContext(ctx).Model(&entities.CropCycle{})
	if f.GreenhouseID != nil {
		q = q.Where("greenhouse_id = ?", *f.GreenhouseID)
	}
	var out []entities.CropCycle
	if err := q.Order("cycle_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	if f.ActiveOn == nil {
		return out, nil
	}
	// end date depends on IsParentStock, so filter in memory
	active := out[:0]
	for _, c := range out {
		if end := c.EndDate(); end == nil || !end.Before(*f.ActiveOn) {
			active = append(active, c)
		}
	}
	return active, nil
}

func (r *cycleRepo) FindByID(ctx context.Context, id uint) (*entities.CropCycle, error) {
	var c entities.CropCycle
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *cycleRepo) Create(ctx context.Context, c *entities.CropCycle) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cycleRepo) Update(ctx context.Context, c *entities.CropCycle) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.CropCycle{}).Where("cycle_id = ?", c.CycleID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperrors.ErrNotFound
		}
		return tx.Save(c).Error
	})
}

func (r *cycleRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.CropCycle{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
