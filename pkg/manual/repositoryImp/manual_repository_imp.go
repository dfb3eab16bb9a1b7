package repositoryImp

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/manual/repository"
)

type manualRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ManualRepository { return &manualRepo{db} }

func (r *manualRepo) List(ctx context.Context, f repository.ManualFilter) ([]entities.WorkManual, error) {
	q := r.db.WithContext(ctx).Model(&entities.WorkManual{})
	if f.Stage != "" {
		q = q.Where("stage = ?", f.Stage)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		q = q.Where(`work_name LIKE ? ESCAPE '\'`, "%"+escapeLike(s)+"%")
	}
	var out []entities.WorkManual
	return out, q.Order("manual_id ASC").Find(&out).Error
}

func (r *manualRepo) FindByID(ctx context.Context, id uint) (*entities.WorkManual, error) {
	var m entities.WorkManual
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *manualRepo) FindByName(ctx context.Context, name string) (*entities.WorkManual, error) {
	var m entities.WorkManual
	if err := r.db.WithContext(ctx).Where("work_name = ?", name).Order("manual_id ASC").First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *manualRepo) RiskContaining(ctx context.Context, marker string, limit int) ([]entities.WorkManual, error) {
	var out []entities.WorkManual
	err := r.db.WithContext(ctx).
		Where(`risk_if_skipped LIKE ? ESCAPE '\'`, "%"+escapeLike(marker)+"%").
		Order("manual_id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *manualRepo) Create(ctx context.Context, m *entities.WorkManual) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *manualRepo) Save(ctx context.Context, m *entities.WorkManual) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *manualRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.WorkManual{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
