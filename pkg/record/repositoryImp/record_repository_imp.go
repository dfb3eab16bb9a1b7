package repositoryImp

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/record/repository"
)

type recordRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RecordRepository { return &recordRepo{db} }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *recordRepo) List(ctx context.Context, f repository.RecordFilter) ([]entities.WorkRecord, error) {
	q := r.db.WithContext(ctx).Model(&entities.WorkRecord{})
	if f.From != nil {
		q = q.Where("date >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("date < ?", f.To.UTC())
	}
	if f.GreenhouseID != nil {
		q = q.Where("greenhouse_id = ?", *f.GreenhouseID)
	}
	if f.WorkName != "" {
		q = q.Where("work_name = ?", f.WorkName)
	}
	if f.NoteContains != "" {
		q = q.Where(`note LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(f.NoteContains)+"%")
	}
	var out []entities.WorkRecord
	err := q.Order("date ASC, record_id ASC").Find(&out).Error
	return out, err
}

func (r *recordRepo) FindByID(ctx context.Context, id uint) (*entities.WorkRecord, error) {
	var rec entities.WorkRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepo) Create(ctx context.Context, rec *entities.WorkRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recordRepo) Save(ctx context.Context, rec *entities.WorkRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *recordRepo) SetPhotoURL(ctx context.Context, id uint, url string) error {
	res := r.db.WithContext(ctx).Model(&entities.WorkRecord{}).
		Where("record_id = ?", id).
		UpdateColumn("photo_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *recordRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.WorkRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
