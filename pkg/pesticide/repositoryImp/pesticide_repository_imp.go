package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/pesticide/repository"
)

type rotationRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RotationRepository { return &rotationRepo{db} }

func (r *rotationRepo) List(ctx context.Context) ([]entities.PesticideRotation, error) {
	var out []entities.PesticideRotation
	err := r.db.WithContext(ctx).Order("ord ASC, rotation_id ASC").Find(&out).Error
	return out, err
}

func (r *rotationRepo) FindByID(ctx context.Context, id uint) (*entities.PesticideRotation, error) {
	var p entities.PesticideRotation
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *rotationRepo) Create(ctx context.Context, p *entities.PesticideRotation) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *rotationRepo) Save(ctx context.Context, p *entities.PesticideRotation) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *rotationRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.PesticideRotation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *rotationRepo) ReplaceAll(ctx context.Context, rows []entities.PesticideRotation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.PesticideRotation{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].RotationID = 0
		}
		return tx.Create(&rows).Error
	})
}
