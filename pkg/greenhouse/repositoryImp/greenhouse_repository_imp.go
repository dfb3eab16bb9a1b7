package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/greenhouse/repository"
)

type greenhouseRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.GreenhouseRepository { return &greenhouseRepo{db} }

func (r *greenhouseRepo) List(ctx context.Context) ([]entities.Greenhouse, error) {
	var out []entities.Greenhouse
	err := r.db.WithContext(ctx).Order("sort_order ASC, greenhouse_id ASC").Find(&out).Error
	return out, err
}

func (r *greenhouseRepo) FindByID(ctx context.Context, id uint) (*entities.Greenhouse, error) {
	var g entities.Greenhouse
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *greenhouseRepo) FindByName(ctx context.Context, name string) (*entities.Greenhouse, error) {
	var g entities.Greenhouse
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&g).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

func (r *greenhouseRepo) Create(ctx context.Context, g *entities.Greenhouse) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *greenhouseRepo) Update(ctx context.Context, g *entities.Greenhouse) error {
	res := r.db.WithContext(ctx).Model(g).Select("name", "area_a", "sort_order").Updates(g)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete does not check for cycles or records that still reference the greenhouse.
func (r *greenhouseRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Greenhouse{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
