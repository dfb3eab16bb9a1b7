package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/clock"
	"kiku/pkg/record/repository"
	svc "kiku/pkg/record/service"
	"kiku/pkg/storage"
)

type resolver interface {
	Resolve(ctx context.Context, name string) (*entities.Greenhouse, error)
}

type scheduleUpdater interface {
	Apply(ctx context.Context, rec *entities.WorkRecord) error
}

type service struct {
	repo     repository.RecordRepository
	resolver resolver
	store    storage.Store
	updater  scheduleUpdater
	clk      *clock.Business
	log      *zap.Logger
}

// New wires the record service. store and updater may be nil.
func New(r repository.RecordRepository, res resolver, store storage.Store, up scheduleUpdater, clk *clock.Business, log *zap.Logger) svc.RecordService {
	return &service{repo: r, resolver: res, store: store, updater: up, clk: clk, log: log.Named("record")}
}

func (s *service) List(ctx context.Context, f repository.RecordFilter) ([]entities.WorkRecord, error) {
	return s.repo.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id uint) (*entities.WorkRecord, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, r *entities.WorkRecord, photo *svc.Photo) error {
	if r.Date.IsZero() {
		r.Date = s.clk.Today()
	}
	if err := s.prepare(ctx, r); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	log := s.log.With(zap.Uint("record_id", r.RecordID), zap.String("work_name", r.WorkName))

	if photo != nil && s.store != nil {
		url, err := s.store.Put(ctx, photo.Name, photo.ContentType, photo.Data)
		if err != nil {
			log.Warn("photo upload failed", zap.Error(err))
		} else if err := s.repo.SetPhotoURL(ctx, r.RecordID, url); err != nil {
			log.Warn("photo url not saved", zap.String("url", url), zap.Error(err))
		} else {
			r.PhotoURL = url
		}
	}

	if s.updater != nil {
		if err := s.updater.Apply(ctx, r); err != nil {
			log.Error("schedule auto-update failed", zap.Error(err))
		}
	}
	return nil
}

func (s *service) Update(ctx context.Context, r *entities.WorkRecord) error {
	cur, err := s.repo.FindByID(ctx, r.RecordID)
	if err != nil {
		return err
	}
	if r.Date.IsZero() {
		r.Date = cur.Date
	}
	if r.PhotoURL == "" {
		r.PhotoURL = cur.PhotoURL
	}
	r.CreatedAt = cur.CreatedAt
	if err := s.prepare(ctx, r); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return fmt.Errorf("update record %d: %w", r.RecordID, err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// prepare validates r and links it to the registry. A name that matches no
// greenhouse is kept as typed with no id.
func (s *service) prepare(ctx context.Context, r *entities.WorkRecord) error {
	r.WorkName = strings.TrimSpace(r.WorkName)
	r.GreenhouseName = strings.TrimSpace(r.GreenhouseName)
	r.BatchNumber = strings.TrimSpace(r.BatchNumber)

	var bad []string
	if r.WorkName == "" {
		bad = append(bad, "work_name")
	}
	if r.GreenhouseName == "" {
		bad = append(bad, "greenhouse_name")
	}
	if r.SpentTime < 0 {
		bad = append(bad, "spent_time")
	}
	if r.AreaA < 0 {
		bad = append(bad, "area_a")
	}
	if len(bad) > 0 {
		return &apperrors.ValidationError{Fields: bad}
	}

	g, err := s.resolver.Resolve(ctx, r.GreenhouseName)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		r.GreenhouseID = nil
		return nil
	case err != nil:
		return fmt.Errorf("resolve greenhouse %q: %w", r.GreenhouseName, err)
	}
	id := g.GreenhouseID
	r.GreenhouseID = &id
	r.GreenhouseName = g.Name
	if r.AreaA == 0 {
		r.AreaA = g.AreaA
	}
	return nil
}
