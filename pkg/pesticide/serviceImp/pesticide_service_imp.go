package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/pesticide/repository"
	svc "kiku/pkg/pesticide/service"
	recrepo "kiku/pkg/record/repository"
)

type recordLister interface {
	List(ctx context.Context, f recrepo.RecordFilter) ([]entities.WorkRecord, error)
}

type service struct {
	repo    repository.RotationRepository
	records recordLister
}

func New(r repository.RotationRepository, records recordLister) svc.RotationService {
	return &service{repo: r, records: records}
}

// Overview marks a stage sprayed on the latest date of any record whose note
// mentions its label.
func (s *service) Overview(ctx context.Context) (*svc.Overview, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &svc.Overview{Stages: make([]svc.StageStatus, 0, len(rows))}
	latest := -1
	for i, r := range rows {
		st := svc.StageStatus{PesticideRotation: r}
		if label := strings.TrimSpace(r.Stage); label != "" {
			recs, err := s.records.List(ctx, recrepo.RecordFilter{NoteContains: label})
			if err != nil {
				return nil, fmt.Errorf("records for stage %s: %w", label, err)
			}
			for j := range recs {
				if st.LastSprayed == nil || recs[j].Date.After(*st.LastSprayed) {
					d := recs[j].Date
					st.LastSprayed = &d
				}
			}
		}
		if st.LastSprayed != nil && (latest < 0 || !st.LastSprayed.Before(*out.Stages[latest].LastSprayed)) {
			latest = i
		}
		out.Stages = append(out.Stages, st)
	}
	if len(rows) > 0 {
		out.NextStage = rows[(latest+1)%len(rows)].Stage
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, r *entities.PesticideRotation) error {
	if err := validate(r); err != nil {
		return err
	}
	return s.repo.Create(ctx, r)
}

func (s *service) Update(ctx context.Context, r *entities.PesticideRotation) error {
	cur, err := s.repo.FindByID(ctx, r.RotationID)
	if err != nil {
		return err
	}
	if err := validate(r); err != nil {
		return err
	}
	r.CreatedAt = cur.CreatedAt
	return s.repo.Save(ctx, r)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ReplaceAll renumbers rows in the order given.
func (s *service) ReplaceAll(ctx context.Context, rows []entities.PesticideRotation) error {
	for i := range rows {
		if err := validate(&rows[i]); err != nil {
			return err
		}
		rows[i].Ord = i + 1
	}
	return s.repo.ReplaceAll(ctx, rows)
}

func validate(r *entities.PesticideRotation) error {
	r.Stage = strings.TrimSpace(r.Stage)
	var bad []string
	if r.Stage == "" {
		bad = append(bad, "stage")
	}
	for i, c := range r.Chemicals {
		if strings.TrimSpace(c.Name) == "" || c.Dilution <= 0 {
			bad = append(bad, fmt.Sprintf("chemicals[%d]", i))
		}
	}
	if len(bad) > 0 {
		return &apperrors.ValidationError{Fields: bad}
	}
	return nil
}
