package serviceImp

import (
	"context"
	"strings"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/manual/repository"
	svc "kiku/pkg/manual/service"
)

var taskTypes = map[string]bool{
	"":                                    true,
	entities.TaskTypePlanting:             true,
	entities.TaskTypeSpacing:              true,
	entities.TaskTypePotting:              true,
	entities.TaskTypeLightsOff:            true,
	entities.TaskTypeSupplementalLighting: true,
	entities.TaskTypeHarvestEnd:           true,
	entities.TaskTypeRemoval:              true,
	entities.TaskTypeCleanup:              true,
}

type service struct{ repo repository.ManualRepository }

func New(r repository.ManualRepository) svc.ManualService { return &service{repo: r} }

func (s *service) List(ctx context.Context, f repository.ManualFilter) ([]entities.WorkManual, error) {
	return s.repo.List(ctx, f)
}

func (s *service) Get(ctx context.Context, id uint) (*entities.WorkManual, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Create(ctx context.Context, m *entities.WorkManual) error {
	m.WorkName = strings.TrimSpace(m.WorkName)
	if m.Difficulty == 0 {
		m.Difficulty = 1
	}
	if err := validate(m); err != nil {
		return err
	}
	return s.repo.Create(ctx, m)
}

func (s *service) UpdatePartial(ctx context.Context, id uint, p svc.ManualPatch) (*entities.WorkManual, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.WorkName != nil {
		m.WorkName = strings.TrimSpace(*p.WorkName)
	}
	if p.TaskType != nil {
		m.TaskType = *p.TaskType
	}
	if p.Stage != nil {
		m.Stage = *p.Stage
	}
	if p.Purpose != nil {
		m.Purpose = *p.Purpose
	}
	if p.TimingStandard != nil {
		m.TimingStandard = *p.TimingStandard
	}
	if p.ActionSteps != nil {
		m.ActionSteps = *p.ActionSteps
	}
	if p.RiskIfSkipped != nil {
		m.RiskIfSkipped = *p.RiskIfSkipped
	}
	if p.Impact != nil {
		m.Impact = *p.Impact
	}
	if p.RequiredTime10a != nil {
		m.RequiredTime10a = *p.RequiredTime10a
	}
	if p.Difficulty != nil {
		m.Difficulty = *p.Difficulty
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	return m, s.repo.Save(ctx, m)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func validate(m *entities.WorkManual) error {
	var bad []string
	if m.WorkName == "" {
		bad = append(bad, "work_name")
	}
	if !taskTypes[m.TaskType] {
		bad = append(bad, "task_type")
	}
	if m.RequiredTime10a < 0 {
		bad = append(bad, "required_time_10a")
	}
	if m.Difficulty < 1 || m.Difficulty > 5 {
		bad = append(bad, "difficulty")
	}
	if len(bad) > 0 {
		return &apperrors.ValidationError{Fields: bad}
	}
	return nil
}
