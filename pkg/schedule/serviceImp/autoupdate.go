package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"kiku/entities"
	"kiku/pkg/apperrors"
	"kiku/pkg/clock"
	"kiku/pkg/greenhouse"
	repo "kiku/pkg/schedule/repository"
)

// Transition is what a work record does to its greenhouse's schedule.
type Transition int

const (
	NoTransition Transition = iota
	// StartCycle closes any open bar and opens 定植〜消灯.
	StartCycle
	// ChangePhase closes the open bar and opens 消灯〜収穫 with its batch.
	ChangePhase
	// EndCycle closes the open bar.
	EndCycle
)

func (t Transition) String() string {
	switch t {
	case StartCycle:
		return "start"
	case ChangePhase:
		return "phase_change"
	case EndCycle:
		return "end"
	}
	return "none"
}

var transitionByTaskType = map[string]Transition{
	entities.TaskTypePlanting:             StartCycle,
	entities.TaskTypeSpacing:              StartCycle,
	entities.TaskTypePotting:              StartCycle,
	entities.TaskTypeLightsOff:            ChangePhase,
	entities.TaskTypeSupplementalLighting: ChangePhase,
	entities.TaskTypeHarvestEnd:           EndCycle,
	entities.TaskTypeRemoval:              EndCycle,
	entities.TaskTypeCleanup:              EndCycle,
}

// keywordRules classify records whose manual carries no task type.
// Checked in order.
var keywordRules = []struct {
	t        Transition
	keywords []string
}{
	{StartCycle, []string{"定植", "スペーシング", "鉢上げ"}},
	{ChangePhase, []string{"消灯", "電照"}},
	{EndCycle, []string{"収穫終了", "撤去", "片付け"}},
}

var stageColors = map[string]string{
	entities.StageVegetative:   "#8bc34a",
	entities.StageReproductive: "#ff9800",
}

const maxCloseAttempts = 3

type manualFinder interface {
	FindByName(ctx context.Context, name string) (*entities.WorkManual, error)
}

type greenhouseLister interface {
	List(ctx context.Context) ([]entities.Greenhouse, error)
}

// AutoUpdater keeps the Gantt timeline in step with incoming work records.
type AutoUpdater struct {
	schedules   repo.ScheduleRepository
	manuals     manualFinder
	greenhouses greenhouseLister
	clk         *clock.Business
	log         *zap.Logger
}

func NewAutoUpdater(s repo.ScheduleRepository, m manualFinder, g greenhouseLister, clk *clock.Business, log *zap.Logger) *AutoUpdater {
	return &AutoUpdater{schedules: s, manuals: m, greenhouses: g, clk: clk, log: log.Named("schedule.auto")}
}

// Classify maps a work name to a transition: the manual's task type when it
// has one, keyword matching otherwise.
func (u *AutoUpdater) Classify(ctx context.Context, workName string) (Transition, error) {
	base := entities.BaseWorkName(workName)
	m, err := u.manuals.FindByName(ctx, base)
	switch {
	case err == nil && m.TaskType != "":
		return transitionByTaskType[m.TaskType], nil
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return NoTransition, fmt.Errorf("find manual %q: %w", base, err)
	}
	return ClassifyByKeyword(workName), nil
}

func ClassifyByKeyword(workName string) Transition {
	for _, r := range keywordRules {
		for _, kw := range r.keywords {
			if strings.Contains(workName, kw) {
				return r.t
			}
		}
	}
	return NoTransition
}

// Apply updates the schedule for rec. Unresolvable greenhouses and records
// that imply no transition are skipped without error.
func (u *AutoUpdater) Apply(ctx context.Context, rec *entities.WorkRecord) error {
	t, err := u.Classify(ctx, rec.WorkName)
	if err != nil {
		return err
	}
	if t == NoTransition {
		return nil
	}
	ghID, ok, err := u.resolve(ctx, rec)
	if err != nil {
		return err
	}
	if !ok {
		u.log.Debug("greenhouse not resolved, skipping",
			zap.Uint("record_id", rec.RecordID),
			zap.String("greenhouse_name", rec.GreenhouseName))
		return nil
	}
	day := u.clk.DateOf(rec.Date)

	for attempt := 1; ; attempt++ {
		err = u.schedules.Transaction(ctx, func(r repo.ScheduleRepository) error {
			return u.transition(ctx, r, t, ghID, day, rec.BatchNumber)
		})
		if !errors.Is(err, apperrors.ErrConflict) || attempt == maxCloseAttempts {
			break
		}
		u.log.Info("open bar changed concurrently, retrying",
			zap.Uint("greenhouse_id", ghID), zap.Int("attempt", attempt))
	}
	if err != nil {
		return fmt.Errorf("apply %s to greenhouse %d: %w", t, ghID, err)
	}
	u.log.Info("schedule updated",
		zap.Uint("record_id", rec.RecordID),
		zap.Uint("greenhouse_id", ghID),
		zap.Stringer("transition", t),
		zap.Time("date", day))
	return nil
}

func (u *AutoUpdater) transition(ctx context.Context, r repo.ScheduleRepository, t Transition, ghID uint, day time.Time, batch string) error {
	open, err := r.FindOpen(ctx, ghID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if open != nil {
		closed, err := r.Close(ctx, open.ScheduleID, open.Version, day)
		if err != nil {
			return err
		}
		if !closed {
			return apperrors.ErrConflict
		}
		if t == ChangePhase && open.BatchNumber != "" {
			batch = open.BatchNumber
		}
	}

	var stage string
	switch t {
	case StartCycle:
		stage = entities.StageVegetative
	case ChangePhase:
		stage = entities.StageReproductive
	default:
		return nil
	}
	return r.Create(ctx, &entities.CropSchedule{
		GreenhouseID: ghID,
		Stage:        stage,
		StartDate:    day,
		Color:        stageColors[stage],
		BatchNumber:  batch,
	})
}

func (u *AutoUpdater) resolve(ctx context.Context, rec *entities.WorkRecord) (uint, bool, error) {
	if rec.GreenhouseID != nil && *rec.GreenhouseID != 0 {
		return *rec.GreenhouseID, true, nil
	}
	list, err := u.greenhouses.List(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("list greenhouses: %w", err)
	}
	g := greenhouse.Match(list, rec.GreenhouseName)
	if g == nil {
		return 0, false, nil
	}
	return g.GreenhouseID, true, nil
}
