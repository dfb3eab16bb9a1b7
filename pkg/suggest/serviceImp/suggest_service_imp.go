package serviceImp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"kiku/entities"
	"kiku/pkg/clock"
	cyclerepo "kiku/pkg/cycle/repository"
	manualrepo "kiku/pkg/manual/repository"
	pestsvc "kiku/pkg/pesticide/service"
	recrepo "kiku/pkg/record/repository"
	schedrepo "kiku/pkg/schedule/repository"
	"kiku/pkg/suggest"
	svc "kiku/pkg/suggest/service"
)

type greenhouseLister interface {
	List(ctx context.Context) ([]entities.Greenhouse, error)
}

type cycleLister interface {
	List(ctx context.Context, f cyclerepo.CycleFilter) ([]entities.CropCycle, error)
}

type recordLister interface {
	List(ctx context.Context, f recrepo.RecordFilter) ([]entities.WorkRecord, error)
}

type scheduleLister interface {
	List(ctx context.Context, f schedrepo.ScheduleFilter) ([]entities.CropSchedule, error)
}

type manualReader interface {
	List(ctx context.Context, f manualrepo.ManualFilter) ([]entities.WorkManual, error)
	RiskContaining(ctx context.Context, marker string, limit int) ([]entities.WorkManual, error)
}

type rotationOverview interface {
	Overview(ctx context.Context) (*pestsvc.Overview, error)
}

// Sources groups the stores the engine reads.
type Sources struct {
	Greenhouses greenhouseLister
	Cycles      cycleLister
	Records     recordLister
	Schedules   scheduleLister
	Manuals     manualReader
	// Rotation is optional.
	Rotation rotationOverview
}

type service struct {
	src Sources
	clk *clock.Business
	log *zap.Logger
}

func New(src Sources, clk *clock.Business, log *zap.Logger) svc.SuggestService {
	return &service{src: src, clk: clk, log: log.Named("suggest")}
}

func (s *service) TodaysWork(ctx context.Context) ([]suggest.Suggestion, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := suggest.Build(s.clk.Today(), *snap)
	s.log.Debug("suggestions built",
		zap.Int("cycles", len(snap.Cycles)),
		zap.Int("records_today", len(snap.Records)),
		zap.Int("tasks", len(out)))
	return out, nil
}

func (s *service) RiskAlerts(ctx context.Context) ([]entities.WorkManual, error) {
	out, err := s.src.Manuals.RiskContaining(ctx, suggest.RiskMarker, suggest.MaxRiskAlerts)
	if err != nil {
		return nil, fmt.Errorf("risk alerts: %w", err)
	}
	if out == nil {
		out = []entities.WorkManual{}
	}
	return out, nil
}

func (s *service) Dashboard(ctx context.Context) (*svc.Dashboard, error) {
	tasks, err := s.TodaysWork(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := s.RiskAlerts(ctx)
	if err != nil {
		return nil, err
	}
	d := &svc.Dashboard{
		Date:       s.clk.Today().Format("2006-01-02"),
		RiskAlerts: alerts,
		Tasks:      tasks,
	}
	if s.src.Rotation != nil {
		ov, err := s.src.Rotation.Overview(ctx)
		if err != nil {
			s.log.Warn("pesticide rotation unavailable", zap.Error(err))
		} else {
			d.NextPesticideStage = ov.NextStage
		}
	}
	return d, nil
}

// snapshot reads every table in full except records, which are today's only.
func (s *service) snapshot(ctx context.Context) (*suggest.Snapshot, error) {
	var snap suggest.Snapshot
	var err error
	if snap.Greenhouses, err = s.src.Greenhouses.List(ctx); err != nil {
		return nil, fmt.Errorf("load greenhouses: %w", err)
	}
	if snap.Cycles, err = s.src.Cycles.List(ctx, cyclerepo.CycleFilter{}); err != nil {
		return nil, fmt.Errorf("load cycles: %w", err)
	}
	from, to := s.clk.DayWindow()
	if snap.Records, err = s.src.Records.List(ctx, recrepo.RecordFilter{From: &from, To: &to}); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	if snap.Schedules, err = s.src.Schedules.List(ctx, schedrepo.ScheduleFilter{}); err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}
	if snap.Manuals, err = s.src.Manuals.List(ctx, manualrepo.ManualFilter{}); err != nil {
		return nil, fmt.Errorf("load manuals: %w", err)
	}
	return &snap, nil
}
