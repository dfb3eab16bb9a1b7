// Package suggest derives the day's recommended work from crop-cycle dates.
// Build is pure: it reads a Snapshot and a business-zone date and never
// touches the store or the clock.
package suggest

import (
	"sort"
	"strings"
	"time"

	"kiku/entities"
	"kiku/pkg/clock"
	"kiku/pkg/greenhouse"
)

// Work names the engine looks manuals up by.
const (
	TaskPlanting       = "定植"
	TaskStaking        = "杭打ち"
	TaskFieldPrep      = "圃場準備"
	TaskFertilizing    = "施肥"
	TaskHarvest        = "収穫"
	TaskShippingAdjust = "出荷調整"
	TaskShipping       = "出荷"
	TaskCleanup        = "片付け"
	TaskBudCheck       = "発蕾確認"
	TaskSideShoot      = "わき芽取り"
	TaskTopFlower      = "頂花取り"
	TaskLightsOff      = "消灯"
	TaskMiteControl    = "ダニ特別防除"
	TaskCuttings       = "穂木採取"
	TaskIrrigation     = "灌水"
	TaskCultivation    = "栽培管理"
	TaskSpraying       = "農薬散布"
)

// RiskMarker flags manuals whose skipped-risk text means crop loss.
const (
	RiskMarker    = "全滅"
	MaxRiskAlerts = 2
)

// harvestStageMarker identifies schedule bars that belong to the harvest side
// of the cycle.
const harvestStageMarker = "収穫"

// lightsOffWindows are inclusive day offsets after the lights-off date.
var lightsOffWindows = []struct {
	task     string
	from, to int
}{
	{TaskBudCheck, 20, 22},
	{TaskSideShoot, 35, 45},
	{TaskTopFlower, 40, 45},
}

// Mite season, inclusive, compared as month/day of today.
var (
	miteSeasonStart = monthDay{time.May, 20}
	miteSeasonEnd   = monthDay{time.October, 31}
)

const miteFrom, miteTo = 35, 40

var routineTasks = []string{TaskCuttings, TaskIrrigation, TaskCultivation, TaskSpraying}

// splitTasks get one card per greenhouse and no time target.
var splitTasks = []string{TaskHarvest, TaskShippingAdjust, TaskShipping}

// groupTimedTasks carry a standard time for a whole greenhouse group.
var groupTimedTasks = map[string]bool{TaskIrrigation: true, TaskSpraying: true}

// trailing tasks always sort last, in this order.
var trailing = map[string]int{TaskIrrigation: 1, TaskCultivation: 2, TaskSpraying: 3}

type monthDay struct {
	m time.Month
	d int
}

func (md monthDay) before(o monthDay) bool {
	return md.m < o.m || (md.m == o.m && md.d < o.d)
}

func inMiteSeason(today time.Time) bool {
	md := monthDay{today.Month(), today.Day()}
	return !md.before(miteSeasonStart) && !miteSeasonEnd.before(md)
}

// Snapshot is everything Build reads. Records should be today's only.
type Snapshot struct {
	Greenhouses []entities.Greenhouse
	Cycles      []entities.CropCycle
	Records     []entities.WorkRecord
	Schedules   []entities.CropSchedule
	Manuals     []entities.WorkManual
}

type Target struct {
	GreenhouseID    uint    `json:"greenhouse_id"`
	GreenhouseName  string  `json:"greenhouse_name"`
	AreaA           float64 `json:"area_a"`
	TargetTime      float64 `json:"target_time"`
	LastBatchNumber string  `json:"last_batch_number"`
}

type Suggestion struct {
	Manual          entities.WorkManual `json:"manual"`
	Targets         []Target            `json:"targets"`
	TargetTotalTime float64             `json:"target_total_time"`
	ActualTime      float64             `json:"actual_time"`
	IsCompleted     bool                `json:"is_completed"`
}

// hit is one (task, greenhouse) found by a trigger rule.
type hit struct {
	greenhouseID uint
	batch        string
}

// discovery collects tasks in the order rules first produce them.
type discovery struct {
	order []string
	hits  map[string][]hit
	seen  map[string]map[uint]bool
}

func newDiscovery() *discovery {
	return &discovery{hits: map[string][]hit{}, seen: map[string]map[uint]bool{}}
}

func (d *discovery) add(task string, c *entities.CropCycle) {
	if _, ok := d.seen[task]; !ok {
		d.order = append(d.order, task)
		d.seen[task] = map[uint]bool{}
	}
	if c == nil || d.seen[task][c.GreenhouseID] {
		return
	}
	d.seen[task][c.GreenhouseID] = true
	d.hits[task] = append(d.hits[task], hit{greenhouseID: c.GreenhouseID, batch: c.BatchNumber})
}

// Build returns today's suggestions. today is read as a calendar date in its
// own location, which must be the business zone.
func Build(today time.Time, s Snapshot) []Suggestion {
	loc := today.Location()
	today = clock.DateIn(today, loc)
	day := func(t *time.Time) (time.Time, bool) {
		if t == nil {
			return time.Time{}, false
		}
		return clock.DateIn(*t, loc), true
	}

	openHarvest := map[uint]bool{}
	for _, sc := range s.Schedules {
		if sc.IsOpen() && strings.Contains(sc.Stage, harvestStageMarker) {
			openHarvest[sc.GreenhouseID] = true
		}
	}

	found := newDiscovery()
	for i := range s.Cycles {
		c := &s.Cycles[i]
		if end, ok := day(c.EndDate()); ok && end.Before(today) {
			continue
		}

		if p, ok := day(c.PlantingDate); ok {
			switch clock.DaysBetween(today, p) {
			case 0:
				found.add(TaskPlanting, c)
				found.add(TaskStaking, c)
			case 1:
				found.add(TaskFieldPrep, c)
				found.add(TaskFertilizing, c)
			}
		}

		hs, okS := day(c.HarvestStart)
		he, okE := day(c.HarvestEnd)
		if okS && okE && !today.Before(hs) && !today.After(he) {
			for _, t := range splitTasks {
				found.add(t, c)
			}
		}

		if end, ok := day(c.EndDate()); ok && end.Equal(today) {
			found.add(TaskCleanup, c)
		}

		if lo, ok := day(c.LightsOffDate); ok {
			since := clock.DaysBetween(lo, today)
			for _, w := range lightsOffWindows {
				if since >= w.from && since <= w.to {
					found.add(w.task, c)
				}
			}
			if since == 0 && !openHarvest[c.GreenhouseID] {
				found.add(TaskLightsOff, c)
			}
			if inMiteSeason(today) && since >= miteFrom && since <= miteTo {
				found.add(TaskMiteControl, c)
			}
		}
	}
	for _, t := range routineTasks {
		found.add(t, nil)
	}

	return assemble(today, found, s)
}

// assemble turns discovered tasks into ordered suggestions.
func assemble(today time.Time, found *discovery, s Snapshot) []Suggestion {
	manuals := manualIndex(s.Manuals)
	ghByID := make(map[uint]*entities.Greenhouse, len(s.Greenhouses))
	for i := range s.Greenhouses {
		ghByID[s.Greenhouses[i].GreenhouseID] = &s.Greenhouses[i]
	}
	groupArea := map[string]float64{}
	for _, g := range s.Greenhouses {
		groupArea[greenhouse.GroupKey(g.Name)] += g.AreaA
	}
	actual := actualByWork(s.Records)
	latestBatch := latestBatches(today, s.Cycles)

	var out []Suggestion
	for _, task := range found.order {
		m, ok := manuals[task]
		if !ok {
			continue
		}

		hits := found.hits[task]
		if hits == nil {
			// routine: every registered greenhouse
			for _, g := range s.Greenhouses {
				hits = append(hits, hit{greenhouseID: g.GreenhouseID, batch: latestBatch[g.GreenhouseID]})
			}
		}

		if isSplit(task) {
			for _, h := range hits {
				g, ok := ghByID[h.greenhouseID]
				if !ok {
					continue
				}
				spent := splitActual(s.Records, task, g)
				out = append(out, Suggestion{
					Manual: m,
					Targets: []Target{{
						GreenhouseID:    g.GreenhouseID,
						GreenhouseName:  g.Name,
						AreaA:           g.AreaA,
						LastBatchNumber: h.batch,
					}},
					ActualTime:  spent,
					IsCompleted: spent > 0,
				})
			}
			continue
		}

		sg := Suggestion{Manual: m, Targets: []Target{}}
		for _, h := range hits {
			g, ok := ghByID[h.greenhouseID]
			if !ok {
				continue
			}
			t := Target{
				GreenhouseID:    g.GreenhouseID,
				GreenhouseName:  g.Name,
				AreaA:           g.AreaA,
				LastBatchNumber: h.batch,
			}
			if groupTimedTasks[task] {
				t.TargetTime = ProratedTarget(m.RequiredTime10a, g.AreaA, groupArea[greenhouse.GroupKey(g.Name)])
			} else {
				t.TargetTime = AreaTarget(m.RequiredTime10a, g.AreaA)
			}
			sg.Targets = append(sg.Targets, t)
			sg.TargetTotalTime += t.TargetTime
		}
		if len(sg.Targets) == 0 && len(hits) > 0 {
			continue
		}
		sg.ActualTime = actual[task]
		sg.IsCompleted = sg.ActualTime > 0
		out = append(out, sg)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsCompleted != b.IsCompleted {
			return !a.IsCompleted
		}
		return trailing[a.Manual.WorkName] < trailing[b.Manual.WorkName]
	})
	return out
}

// AreaTarget is the standard time scaled from 10a to area.
func AreaTarget(requiredTime10a, area float64) float64 {
	return (area / 10) * requiredTime10a
}

// ProratedTarget splits a whole-group duration by area share.
func ProratedTarget(groupTime, area, groupArea float64) float64 {
	if groupArea <= 0 {
		return 0
	}
	return groupTime * (area / groupArea)
}

// RiskAlerts picks manuals whose risk text carries RiskMarker, by id, at most
// MaxRiskAlerts.
func RiskAlerts(manuals []entities.WorkManual) []entities.WorkManual {
	out := []entities.WorkManual{}
	for _, m := range manuals {
		if strings.Contains(m.RiskIfSkipped, RiskMarker) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ManualID < out[j].ManualID })
	if len(out) > MaxRiskAlerts {
		out = out[:MaxRiskAlerts]
	}
	return out
}
