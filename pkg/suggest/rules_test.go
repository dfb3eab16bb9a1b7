package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiku/entities"
	"kiku/pkg/testutil"
)

func u(v uint) *uint { return &v }

func greenhouses() []entities.Greenhouse {
	return []entities.Greenhouse{
		{GreenhouseID: 1, Name: "B", AreaA: 4.96},
		{GreenhouseID: 2, Name: "①-S", AreaA: 3.0},
		{GreenhouseID: 3, Name: "①-N", AreaA: 2.0},
		{GreenhouseID: 4, Name: "②", AreaA: 5.0},
	}
}

func manuals() []entities.WorkManual {
	names := []struct {
		name string
		t    float64
	}{
		{TaskPlanting, 6}, {TaskStaking, 4.0}, {TaskFieldPrep, 3}, {TaskFertilizing, 1},
		{TaskHarvest, 10}, {TaskShippingAdjust, 8}, {TaskShipping, 2}, {TaskCleanup, 5},
		{TaskBudCheck, 0.5}, {TaskSideShoot, 6}, {TaskTopFlower, 4}, {TaskLightsOff, 0.2},
		{TaskMiteControl, 2}, {TaskCuttings, 3}, {TaskIrrigation, 3}, {TaskCultivation, 2},
		{TaskSpraying, 1.5},
	}
	out := make([]entities.WorkManual, 0, len(names))
	for i, n := range names {
		out = append(out, entities.WorkManual{ManualID: uint(i + 1), WorkName: n.name, RequiredTime10a: n.t, Difficulty: 1})
	}
	return out
}

func snapshot(cycles ...entities.CropCycle) Snapshot {
	return Snapshot{Greenhouses: greenhouses(), Cycles: cycles, Manuals: manuals()}
}

func find(out []Suggestion, task string) []Suggestion {
	var hits []Suggestion
	for _, s := range out {
		if s.Manual.WorkName == task {
			hits = append(hits, s)
		}
	}
	return hits
}

func names(out []Suggestion) []string {
	n := make([]string, 0, len(out))
	for _, s := range out {
		n = append(n, s.Manual.WorkName)
	}
	return n
}

func TestStakingTargetForGreenhouseB(t *testing.T) {
	s := snapshot(entities.CropCycle{CycleID: 1, GreenhouseID: 1, BatchNumber: "26-02", PlantingDate: testutil.DatePtr(2026, 2, 27)})
	out := Build(testutil.Date(2026, 2, 27), s)

	got := find(out, TaskStaking)
	require.Len(t, got, 1)
	require.Len(t, got[0].Targets, 1)
	tg := got[0].Targets[0]
	assert.Equal(t, "B", tg.GreenhouseName)
	assert.InDelta(t, 1.984, tg.TargetTime, 1e-9)
	assert.Equal(t, "26-02", tg.LastBatchNumber)
	assert.InDelta(t, 1.984, got[0].TargetTotalTime, 1e-9)
}

func TestPlantingOnlyOnPlantingDay(t *testing.T) {
	planting := testutil.Date(2026, 4, 10)
	s := snapshot(entities.CropCycle{CycleID: 1, GreenhouseID: 4, PlantingDate: &planting})

	for offset := -3; offset <= 3; offset++ {
		out := Build(planting.AddDate(0, 0, offset), s)
		has := len(find(out, TaskPlanting)) == 1 && len(find(out, TaskStaking)) == 1
		assert.Equal(t, offset == 0, has, "offset %d", offset)

		prep := len(find(out, TaskFieldPrep)) == 1 && len(find(out, TaskFertilizing)) == 1
		assert.Equal(t, offset == -1, prep, "field prep at offset %d", offset)
	}
}

func TestPlantingDateStoredInUTC(t *testing.T) {
	// 2026-04-10 00:00 JST is 2026-04-09 15:00 UTC
	utc := testutil.Date(2026, 4, 10).UTC()
	s := snapshot(entities.CropCycle{CycleID: 1, GreenhouseID: 4, PlantingDate: &utc})
	out := Build(testutil.Date(2026, 4, 10), s)
	assert.Len(t, find(out, TaskPlanting), 1)
}

func TestBudCheckWindow(t *testing.T) {
	lo := testutil.Date(2026, 3, 1)
	s := snapshot(entities.CropCycle{CycleID: 1, GreenhouseID: 1, LightsOffDate: &lo})

	for d := 15; d <= 25; d++ {
		out := Build(lo.AddDate(0, 0, d), s)
		assert.Equal(t, d >= 20 && d <= 22, len(find(out, TaskBudCheck)) == 1, "L+%d", d)
	}
}

func TestLightsOffWindows(t *testing.T) {
	lo := testutil.Date(2026, 1, 1)
	s := snapshot(entities.CropCycle{CycleID: 1, GreenhouseID: 1, LightsOffDate: &lo})

	cases := []struct {
		since     int
		side, top bool
	}{
		{34, false, false},
		{35, true, false},
		{40, true, true},
		{45, true, true},
		{46, false, false},
	}
	for _, tc := range cases {
		out := Build(lo.AddDate(0, 0, tc.since), s)
		assert.Equal(t, tc.side, len(find(out, TaskSideShoot)) == 1, "side shoot L+%d", tc.since)
		assert.Equal(t, tc.top, len(find(out, TaskTopFlower)) == 1, "top flower L+%d", tc.since)
	}
}

func TestLightsOffDaySkippedWhenHarvestBarOpen(t *testing.T) {
	lo := testutil.Date(2026, 5, 1)
	s := snapshot(entities.CropCycle{CycleID: 1, GreenhouseID: 1, LightsOffDate: &lo})
	s.Schedules = []entities.CropSchedule{
		{ScheduleID: 1, GreenhouseID: 1, Stage: entities.StageVegetative, StartDate: testutil.Date(2026, 3, 1)},
	}
	assert.Len(t, find(Build(lo, s), TaskLightsOff), 1)

	s.Schedules = append(s.Schedules, entities.CropSchedule{
		ScheduleID: 2, GreenhouseID: 1, Stage: entities.StageReproductive, StartDate: lo,
	})
	assert.Empty(t, find(Build(lo, s), TaskLightsOff))

	// a closed harvest bar does not count
	end := lo
	s.Schedules[1].EndDate = &end
	assert.Len(t, find(Build(lo, s), TaskLightsOff), 1)
}

func TestMiteControlSeason(t *testing.T) {
	cases := []struct {
		name  string
		today time.Time
		since int
		want  bool
	}{
		{"season start", testutil.Date(2026, 5, 20), 36, true},
		{"day before season", testutil.Date(2026, 5, 19), 36, false},
		{"season end", testutil.Date(2026, 10, 31), 40, true},
		{"after season", testutil.Date(2026, 11, 1), 35, false},
		{"in season, outside window", testutil.Date(2026, 7, 1), 41, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo := tc.today.AddDate(0, 0, -tc.since)
			s := snapshot(entities.CropCycle{CycleID: 1, GreenhouseID: 1, LightsOffDate: &lo})
			assert.Equal(t, tc.want, len(find(Build(tc.today, s), TaskMiteControl)) == 1)
		})
	}
}

func TestGroupedProrationSumsToStandardTime(t *testing.T) {
	out := Build(testutil.Date(2026, 2, 27), snapshot())

	for _, task := range []string{TaskIrrigation, TaskSpraying} {
		got := find(out, task)
		require.Len(t, got, 1, task)
		T := got[0].Manual.RequiredTime10a

		var group float64
		for _, tg := range got[0].Targets {
			switch tg.GreenhouseName {
			case "①-S":
				assert.InDelta(t, T*(3.0/5.0), tg.TargetTime, 1e-9)
				group += tg.TargetTime
			case "①-N":
				assert.InDelta(t, T*(2.0/5.0), tg.TargetTime, 1e-9)
				group += tg.TargetTime
			}
		}
		assert.InDelta(t, T, group, 1e-9, "%s group ① sums to T", task)
		// three groups: B, ①, ②
		assert.InDelta(t, 3*T, got[0].TargetTotalTime, 1e-9)
	}
}

func TestDefaultTargetIsAreaScaled(t *testing.T) {
	out := Build(testutil.Date(2026, 2, 27), snapshot())
	got := find(out, TaskCultivation)
	require.Len(t, got, 1)
	require.Len(t, got[0].Targets, 4, "routine tasks cover every greenhouse")
	for i, g := range greenhouses() {
		assert.Equal(t, g.GreenhouseID, got[0].Targets[i].GreenhouseID)
		assert.Equal(t, got[0].Manual.RequiredTime10a*(g.AreaA/10), got[0].Targets[i].TargetTime)
	}
}

func TestHarvestCardsPerGreenhouse(t *testing.T) {
	today := testutil.Date(2026, 6, 10)
	s := snapshot(
		entities.CropCycle{CycleID: 1, GreenhouseID: 1, BatchNumber: "B-1", HarvestStart: testutil.DatePtr(2026, 6, 1), HarvestEnd: testutil.DatePtr(2026, 6, 20)},
		entities.CropCycle{CycleID: 2, GreenhouseID: 4, BatchNumber: "2-1", HarvestStart: testutil.DatePtr(2026, 6, 10), HarvestEnd: testutil.DatePtr(2026, 6, 10)},
		// harvest end missing: no window
		entities.CropCycle{CycleID: 3, GreenhouseID: 2, HarvestStart: testutil.DatePtr(2026, 6, 1)},
	)
	s.Records = []entities.WorkRecord{
		{WorkName: "収穫B", GreenhouseID: u(1), GreenhouseName: "B", SpentTime: 1},
		{WorkName: "出荷調整", GreenhouseName: "b", SpentTime: 2},
	}
	out := Build(today, s)

	for _, task := range splitTasks {
		cards := find(out, task)
		require.Len(t, cards, 2, task)
		for _, c := range cards {
			require.Len(t, c.Targets, 1)
			assert.Zero(t, c.Targets[0].TargetTime)
			assert.Zero(t, c.TargetTotalTime)
		}
	}

	harvestB := find(out, TaskHarvest)
	var bCard, twoCard Suggestion
	for _, c := range harvestB {
		if c.Targets[0].GreenhouseName == "B" {
			bCard = c
		} else {
			twoCard = c
		}
	}
	assert.True(t, bCard.IsCompleted)
	assert.InDelta(t, 1.0, bCard.ActualTime, 1e-9)
	assert.False(t, twoCard.IsCompleted)
	assert.Equal(t, "2-1", twoCard.Targets[0].LastBatchNumber)

	for _, c := range find(out, TaskShipping) {
		assert.False(t, c.IsCompleted, "出荷調整 time does not complete 出荷")
	}
	for _, c := range find(out, TaskShippingAdjust) {
		assert.Equal(t, c.Targets[0].GreenhouseName == "B", c.IsCompleted)
	}
	// cycle 2 ends today
	assert.Len(t, find(out, TaskCleanup), 1)
}

func TestActualTimeStripsSuffix(t *testing.T) {
	s := snapshot()
	s.Records = []entities.WorkRecord{
		{WorkName: "栽培管理 (B)", SpentTime: 1},
		{WorkName: "栽培管理", SpentTime: 0.5},
		{WorkName: "栽培管理作業", SpentTime: 9},
	}
	got := find(Build(testutil.Date(2026, 2, 27), s), TaskCultivation)
	require.Len(t, got, 1)
	assert.InDelta(t, 1.5, got[0].ActualTime, 1e-9)
	assert.True(t, got[0].IsCompleted)
}

func TestOrdering(t *testing.T) {
	today := testutil.Date(2026, 3, 21)
	s := snapshot(
		entities.CropCycle{CycleID: 1, GreenhouseID: 1, PlantingDate: testutil.DatePtr(2026, 3, 21)},
		entities.CropCycle{CycleID: 2, GreenhouseID: 4, LightsOffDate: testutil.DatePtr(2026, 3, 1)},
	)
	s.Records = []entities.WorkRecord{
		{WorkName: TaskIrrigation, SpentTime: 0.5},
		{WorkName: TaskStaking, SpentTime: 1},
	}
	out := Build(today, s)
	assert.Equal(t, []string{
		TaskPlanting, TaskBudCheck, TaskCuttings,
		TaskCultivation, TaskSpraying,
		TaskStaking, TaskIrrigation,
	}, names(out))
}

func TestIdempotent(t *testing.T) {
	today := testutil.Date(2026, 6, 10)
	s := snapshot(
		entities.CropCycle{CycleID: 1, GreenhouseID: 1, HarvestStart: testutil.DatePtr(2026, 6, 1), HarvestEnd: testutil.DatePtr(2026, 6, 30)},
		entities.CropCycle{CycleID: 2, GreenhouseID: 2, LightsOffDate: testutil.DatePtr(2026, 5, 1)},
	)
	s.Records = []entities.WorkRecord{{WorkName: TaskSpraying, SpentTime: 2}}
	assert.Equal(t, Build(today, s), Build(today, s))
}

func TestSoftMisses(t *testing.T) {
	today := testutil.Date(2026, 2, 27)
	s := snapshot(
		// greenhouse 99 is not registered
		entities.CropCycle{CycleID: 1, GreenhouseID: 99, PlantingDate: testutil.DatePtr(2026, 2, 27)},
		entities.CropCycle{CycleID: 2, GreenhouseID: 1, PlantingDate: testutil.DatePtr(2026, 2, 27)},
		// ended yesterday
		entities.CropCycle{CycleID: 3, GreenhouseID: 4, PlantingDate: testutil.DatePtr(2026, 2, 27), HarvestEnd: testutil.DatePtr(2026, 2, 26)},
	)
	var kept []entities.WorkManual
	for _, m := range s.Manuals {
		if m.WorkName != TaskStaking {
			kept = append(kept, m)
		}
	}
	s.Manuals = kept

	out := Build(today, s)
	assert.Empty(t, find(out, TaskStaking), "no manual, no suggestion")
	planting := find(out, TaskPlanting)
	require.Len(t, planting, 1)
	require.Len(t, planting[0].Targets, 1)
	assert.Equal(t, uint(1), planting[0].Targets[0].GreenhouseID)
}

func TestParentStockCleanup(t *testing.T) {
	s := snapshot(entities.CropCycle{CycleID: 1, GreenhouseID: 3, IsParentStock: true, CleanupDate: testutil.DatePtr(2026, 8, 31)})
	assert.Len(t, find(Build(testutil.Date(2026, 8, 31), s), TaskCleanup), 1)
	assert.Empty(t, find(Build(testutil.Date(2026, 8, 30), s), TaskCleanup))
}

func TestRoutineBatchIsNewestActiveCycle(t *testing.T) {
	s := snapshot(
		entities.CropCycle{CycleID: 1, GreenhouseID: 1, BatchNumber: "old", HarvestEnd: testutil.DatePtr(2026, 1, 1)},
		entities.CropCycle{CycleID: 2, GreenhouseID: 1, BatchNumber: "25-11"},
		entities.CropCycle{CycleID: 3, GreenhouseID: 1, BatchNumber: "26-02"},
	)
	got := find(Build(testutil.Date(2026, 2, 27), s), TaskCultivation)
	require.Len(t, got, 1)
	assert.Equal(t, "26-02", got[0].Targets[0].LastBatchNumber)
	assert.Empty(t, got[0].Targets[1].LastBatchNumber)
}

func TestRiskAlerts(t *testing.T) {
	ms := []entities.WorkManual{
		{ManualID: 5, WorkName: "ダニ特別防除", RiskIfSkipped: "ハウス全滅の恐れ"},
		{ManualID: 2, WorkName: "灌水", RiskIfSkipped: "萎れ"},
		{ManualID: 3, WorkName: "消灯", RiskIfSkipped: "開花不良で全滅"},
		{ManualID: 1, WorkName: "農薬散布", RiskIfSkipped: "白さび病で全滅"},
	}
	got := RiskAlerts(ms)
	require.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ManualID)
	assert.Equal(t, uint(3), got[1].ManualID)
	assert.Empty(t, RiskAlerts(nil))
}
