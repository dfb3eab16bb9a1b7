package suggest

import (
	"strings"
	"time"

	"kiku/entities"
	"kiku/pkg/clock"
	"kiku/pkg/greenhouse"
)

// manualIndex keys manuals by work name; duplicates resolve to the lowest id.
func manualIndex(ms []entities.WorkManual) map[string]entities.WorkManual {
	idx := make(map[string]entities.WorkManual, len(ms))
	for _, m := range ms {
		if cur, ok := idx[m.WorkName]; ok && cur.ManualID < m.ManualID {
			continue
		}
		idx[m.WorkName] = m
	}
	return idx
}

// actualByWork sums spent hours per base work name.
func actualByWork(recs []entities.WorkRecord) map[string]float64 {
	out := map[string]float64{}
	for _, r := range recs {
		out[entities.BaseWorkName(r.WorkName)] += r.SpentTime
	}
	return out
}

// latestBatches maps each greenhouse to the batch of its newest active cycle.
func latestBatches(today time.Time, cycles []entities.CropCycle) map[uint]string {
	out := map[uint]string{}
	newest := map[uint]uint{}
	for i := range cycles {
		c := &cycles[i]
		if end := c.EndDate(); end != nil && clock.DateIn(*end, today.Location()).Before(today) {
			continue
		}
		if id, ok := newest[c.GreenhouseID]; ok && id > c.CycleID {
			continue
		}
		newest[c.GreenhouseID] = c.CycleID
		out[c.GreenhouseID] = c.BatchNumber
	}
	return out
}

func isSplit(task string) bool {
	for _, t := range splitTasks {
		if t == task {
			return true
		}
	}
	return false
}

// splitTaskOf names the split task a record's work name belongs to. Older
// records append the greenhouse to the task ("収穫B", "収穫 (B)"), so the
// longest split task the name starts with wins; "出荷調整" is not "出荷".
func splitTaskOf(workName string) string {
	best := ""
	for _, t := range splitTasks {
		if strings.HasPrefix(workName, t) && len(t) > len(best) {
			best = t
		}
	}
	return best
}

func recordFor(r *entities.WorkRecord, g *entities.Greenhouse) bool {
	if r.GreenhouseID != nil {
		return *r.GreenhouseID == g.GreenhouseID
	}
	return greenhouse.Normalize(r.GreenhouseName) == greenhouse.Normalize(g.Name)
}

// splitActual is the time logged today on task for one greenhouse.
func splitActual(recs []entities.WorkRecord, task string, g *entities.Greenhouse) float64 {
	var sum float64
	for i := range recs {
		if recordFor(&recs[i], g) && splitTaskOf(strings.TrimSpace(recs[i].WorkName)) == task {
			sum += recs[i].SpentTime
		}
	}
	return sum
}
