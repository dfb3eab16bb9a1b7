package entities

import (
	"time"

	"gorm.io/gorm"
)

type VarietyCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CropCycle is one batch in a greenhouse. Phase dates are filled in as they
// become known; their ordering is not validated.
type CropCycle struct {
	CycleID       uint           `gorm:"primaryKey" json:"cycle_id"`
	GreenhouseID  uint           `gorm:"index" json:"greenhouse_id"`
	BatchNumber   string         `json:"batch_number"`
	Varieties     []VarietyCount `gorm:"serializer:json" json:"varieties"`
	Memo          string         `json:"memo"`
	IsParentStock bool           `json:"is_parent_stock"`

	DisinfectionStart *time.Time `json:"disinfection_start"`
	DisinfectionEnd   *time.Time `json:"disinfection_end"`
	PlantingDate      *time.Time `json:"planting_date"`
	LightsOffDate     *time.Time `json:"lights_off_date"`
	HarvestStart      *time.Time `json:"harvest_start"`
	HarvestEnd        *time.Time `json:"harvest_end"`

	// parent stock (親株) replaces lights-off/harvest with these
	PinchingDate     *time.Time `json:"pinching_date"`
	CuttingStartDate *time.Time `json:"cutting_start_date"`
	CleanupDate      *time.Time `json:"cleanup_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndDate is the date the cycle finishes: harvest end, or cleanup for parent stock.
func (c *CropCycle) EndDate() *time.Time {
	if c.IsParentStock {
		return c.CleanupDate
	}
	return c.HarvestEnd
}

func (c *CropCycle) BeforeSave(*gorm.DB) error {
	for _, p := range []**time.Time{
		&c.DisinfectionStart, &c.DisinfectionEnd, &c.PlantingDate, &c.LightsOffDate,
		&c.HarvestStart, &c.HarvestEnd, &c.PinchingDate, &c.CuttingStartDate, &c.CleanupDate,
	} {
		*p = utcPtr(*p)
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
