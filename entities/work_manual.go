package entities

import "time"

// Canonical task-type tags. A manual carrying one of these drives the
// schedule auto-updater without relying on its display name.
const (
	TaskTypePlanting             = "planting"
	TaskTypeSpacing              = "spacing"
	TaskTypePotting              = "potting"
	TaskTypeLightsOff            = "lights_off"
	TaskTypeSupplementalLighting = "supplemental_lighting"
	TaskTypeHarvestEnd           = "harvest_end"
	TaskTypeRemoval              = "removal"
	TaskTypeCleanup              = "cleanup"
)

type WorkManual struct {
	ManualID        uint    `gorm:"primaryKey" json:"manual_id"`
	WorkName        string  `gorm:"index" json:"work_name"`
	TaskType        string  `gorm:"index" json:"task_type"`
	Stage           string  `json:"stage"`
	Purpose         string  `json:"purpose"`
	TimingStandard  string  `json:"timing_standard"`
	ActionSteps     string  `json:"action_steps"` // markdown
	RiskIfSkipped   string  `json:"risk_if_skipped"`
	Impact          string  `json:"impact"`
	RequiredTime10a float64 `json:"required_time_10a"` // hours per 10a
	Difficulty      int     `json:"difficulty"`        // 1..5

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
