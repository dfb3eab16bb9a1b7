package entities

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type WorkRecord struct {
	RecordID       uint      `gorm:"primaryKey" json:"record_id"`
	Date           time.Time `gorm:"index" json:"date"`
	WorkName       string    `gorm:"index" json:"work_name"`
	GreenhouseID   *uint     `gorm:"index" json:"greenhouse_id"`
	GreenhouseName string    `json:"greenhouse_name"`
	BatchNumber    string    `json:"batch_number"`
	AreaA          float64   `json:"area_a"`
	SpentTime      float64   `json:"spent_time"` // hours
	Note           string    `json:"note"`
	PhotoURL       string    `json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *WorkRecord) BeforeSave(*gorm.DB) error {
	r.Date = r.Date.UTC()
	return nil
}

// BaseWorkName drops a trailing " (...)" qualifier, e.g. "収穫 (B)" -> "収穫".
func BaseWorkName(name string) string {
	if i := strings.Index(name, " ("); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
