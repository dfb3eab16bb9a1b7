package entities

import (
	"time"

	"gorm.io/gorm"
)

const (
	StageVegetative   = "定植〜消灯"
	StageReproductive = "消灯〜収穫"
)

// CropSchedule is one Gantt bar. A nil EndDate means the bar is still open.
type CropSchedule struct {
	ScheduleID   uint       `gorm:"primaryKey" json:"schedule_id"`
	GreenhouseID uint       `gorm:"index" json:"greenhouse_id"`
	Stage        string     `json:"stage"`
	StartDate    time.Time  `gorm:"index" json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Color        string     `json:"color"`
	BatchNumber  string     `json:"batch_number"`
	Version      int        `gorm:"not null;default:0" json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *CropSchedule) IsOpen() bool { return s.EndDate == nil }

func (s *CropSchedule) BeforeSave(*gorm.DB) error {
	s.StartDate = s.StartDate.UTC()
	s.EndDate = utcPtr(s.EndDate)
	return nil
}
