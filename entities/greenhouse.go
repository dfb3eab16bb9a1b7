package entities

import "time"

type Greenhouse struct {
	GreenhouseID uint    `gorm:"primaryKey" json:"greenhouse_id"`
	Name         string  `gorm:"uniqueIndex" json:"name"`
	AreaA        float64 `json:"area_a"` // area in "a" (100 m2)
	SortOrder    int     `json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
