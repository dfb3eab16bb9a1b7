package entities

import "time"

type ChemicalDilution struct {
	Name     string `json:"name"`
	Dilution int    `json:"dilution"` // e.g. 1000 = x1000
}

// PesticideRotation is one stage of the spray program, labelled ①, ②, ...
type PesticideRotation struct {
	RotationID uint               `gorm:"primaryKey" json:"rotation_id"`
	Stage      string             `gorm:"index" json:"stage"`
	Ord        int                `json:"ord"`
	Chemicals  []ChemicalDilution `gorm:"serializer:json" json:"chemicals"`
	Memo       string             `json:"memo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
