package models

import (
	"time"

	"gorm.io/datatypes"

	"loreforge/internal/shared/constants"
)

type ParameterModel struct {
	ID              string `gorm:"primaryKey;size:64"`
	CategoryID      string `gorm:"size:64;not null;index"`
	Name            string `gorm:"size:255;not null"`
	Description     string `gorm:"type:text"`
	Type            string `gorm:"size:16;not null"`
	Visibility      string `gorm:"size:16;not null;default:'Basic';index"`
	Required        bool   `gorm:"not null;default:false"`
	SortOrder       int    `gorm:"not null;default:0;index"`
	ParameterValues datatypes.JSON
	ParameterConfig datatypes.JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ParameterModel) TableName() string {
	return constants.TableParameters
}
