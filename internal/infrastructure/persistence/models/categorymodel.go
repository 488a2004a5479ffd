package models

import (
	"time"

	"loreforge/internal/shared/constants"
)

type CategoryModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	Name        string `gorm:"size:255;not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Visibility  string `gorm:"size:16;not null;default:'Show';index"`
	Year        *int
	SortOrder   int `gorm:"not null;default:0;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModel) TableName() string {
	return constants.TableCategories
}
