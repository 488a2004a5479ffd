package models

import (
	"time"

	"loreforge/internal/shared/constants"
)

type SettingModel struct {
	SettingKey  string `gorm:"column:setting_key;primaryKey;size:255"`
	Value       string `gorm:"type:text;not null;default:''"`
	DataType    string `gorm:"size:16;not null;default:'string'"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (SettingModel) TableName() string {
	return constants.TableSettings
}
