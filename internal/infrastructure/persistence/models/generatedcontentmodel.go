package models

import (
	"time"

	"gorm.io/datatypes"

	"loreforge/internal/shared/constants"
)

type GeneratedContentModel struct {
	ID                 string `gorm:"primaryKey;size:36"`
	Title              string `gorm:"size:255;not null"`
	FictionContent     string `gorm:"type:text;not null"`
	ImageData          []byte `gorm:"type:blob"`
	ThumbnailData      []byte `gorm:"type:blob"`
	ImageFormat        string `gorm:"size:16"`
	ImageSizeBytes     int    `gorm:"not null;default:0"`
	ThumbnailSizeBytes int    `gorm:"not null;default:0"`
	ImagePrompt        string `gorm:"type:text"`
	PromptData         datatypes.JSON
	Metadata           datatypes.JSON
	GenerationTimeMS   int64  `gorm:"column:generation_time_ms;not null;default:0"`
	WordCount          int    `gorm:"not null;default:0"`
	Status             string `gorm:"size:16;not null;default:'pending';index"`
	ErrorMessage       string `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"index:,sort:desc"`
	UpdatedAt          time.Time
}

func (GeneratedContentModel) TableName() string {
	return constants.TableGeneratedContent
}
