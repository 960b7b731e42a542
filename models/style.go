package models

import (
	"time"

	"gorm.io/gorm"
)

// StyleRecord is a built style document stored in the database.
type StyleRecord struct {
	ID          string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"column:name" json:"name"`
	Description *string        `gorm:"column:description" json:"description"`
	Document    []byte         `gorm:"column:document;type:jsonb" json:"-"`
	LayerCount  int            `gorm:"column:layer_count" json:"layer_count"`
	SourceCount int            `gorm:"column:source_count" json:"source_count"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at" json:"-"`
}

func (s *StyleRecord) TableName() string {
	return "map_style.styles"
}
