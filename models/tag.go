package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag labels recipes for filtering. Name, hex color and slug are all unique.
type Tag struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name  string    `json:"name" db:"name" gorm:"type:varchar(200);not null;unique"`
	Color string    `json:"color" db:"color" gorm:"type:varchar(7);not null;unique"`
	Slug  string    `json:"slug" db:"slug" gorm:"type:varchar(200);not null;unique"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Color == "" {
		t.Color = "#000000"
	}
	return nil
}
