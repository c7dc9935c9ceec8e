package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a catalogue entry referenced by recipes. Two ingredients may
// share a name (e.g. the same product in different measurement units); they
// are always distinguished by identity, never by name.
type Ingredient struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name            string    `json:"name" db:"name" gorm:"type:varchar(100);not null;index"`
	MeasurementUnit string    `json:"measurementUnit" db:"measurement_unit" gorm:"type:varchar(15);not null"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
