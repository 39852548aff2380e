package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Provenance rows are append-only: written once, read ordered by
// timestamp, deleted only together with their theory.
type Provenance struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TheoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"theory_id"`
	Theory   *Theory   `gorm:"constraint:OnDelete:CASCADE;foreignKey:TheoryID;references:ID" json:"theory,omitempty"`

	EventType string         `gorm:"column:event_type;not null" json:"event_type"`
	EventData datatypes.JSON `gorm:"column:event_data;type:jsonb" json:"event_data,omitempty"`
	Timestamp time.Time      `gorm:"column:timestamp;not null;index" json:"timestamp"`
	User      string         `gorm:"column:user" json:"user,omitempty"`
}

func (Provenance) TableName() string { return "provenance" }
