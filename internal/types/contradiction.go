package types

import (
	"time"

	"github.com/google/uuid"
)

type Contradiction struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TheoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"theory_id"`
	Theory   *Theory   `gorm:"constraint:OnDelete:CASCADE;foreignKey:TheoryID;references:ID" json:"theory,omitempty"`

	ContradictionText string   `gorm:"column:contradiction_text;not null" json:"contradiction_text"`
	Severity          *float64 `gorm:"column:severity" json:"severity,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Contradiction) TableName() string { return "contradiction" }
