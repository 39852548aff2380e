package types

import (
	"time"

	"github.com/google/uuid"
)

type Assumption struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TheoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"theory_id"`
	Theory   *Theory   `gorm:"constraint:OnDelete:CASCADE;foreignKey:TheoryID;references:ID" json:"theory,omitempty"`

	AssumptionText  string   `gorm:"column:assumption_text;not null" json:"assumption_text"`
	ConfidenceLevel *float64 `gorm:"column:confidence_level" json:"confidence_level,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Assumption) TableName() string { return "assumption" }
