package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Validation lifecycle: pending moves to exactly one of the terminal
// states below and never back.
const (
	CitationStatusPending     = "pending"
	CitationStatusValidated   = "validated"
	CitationStatusNeedsReview = "needs_review"
	CitationStatusInvalid     = "invalid"
	CitationStatusError       = "error"
)

type Citation struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TheoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"theory_id"`
	Theory   *Theory   `gorm:"constraint:OnDelete:CASCADE;foreignKey:TheoryID;references:ID" json:"theory,omitempty"`

	CitationText     string         `gorm:"column:citation_text;not null" json:"citation_text"`
	Source           string         `gorm:"column:source" json:"source,omitempty"`
	ValidationStatus string         `gorm:"column:validation_status;not null;default:'pending'" json:"validation_status"`
	ValidationResult datatypes.JSON `gorm:"column:validation_result;type:jsonb" json:"validation_result,omitempty"`
	ConfidenceScore  *float64       `gorm:"column:confidence_score" json:"confidence_score,omitempty"`
	ValidatedAt      *time.Time     `gorm:"column:validated_at" json:"validated_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Citation) TableName() string { return "citation" }
