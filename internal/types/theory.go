package types

import (
	"time"

	"github.com/google/uuid"
)

type Theory struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title   string    `gorm:"column:title;not null" json:"title"`
	Content string    `gorm:"column:content;not null" json:"content"`
	Author  string    `gorm:"column:author" json:"author,omitempty"`

	Citations   []*Citation   `gorm:"foreignKey:TheoryID;references:ID" json:"citations,omitempty"`
	Provenances []*Provenance `gorm:"foreignKey:TheoryID;references:ID" json:"provenances,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Theory) TableName() string { return "theory" }
