package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/repos"
	"github.com/unbiaslab/unbias-backend/internal/types"
)

// ProvenanceService is the audit trail for theories. Every mutation of
// a theory or its citations records one entry; entries are never
// rewritten.
type ProvenanceService interface {
	Record(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID, eventType string, eventData map[string]any, user string) (*types.Provenance, error)
	History(ctx context.Context, theoryID uuid.UUID) ([]*types.Provenance, error)
}

type provenanceService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.ProvenanceRepo
}

func NewProvenanceService(db *gorm.DB, baseLog *logger.Logger, repo repos.ProvenanceRepo) ProvenanceService {
	return &provenanceService{
		db:   db,
		log:  baseLog.With("service", "ProvenanceService"),
		repo: repo,
	}
}

func (s *provenanceService) Record(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID, eventType string, eventData map[string]any, user string) (*types.Provenance, error) {
	if eventData == nil {
		eventData = map[string]any{}
	}
	payload, err := json.Marshal(eventData)
	if err != nil {
		return nil, fmt.Errorf("marshal event data: %w", err)
	}

	entry := &types.Provenance{
		ID:        uuid.New(),
		TheoryID:  theoryID,
		EventType: eventType,
		EventData: datatypes.JSON(payload),
		Timestamp: time.Now().UTC(),
		User:      user,
	}
	if _, err := s.repo.Create(ctx, tx, entry); err != nil {
		s.log.Error("Failed to record provenance event", "theory_id", theoryID, "event_type", eventType, "error", err)
		return nil, err
	}
	return entry, nil
}

// History returns all events for a theory, newest first. An unknown
// theory yields an empty slice, not an error.
func (s *provenanceService) History(ctx context.Context, theoryID uuid.UUID) ([]*types.Provenance, error) {
	return s.repo.GetByTheoryID(ctx, nil, theoryID)
}
