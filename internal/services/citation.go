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

type CitationAddInput struct {
	CitationText string
	Source       string
	User         string
}

type CitationValidationOutcome struct {
	CitationID       uuid.UUID               `json:"citation_id"`
	ValidationStatus string                  `json:"validation_status"`
	ValidationResult *types.ValidationResult `json:"validation_result"`
	ConfidenceScore  float64                 `json:"confidence_score"`
}

type CitationService interface {
	Add(ctx context.Context, theoryID uuid.UUID, in CitationAddInput) (*types.Citation, error)
	Validate(ctx context.Context, citationID uuid.UUID, user string) (*CitationValidationOutcome, error)
}

type citationService struct {
	db           *gorm.DB
	log          *logger.Logger
	theoryRepo   repos.TheoryRepo
	citationRepo repos.CitationRepo
	validator    ValidationClient
	provenance   ProvenanceService
}

func NewCitationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	theoryRepo repos.TheoryRepo,
	citationRepo repos.CitationRepo,
	validator ValidationClient,
	provenance ProvenanceService,
) CitationService {
	return &citationService{
		db:           db,
		log:          baseLog.With("service", "CitationService"),
		theoryRepo:   theoryRepo,
		citationRepo: citationRepo,
		validator:    validator,
		provenance:   provenance,
	}
}

func (s *citationService) Add(ctx context.Context, theoryID uuid.UUID, in CitationAddInput) (*types.Citation, error) {
	if _, err := s.theoryRepo.GetByID(ctx, nil, theoryID); err != nil {
		return nil, err
	}

	citation := &types.Citation{
		ID:               uuid.New(),
		TheoryID:         theoryID,
		CitationText:     in.CitationText,
		Source:           in.Source,
		ValidationStatus: types.CitationStatusPending,
		CreatedAt:        time.Now().UTC(),
	}
	if _, err := s.citationRepo.Create(ctx, nil, citation); err != nil {
		return nil, err
	}
	if _, err := s.provenance.Record(ctx, nil, theoryID, "citation_added", map[string]any{
		"citation_id": citation.ID,
		"source":      citation.Source,
	}, in.User); err != nil {
		return nil, err
	}
	return citation, nil
}

// Validate runs the citation through the validation client and persists
// the verdict onto the row. The verdict is always a value, even when
// the remote call failed, so this path never branches on failure mode.
func (s *citationService) Validate(ctx context.Context, citationID uuid.UUID, user string) (*CitationValidationOutcome, error) {
	citation, err := s.citationRepo.GetByID(ctx, nil, citationID)
	if err != nil {
		return nil, err
	}

	verdict, err := s.validator.Validate(ctx, citation.CitationText, citation.Source)
	if err != nil {
		return nil, fmt.Errorf("validate citation: %w", err)
	}

	status := verdict.Status
	if status == "" {
		status = types.CitationStatusValidated
	}
	payload, err := json.Marshal(verdict)
	if err != nil {
		return nil, fmt.Errorf("marshal verdict: %w", err)
	}

	now := time.Now().UTC()
	confidence := verdict.Confidence
	citation.ValidationStatus = status
	citation.ValidationResult = datatypes.JSON(payload)
	citation.ConfidenceScore = &confidence
	citation.ValidatedAt = &now
	if _, err := s.citationRepo.Save(ctx, nil, citation); err != nil {
		return nil, err
	}

	if _, err := s.provenance.Record(ctx, nil, citation.TheoryID, "citation_validated", map[string]any{
		"citation_id": citation.ID,
		"status":      citation.ValidationStatus,
		"confidence":  confidence,
	}, user); err != nil {
		return nil, err
	}

	return &CitationValidationOutcome{
		CitationID:       citation.ID,
		ValidationStatus: citation.ValidationStatus,
		ValidationResult: verdict,
		ConfidenceScore:  confidence,
	}, nil
}
