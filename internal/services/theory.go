package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/repos"
	"github.com/unbiaslab/unbias-backend/internal/types"
)

type TheoryCreateInput struct {
	Title   string
	Content string
	Author  string
	User    string
}

// TheoryUpdateInput carries only the fields the caller actually sent;
// nil means "leave unchanged", mirroring a partial PUT body.
type TheoryUpdateInput struct {
	Title   *string
	Content *string
	Author  *string
	User    string
}

type TheoryService interface {
	Create(ctx context.Context, in TheoryCreateInput) (*types.Theory, error)
	List(ctx context.Context, skip, limit int) ([]*types.Theory, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Theory, error)
	Update(ctx context.Context, id uuid.UUID, in TheoryUpdateInput) (*types.Theory, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Assumptions(ctx context.Context, theoryID uuid.UUID) ([]*types.Assumption, error)
	Contradictions(ctx context.Context, theoryID uuid.UUID) ([]*types.Contradiction, error)
}

type theoryService struct {
	db                *gorm.DB
	log               *logger.Logger
	theoryRepo        repos.TheoryRepo
	citationRepo      repos.CitationRepo
	provenanceRepo    repos.ProvenanceRepo
	assumptionRepo    repos.AssumptionRepo
	contradictionRepo repos.ContradictionRepo
	provenance        ProvenanceService
}

func NewTheoryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	theoryRepo repos.TheoryRepo,
	citationRepo repos.CitationRepo,
	provenanceRepo repos.ProvenanceRepo,
	assumptionRepo repos.AssumptionRepo,
	contradictionRepo repos.ContradictionRepo,
	provenance ProvenanceService,
) TheoryService {
	return &theoryService{
		db:                db,
		log:               baseLog.With("service", "TheoryService"),
		theoryRepo:        theoryRepo,
		citationRepo:      citationRepo,
		provenanceRepo:    provenanceRepo,
		assumptionRepo:    assumptionRepo,
		contradictionRepo: contradictionRepo,
		provenance:        provenance,
	}
}

func (s *theoryService) Create(ctx context.Context, in TheoryCreateInput) (*types.Theory, error) {
	now := time.Now().UTC()
	theory := &types.Theory{
		ID:        uuid.New(),
		Title:     in.Title,
		Content:   in.Content,
		Author:    in.Author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.theoryRepo.Create(ctx, nil, theory); err != nil {
		return nil, err
	}
	if _, err := s.provenance.Record(ctx, nil, theory.ID, "created", map[string]any{
		"title":  theory.Title,
		"author": theory.Author,
	}, in.User); err != nil {
		return nil, err
	}
	return theory, nil
}

func (s *theoryService) List(ctx context.Context, skip, limit int) ([]*types.Theory, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return s.theoryRepo.List(ctx, nil, skip, limit)
}

func (s *theoryService) Get(ctx context.Context, id uuid.UUID) (*types.Theory, error) {
	return s.theoryRepo.GetByID(ctx, nil, id)
}

func (s *theoryService) Update(ctx context.Context, id uuid.UUID, in TheoryUpdateInput) (*types.Theory, error) {
	theory, err := s.theoryRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	changed := applyTheoryUpdate(theory, in)
	theory.UpdatedAt = time.Now().UTC()
	if _, err := s.theoryRepo.Save(ctx, nil, theory); err != nil {
		return nil, err
	}
	if _, err := s.provenance.Record(ctx, nil, theory.ID, "updated", changed, in.User); err != nil {
		return nil, err
	}
	return theory, nil
}

// applyTheoryUpdate merges the provided fields onto the loaded record
// and reports them; the map becomes the "updated" provenance payload.
func applyTheoryUpdate(theory *types.Theory, in TheoryUpdateInput) map[string]any {
	changed := map[string]any{}
	if in.Title != nil {
		theory.Title = *in.Title
		changed["title"] = *in.Title
	}
	if in.Content != nil {
		theory.Content = *in.Content
		changed["content"] = *in.Content
	}
	if in.Author != nil {
		theory.Author = *in.Author
		changed["author"] = *in.Author
	}
	return changed
}

// Delete removes a theory and everything hanging off it in one
// transaction: children first, then the parent row.
func (s *theoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.theoryRepo.GetByID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.citationRepo.DeleteByTheoryID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.provenanceRepo.DeleteByTheoryID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.assumptionRepo.DeleteByTheoryID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.contradictionRepo.DeleteByTheoryID(ctx, tx, id); err != nil {
			return err
		}
		return s.theoryRepo.DeleteByID(ctx, tx, id)
	})
}

func (s *theoryService) Assumptions(ctx context.Context, theoryID uuid.UUID) ([]*types.Assumption, error) {
	return s.assumptionRepo.GetByTheoryID(ctx, nil, theoryID)
}

func (s *theoryService) Contradictions(ctx context.Context, theoryID uuid.UUID) ([]*types.Contradiction, error) {
	return s.contradictionRepo.GetByTheoryID(ctx, nil, theoryID)
}
