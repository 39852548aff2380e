package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/types"
)

// ProvenanceRepo is intentionally narrow: rows can be created and read
// back in timestamp order, never updated. Deletion exists only for the
// theory cascade.
type ProvenanceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.Provenance) (*types.Provenance, error)
	GetByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) ([]*types.Provenance, error)
	DeleteByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) error
}

type provenanceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProvenanceRepo(db *gorm.DB, baseLog *logger.Logger) ProvenanceRepo {
	repoLog := baseLog.With("repo", "ProvenanceRepo")
	return &provenanceRepo{db: db, log: repoLog}
}

func (r *provenanceRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.Provenance) (*types.Provenance, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *provenanceRepo) GetByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) ([]*types.Provenance, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	results := []*types.Provenance{}
	if err := transaction.WithContext(ctx).
		Where("theory_id = ?", theoryID).
		Order("timestamp DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *provenanceRepo) DeleteByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("theory_id = ?", theoryID).
		Delete(&types.Provenance{}).Error; err != nil {
		return err
	}
	return nil
}
