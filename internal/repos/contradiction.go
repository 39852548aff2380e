package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/types"
)

type ContradictionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contradiction *types.Contradiction) (*types.Contradiction, error)
	GetByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) ([]*types.Contradiction, error)
	DeleteByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) error
}

type contradictionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContradictionRepo(db *gorm.DB, baseLog *logger.Logger) ContradictionRepo {
	repoLog := baseLog.With("repo", "ContradictionRepo")
	return &contradictionRepo{db: db, log: repoLog}
}

func (r *contradictionRepo) Create(ctx context.Context, tx *gorm.DB, contradiction *types.Contradiction) (*types.Contradiction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(contradiction).Error; err != nil {
		return nil, err
	}
	return contradiction, nil
}

func (r *contradictionRepo) GetByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) ([]*types.Contradiction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	results := []*types.Contradiction{}
	if err := transaction.WithContext(ctx).
		Where("theory_id = ?", theoryID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contradictionRepo) DeleteByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("theory_id = ?", theoryID).
		Delete(&types.Contradiction{}).Error; err != nil {
		return err
	}
	return nil
}
