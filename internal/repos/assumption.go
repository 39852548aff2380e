package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/types"
)

type AssumptionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assumption *types.Assumption) (*types.Assumption, error)
	GetByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) ([]*types.Assumption, error)
	DeleteByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) error
}

type assumptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssumptionRepo(db *gorm.DB, baseLog *logger.Logger) AssumptionRepo {
	repoLog := baseLog.With("repo", "AssumptionRepo")
	return &assumptionRepo{db: db, log: repoLog}
}

func (r *assumptionRepo) Create(ctx context.Context, tx *gorm.DB, assumption *types.Assumption) (*types.Assumption, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(assumption).Error; err != nil {
		return nil, err
	}
	return assumption, nil
}

func (r *assumptionRepo) GetByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) ([]*types.Assumption, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	results := []*types.Assumption{}
	if err := transaction.WithContext(ctx).
		Where("theory_id = ?", theoryID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assumptionRepo) DeleteByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("theory_id = ?", theoryID).
		Delete(&types.Assumption{}).Error; err != nil {
		return err
	}
	return nil
}
