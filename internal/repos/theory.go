package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/types"
)

type TheoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, theory *types.Theory) (*types.Theory, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Theory, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Theory, error)
	Save(ctx context.Context, tx *gorm.DB, theory *types.Theory) (*types.Theory, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type theoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTheoryRepo(db *gorm.DB, baseLog *logger.Logger) TheoryRepo {
	repoLog := baseLog.With("repo", "TheoryRepo")
	return &theoryRepo{db: db, log: repoLog}
}

func (r *theoryRepo) Create(ctx context.Context, tx *gorm.DB, theory *types.Theory) (*types.Theory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(theory).Error; err != nil {
		return nil, err
	}
	return theory, nil
}

func (r *theoryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Theory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Theory
	if err := transaction.WithContext(ctx).
		Preload("Citations").
		Preload("Provenances").
		First(&result, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *theoryRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.Theory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Theory
	if err := transaction.WithContext(ctx).
		Preload("Citations").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *theoryRepo) Save(ctx context.Context, tx *gorm.DB, theory *types.Theory) (*types.Theory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Omit(clause.Associations).
		Save(theory).Error; err != nil {
		return nil, err
	}
	return theory, nil
}

func (r *theoryRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Theory{}).Error; err != nil {
		return err
	}
	return nil
}
