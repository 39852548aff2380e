package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/types"
)

type CitationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, citation *types.Citation) (*types.Citation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Citation, error)
	GetByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) ([]*types.Citation, error)
	Save(ctx context.Context, tx *gorm.DB, citation *types.Citation) (*types.Citation, error)
	DeleteByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) error
}

type citationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCitationRepo(db *gorm.DB, baseLog *logger.Logger) CitationRepo {
	repoLog := baseLog.With("repo", "CitationRepo")
	return &citationRepo{db: db, log: repoLog}
}

func (r *citationRepo) Create(ctx context.Context, tx *gorm.DB, citation *types.Citation) (*types.Citation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(citation).Error; err != nil {
		return nil, err
	}
	return citation, nil
}

func (r *citationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Citation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Citation
	if err := transaction.WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *citationRepo) GetByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) ([]*types.Citation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Citation
	if err := transaction.WithContext(ctx).
		Where("theory_id = ?", theoryID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *citationRepo) Save(ctx context.Context, tx *gorm.DB, citation *types.Citation) (*types.Citation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(citation).Error; err != nil {
		return nil, err
	}
	return citation, nil
}

func (r *citationRepo) DeleteByTheoryID(ctx context.Context, tx *gorm.DB, theoryID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("theory_id = ?", theoryID).
		Delete(&types.Citation{}).Error; err != nil {
		return err
	}
	return nil
}
