package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/credmatch/backend/internal/model"
)

var ErrCreditModalityNotFound = errors.New("credit modality not found")

type CreditModalityRepository struct {
	db *sqlx.DB
}

func NewCreditModalityRepository(db *sqlx.DB) *CreditModalityRepository {
	return &CreditModalityRepository{db: db}
}

func (r *CreditModalityRepository) GetByStandardModality(ctx context.Context, standardModalityID uuid.UUID) (*model.CreditModality, error) {
	var modality model.CreditModality
	query := `SELECT * FROM credit_modalities WHERE standard_modality_id = $1 AND active = true`
	err := r.db.GetContext(ctx, &modality, query, standardModalityID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCreditModalityNotFound
	}
	return &modality, err
}
