package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/credmatch/backend/internal/model"
)

var ErrStandardModalityNotFound = errors.New("standard modality not found")

type StandardModalityRepository struct {
	db *sqlx.DB
}

func NewStandardModalityRepository(db *sqlx.DB) *StandardModalityRepository {
	return &StandardModalityRepository{db: db}
}

func (r *StandardModalityRepository) ListActive(ctx context.Context) ([]model.StandardModality, error) {
	var modalities []model.StandardModality
	query := `SELECT * FROM standard_modalities WHERE active = true ORDER BY code`
	err := r.db.SelectContext(ctx, &modalities, query)
	return modalities, err
}

func (r *StandardModalityRepository) GetByCode(ctx context.Context, code string) (*model.StandardModality, error) {
	var modality model.StandardModality
	query := `SELECT * FROM standard_modalities WHERE code = $1`
	err := r.db.GetContext(ctx, &modality, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStandardModalityNotFound
	}
	return &modality, err
}

// Upsert inserts a taxonomy entry, or loads the winner when a concurrent
// discovery already created the same code. The unique constraint on code is
// what prevents duplicate auto-created entries; DO UPDATE makes the statement
// return the surviving row either way.
func (r *StandardModalityRepository) Upsert(ctx context.Context, modality *model.StandardModality) error {
	query := `
		INSERT INTO standard_modalities (id, code, name, risk_tier, min_monthly_rate, max_monthly_rate, keywords, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (code) DO UPDATE SET updated_at = NOW()
		RETURNING id, name, risk_tier, min_monthly_rate, max_monthly_rate, keywords, active, created_at, updated_at`

	if modality.ID == uuid.Nil {
		modality.ID = uuid.New()
	}
	return r.db.QueryRowxContext(ctx, query,
		modality.ID, modality.Code, modality.Name, modality.RiskTier,
		modality.MinMonthlyRate, modality.MaxMonthlyRate, modality.Keywords, modality.Active,
	).Scan(
		&modality.ID, &modality.Name, &modality.RiskTier,
		&modality.MinMonthlyRate, &modality.MaxMonthlyRate, &modality.Keywords,
		&modality.Active, &modality.CreatedAt, &modality.UpdatedAt,
	)
}
