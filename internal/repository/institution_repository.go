package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/credmatch/backend/internal/model"
)

var ErrInstitutionNotFound = errors.New("institution not found")

type InstitutionRepository struct {
	db *sqlx.DB
}

func NewInstitutionRepository(db *sqlx.DB) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

func (r *InstitutionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Institution, error) {
	var institution model.Institution
	query := `SELECT * FROM institutions WHERE id = $1`
	err := r.db.GetContext(ctx, &institution, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInstitutionNotFound
	}
	return &institution, err
}

func (r *InstitutionRepository) GetByExternalID(ctx context.Context, externalID string) (*model.Institution, error) {
	var institution model.Institution
	query := `SELECT * FROM institutions WHERE external_id = $1`
	err := r.db.GetContext(ctx, &institution, query, externalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInstitutionNotFound
	}
	return &institution, err
}

func (r *InstitutionRepository) Create(ctx context.Context, institution *model.Institution) error {
	query := `
		INSERT INTO institutions (id, external_id, name, code, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`

	institution.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		institution.ID, institution.ExternalID, institution.Name, institution.Code, institution.Active,
	).Scan(&institution.CreatedAt, &institution.UpdatedAt)
}
