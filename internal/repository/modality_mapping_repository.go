package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/credmatch/backend/internal/model"
)

var ErrModalityMappingNotFound = errors.New("modality mapping not found")

type ModalityMappingRepository struct {
	db *sqlx.DB
}

func NewModalityMappingRepository(db *sqlx.DB) *ModalityMappingRepository {
	return &ModalityMappingRepository{db: db}
}

func (r *ModalityMappingRepository) GetByInstitutionAndExternalCode(ctx context.Context, institutionID uuid.UUID, externalCode string) (*model.ModalityMapping, error) {
	var mapping model.ModalityMapping
	query := `SELECT * FROM modality_mappings WHERE institution_id = $1 AND external_code = $2`
	err := r.db.GetContext(ctx, &mapping, query, institutionID, externalCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrModalityMappingNotFound
	}
	return &mapping, err
}

// Upsert persists a mapping under the unique (institution_id, external_code)
// constraint. Two discoveries racing on a previously unseen pairing converge
// on a single row; the loser's classification result is discarded and the
// surviving row is loaded back into the receiver.
func (r *ModalityMappingRepository) Upsert(ctx context.Context, mapping *model.ModalityMapping) error {
	query := `
		INSERT INTO modality_mappings (id, institution_id, external_code, external_name, standard_modality_id, auto_discovered, confidence_score, discovery_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (institution_id, external_code) DO UPDATE SET updated_at = NOW()
		RETURNING id, external_name, standard_modality_id, auto_discovered, confidence_score, discovery_method, created_at, updated_at`

	if mapping.ID == uuid.Nil {
		mapping.ID = uuid.New()
	}
	return r.db.QueryRowxContext(ctx, query,
		mapping.ID, mapping.InstitutionID, mapping.ExternalCode, mapping.ExternalName,
		mapping.StandardModalityID, mapping.AutoDiscovered, mapping.ConfidenceScore, mapping.DiscoveryMethod,
	).Scan(
		&mapping.ID, &mapping.ExternalName, &mapping.StandardModalityID,
		&mapping.AutoDiscovered, &mapping.ConfidenceScore, &mapping.DiscoveryMethod,
		&mapping.CreatedAt, &mapping.UpdatedAt,
	)
}
