package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/credmatch/backend/internal/model"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestModalityMappingRepository_GetByInstitutionAndExternalCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock, uuid.UUID)
		wantErr   bool
		errType   error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock, institutionID uuid.UUID) {
				rows := sqlmock.NewRows([]string{
					"id", "institution_id", "external_code", "external_name", "standard_modality_id",
					"auto_discovered", "confidence_score", "discovery_method", "created_at", "updated_at",
				}).AddRow(
					uuid.New(), institutionID, "CP-01", "Crédito Pessoal", uuid.New(),
					true, 0.5, model.DiscoveryMethodKeywordMatching, time.Now(), time.Now(),
				)
				mock.ExpectQuery(`SELECT \* FROM modality_mappings WHERE institution_id = \$1 AND external_code = \$2`).
					WithArgs(institutionID, "CP-01").
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock, institutionID uuid.UUID) {
				mock.ExpectQuery(`SELECT \* FROM modality_mappings WHERE institution_id = \$1 AND external_code = \$2`).
					WithArgs(institutionID, "CP-01").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errType: ErrModalityMappingNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, mock := newMockDB(t)
			repo := NewModalityMappingRepository(db)
			institutionID := uuid.New()
			tt.setupMock(mock, institutionID)

			mapping, err := repo.GetByInstitutionAndExternalCode(context.Background(), institutionID, "CP-01")

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.errType)
				assert.Nil(t, mapping)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "CP-01", mapping.ExternalCode)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestModalityMappingRepository_Upsert(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewModalityMappingRepository(db)

	mapping := &model.ModalityMapping{
		InstitutionID:      uuid.New(),
		ExternalCode:       "CP-01",
		ExternalName:       "Crédito Pessoal",
		StandardModalityID: uuid.New(),
		AutoDiscovered:     true,
		ConfidenceScore:    0.75,
		DiscoveryMethod:    model.DiscoveryMethodKeywordMatching,
	}

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "external_name", "standard_modality_id",
		"auto_discovered", "confidence_score", "discovery_method", "created_at", "updated_at",
	}).AddRow(
		uuid.New(), mapping.ExternalName, mapping.StandardModalityID,
		true, 0.75, model.DiscoveryMethodKeywordMatching, now, now,
	)

	mock.ExpectQuery(`INSERT INTO modality_mappings`).
		WithArgs(sqlmock.AnyArg(), mapping.InstitutionID, "CP-01", "Crédito Pessoal",
			mapping.StandardModalityID, true, 0.75, model.DiscoveryMethodKeywordMatching).
		WillReturnRows(rows)

	err := repo.Upsert(context.Background(), mapping)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, mapping.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModalityMappingRepository_Upsert_ConflictLoadsWinner(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewModalityMappingRepository(db)

	winnerID := uuid.New()
	winnerModality := uuid.New()
	mapping := &model.ModalityMapping{
		InstitutionID:      uuid.New(),
		ExternalCode:       "CP-01",
		ExternalName:       "Crédito Pessoal",
		StandardModalityID: uuid.New(), // loser's classification
		AutoDiscovered:     true,
		ConfidenceScore:    0.5,
		DiscoveryMethod:    model.DiscoveryMethodKeywordMatching,
	}

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "external_name", "standard_modality_id",
		"auto_discovered", "confidence_score", "discovery_method", "created_at", "updated_at",
	}).AddRow(
		winnerID, "Crédito Pessoal", winnerModality,
		true, 1.0, model.DiscoveryMethodKeywordMatching, now, now,
	)

	mock.ExpectQuery(`INSERT INTO modality_mappings`).
		WillReturnRows(rows)

	err := repo.Upsert(context.Background(), mapping)

	assert.NoError(t, err)
	assert.Equal(t, winnerID, mapping.ID, "conflicting upsert adopts the surviving row")
	assert.Equal(t, winnerModality, mapping.StandardModalityID)
	assert.InDelta(t, 1.0, mapping.ConfidenceScore, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}
