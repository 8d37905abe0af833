package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/credmatch/backend/internal/model"
)

//go:generate mockery --name=InstitutionRepositoryInterface --output=../mocks --outpkg=mocks
type InstitutionRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Institution, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.Institution, error)
	Create(ctx context.Context, institution *model.Institution) error
}

//go:generate mockery --name=StandardModalityRepositoryInterface --output=../mocks --outpkg=mocks
type StandardModalityRepositoryInterface interface {
	ListActive(ctx context.Context) ([]model.StandardModality, error)
	GetByCode(ctx context.Context, code string) (*model.StandardModality, error)
	// Upsert inserts the modality or, when the code already exists, loads the
	// existing row into the receiver. Safe under concurrent discovery.
	Upsert(ctx context.Context, modality *model.StandardModality) error
}

//go:generate mockery --name=ModalityMappingRepositoryInterface --output=../mocks --outpkg=mocks
type ModalityMappingRepositoryInterface interface {
	GetByInstitutionAndExternalCode(ctx context.Context, institutionID uuid.UUID, externalCode string) (*model.ModalityMapping, error)
	// Upsert inserts the mapping or updates the existing row for the same
	// (institution, external code) pair. Safe under concurrent discovery.
	Upsert(ctx context.Context, mapping *model.ModalityMapping) error
}

//go:generate mockery --name=CreditModalityRepositoryInterface --output=../mocks --outpkg=mocks
type CreditModalityRepositoryInterface interface {
	GetByStandardModality(ctx context.Context, standardModalityID uuid.UUID) (*model.CreditModality, error)
}

//go:generate mockery --name=CreditOfferRepositoryInterface --output=../mocks --outpkg=mocks
type CreditOfferRepositoryInterface interface {
	Create(ctx context.Context, offer *model.CreditOffer) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CreditOffer, error)
	ListByCustomer(ctx context.Context, customerID string) ([]model.CreditOffer, error)
	ListCompletedByCustomer(ctx context.Context, customerID string) ([]model.CreditOffer, error)
	ExpireStale(ctx context.Context, olderThan time.Time) (int64, error)
}

// MappingCache is the read-through cache for resolved modality mappings.
// A cache failure is never fatal; callers fall back to the repository.
type MappingCache interface {
	Get(ctx context.Context, institutionID uuid.UUID, externalCode string) (*model.ModalityMapping, bool)
	Set(ctx context.Context, mapping *model.ModalityMapping) error
}
