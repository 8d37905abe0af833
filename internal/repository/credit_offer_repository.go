package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/credmatch/backend/internal/model"
)

var ErrCreditOfferNotFound = errors.New("credit offer not found")

type CreditOfferRepository struct {
	db *sqlx.DB
}

func NewCreditOfferRepository(db *sqlx.DB) *CreditOfferRepository {
	return &CreditOfferRepository{db: db}
}

func (r *CreditOfferRepository) Create(ctx context.Context, offer *model.CreditOffer) error {
	query := `
		INSERT INTO credit_offers (id, customer_id, request_id, institution_id, modality_id, standard_modality_id,
			min_amount_cents, max_amount_cents, approved_amount_cents, monthly_rate,
			min_installments, max_installments, approved_installments, status, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
		RETURNING created_at, updated_at`

	offer.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		offer.ID, offer.CustomerID, offer.RequestID, offer.InstitutionID, offer.ModalityID, offer.StandardModalityID,
		offer.MinAmountCents, offer.MaxAmountCents, offer.ApprovedAmountCents, offer.MonthlyRate,
		offer.MinInstallments, offer.MaxInstallments, offer.ApprovedInstallments, offer.Status, offer.ErrorMessage,
	).Scan(&offer.CreatedAt, &offer.UpdatedAt)
}

func (r *CreditOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CreditOffer, error) {
	var offer model.CreditOffer
	query := `SELECT * FROM credit_offers WHERE id = $1`
	err := r.db.GetContext(ctx, &offer, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCreditOfferNotFound
	}
	return &offer, err
}

func (r *CreditOfferRepository) ListByCustomer(ctx context.Context, customerID string) ([]model.CreditOffer, error) {
	var offers []model.CreditOffer
	query := `SELECT * FROM credit_offers WHERE customer_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &offers, query, customerID)
	return offers, err
}

func (r *CreditOfferRepository) ListCompletedByCustomer(ctx context.Context, customerID string) ([]model.CreditOffer, error) {
	var offers []model.CreditOffer
	query := `SELECT * FROM credit_offers WHERE customer_id = $1 AND status = $2 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &offers, query, customerID, model.OfferStatusCompleted)
	return offers, err
}

// ExpireStale marks pending offers created before the cutoff as expired and
// returns the number of rows transitioned.
func (r *CreditOfferRepository) ExpireStale(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `UPDATE credit_offers SET status = $1, updated_at = NOW() WHERE status = $2 AND created_at < $3`
	result, err := r.db.ExecContext(ctx, query, model.OfferStatusExpired, model.OfferStatusPending, olderThan)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
