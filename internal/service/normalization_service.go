package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/credmatch/backend/internal/apperror"
	"github.com/credmatch/backend/internal/finance"
	"github.com/credmatch/backend/internal/logger"
	"github.com/credmatch/backend/internal/model"
	"github.com/credmatch/backend/internal/repository"
	"github.com/credmatch/backend/pkg/money"
)

// DiscoveryInterface is the slice of auto-discovery consumed by
// normalization.
type DiscoveryInterface interface {
	DiscoverOrCreateMapping(ctx context.Context, institutionID uuid.UUID, externalCode, modalityName string) (*model.ModalityMapping, error)
}

// OfferNormalizationService turns raw institution payloads into validated
// CreditOffer entities.
type OfferNormalizationService struct {
	discovery    DiscoveryInterface
	institutions repository.InstitutionRepositoryInterface
	modalities   repository.CreditModalityRepositoryInterface
}

func NewOfferNormalizationService(
	discovery DiscoveryInterface,
	institutions repository.InstitutionRepositoryInterface,
	modalities repository.CreditModalityRepositoryInterface,
) *OfferNormalizationService {
	return &OfferNormalizationService{
		discovery:    discovery,
		institutions: institutions,
		modalities:   modalities,
	}
}

// OfferFailure records why one raw offer could not be normalized.
type OfferFailure struct {
	Index         int    `json:"index"`
	InstitutionID string `json:"institution_id"`
	ModalityCode  string `json:"modality_code"`
	Reason        string `json:"reason"`
}

// NormalizedOffer is one successful batch entry, keeping the index of the
// raw offer it came from so later failures stay attributable.
type NormalizedOffer struct {
	Index int               `json:"index"`
	Offer model.CreditOffer `json:"offer"`
}

// BatchResult carries both sides of a batch normalization so callers can
// choose between partial-success consumption and full diagnostics.
type BatchResult struct {
	Succeeded []NormalizedOffer `json:"succeeded"`
	Failed    []OfferFailure    `json:"failed"`
}

// NormalizeOffer validates and normalizes one raw offer into a completed
// CreditOffer. Every failure carries a typed reason: validation errors for
// malformed fields and value-object violations, not-found errors for lookup
// misses. No entity is produced on failure.
func (s *OfferNormalizationService) NormalizeOffer(ctx context.Context, customerID string, requestID uuid.UUID, raw model.RawOffer) (*model.CreditOffer, error) {
	if err := validateRawOffer(raw); err != nil {
		return nil, err
	}

	institution, err := s.institutions.GetByExternalID(ctx, raw.InstitutionID)
	if err != nil {
		if errors.Is(err, repository.ErrInstitutionNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("institution %q", raw.InstitutionID))
		}
		return nil, fmt.Errorf("resolving institution %q: %w", raw.InstitutionID, err)
	}

	modalityName := raw.ModalityName
	if modalityName == "" {
		modalityName = raw.ModalityCode
	}
	mapping, err := s.discovery.DiscoverOrCreateMapping(ctx, institution.ID, raw.ModalityCode, modalityName)
	if err != nil {
		return nil, fmt.Errorf("discovering modality mapping: %w", err)
	}

	modality, err := s.modalities.GetByStandardModality(ctx, mapping.StandardModalityID)
	if err != nil {
		if errors.Is(err, repository.ErrCreditModalityNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("credit modality for standard modality %s", mapping.StandardModalityID))
		}
		return nil, fmt.Errorf("resolving credit modality: %w", err)
	}

	minAmount, err := money.NewFromFloat(*raw.MinAmount)
	if err != nil {
		return nil, apperror.Validation("min_amount", err.Error())
	}
	maxAmount, err := money.NewFromFloat(*raw.MaxAmount)
	if err != nil {
		return nil, apperror.Validation("max_amount", err.Error())
	}
	approvedAmount := maxAmount
	if raw.ApprovedAmount != nil {
		approvedAmount, err = money.NewFromFloat(*raw.ApprovedAmount)
		if err != nil {
			return nil, apperror.Validation("approved_amount", err.Error())
		}
	}

	rate, err := finance.NewInterestRate(*raw.MonthlyInterestRate)
	if err != nil {
		return nil, apperror.Validation("monthly_interest_rate", err.Error())
	}

	minInstallments, err := finance.NewInstallmentCount(*raw.MinInstallments)
	if err != nil {
		return nil, apperror.Validation("min_installments", err.Error())
	}
	maxInstallments, err := finance.NewInstallmentCount(*raw.MaxInstallments)
	if err != nil {
		return nil, apperror.Validation("max_installments", err.Error())
	}
	approvedInstallments := maxInstallments
	if raw.ApprovedInstallments != nil {
		approvedInstallments, err = finance.NewInstallmentCount(*raw.ApprovedInstallments)
		if err != nil {
			return nil, apperror.Validation("approved_installments", err.Error())
		}
	}

	return &model.CreditOffer{
		CustomerID:           customerID,
		RequestID:            requestID,
		InstitutionID:        institution.ID,
		ModalityID:           modality.ID,
		StandardModalityID:   mapping.StandardModalityID,
		MinAmountCents:       minAmount.Cents(),
		MaxAmountCents:       maxAmount.Cents(),
		ApprovedAmountCents:  approvedAmount.Cents(),
		MonthlyRate:          rate.Monthly(),
		MinInstallments:      minInstallments.Value(),
		MaxInstallments:      maxInstallments.Value(),
		ApprovedInstallments: approvedInstallments.Value(),
		Status:               model.OfferStatusCompleted,
	}, nil
}

// NormalizeBatch normalizes a list of raw offers. Failures never abort the
// batch: each failed offer is reported alongside the successes.
func (s *OfferNormalizationService) NormalizeBatch(ctx context.Context, customerID string, requestID uuid.UUID, rawOffers []model.RawOffer) BatchResult {
	result := BatchResult{}

	for i, raw := range rawOffers {
		offer, err := s.NormalizeOffer(ctx, customerID, requestID, raw)
		if err != nil {
			logger.FromContext(ctx).Warn("dropping offer that failed normalization",
				"index", i,
				"institution_id", raw.InstitutionID,
				"modality_code", raw.ModalityCode,
				"error", err.Error(),
			)
			result.Failed = append(result.Failed, OfferFailure{
				Index:         i,
				InstitutionID: raw.InstitutionID,
				ModalityCode:  raw.ModalityCode,
				Reason:        apperror.GetMessage(err),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, NormalizedOffer{Index: i, Offer: *offer})
	}

	return result
}

func validateRawOffer(raw model.RawOffer) error {
	if raw.InstitutionID == "" {
		return apperror.Validation("institution_id", "is required")
	}
	if raw.ModalityCode == "" {
		return apperror.Validation("modality_code", "is required")
	}
	if raw.MinAmount == nil {
		return apperror.Validation("min_amount", "is required")
	}
	if raw.MaxAmount == nil {
		return apperror.Validation("max_amount", "is required")
	}
	if raw.MinInstallments == nil {
		return apperror.Validation("min_installments", "is required")
	}
	if raw.MaxInstallments == nil {
		return apperror.Validation("max_installments", "is required")
	}
	if raw.MonthlyInterestRate == nil {
		return apperror.Validation("monthly_interest_rate", "is required")
	}

	// Negative amounts and rates are rejected by the value-object
	// constructors; only the cross-field orderings are checked here.
	if *raw.MinAmount > *raw.MaxAmount {
		return apperror.Validation("min_amount", "must not exceed max_amount")
	}
	if *raw.MinInstallments > *raw.MaxInstallments {
		return apperror.Validation("min_installments", "must not exceed max_installments")
	}
	return nil
}
