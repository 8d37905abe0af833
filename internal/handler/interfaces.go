package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/credmatch/backend/internal/model"
	"github.com/credmatch/backend/internal/service"
)

// NormalizationServiceInterface for handler testing
type NormalizationServiceInterface interface {
	NormalizeBatch(ctx context.Context, customerID string, requestID uuid.UUID, rawOffers []model.RawOffer) service.BatchResult
}

// RankingServiceInterface for handler testing
type RankingServiceInterface interface {
	RankOffers(ctx context.Context, offers []model.CreditOffer) ([]service.RankedOffer, error)
	RankByTotalCost(ctx context.Context, offers []model.CreditOffer) ([]service.CostRankedOffer, error)
}
