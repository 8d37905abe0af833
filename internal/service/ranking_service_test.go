package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/credmatch/backend/internal/model"
)

func completedOffer(standardModalityID uuid.UUID, monthlyRate float64, maxAmountCents int64) model.CreditOffer {
	return model.CreditOffer{
		ID:                   uuid.New(),
		CustomerID:           "11144477735",
		StandardModalityID:   standardModalityID,
		MaxAmountCents:       maxAmountCents,
		ApprovedAmountCents:  maxAmountCents,
		MonthlyRate:          monthlyRate,
		ApprovedInstallments: 12,
		Status:               model.OfferStatusCompleted,
	}
}

func TestOfferRankingService_RankOffers(t *testing.T) {
	t.Parallel()

	modalityID := uuid.New()
	payrollModality := model.StandardModality{
		ID:             modalityID,
		Code:           "PAYROLL_CREDIT",
		MinMonthlyRate: 0.01,
		MaxMonthlyRate: 0.03,
		Active:         true,
	}

	t.Run("cheaper offer outranks bigger limit", func(t *testing.T) {
		t.Parallel()

		modalities := new(MockStandardModalityRepo)
		modalities.On("ListActive", mock.Anything).Return([]model.StandardModality{payrollModality}, nil)

		offerA := completedOffer(modalityID, 0.015, 300000)
		offerB := completedOffer(modalityID, 0.025, 10000000)

		svc := NewOfferRankingService(modalities)
		ranked, err := svc.RankOffers(context.Background(), []model.CreditOffer{offerB, offerA})

		assert.NoError(t, err)
		assert.Len(t, ranked, 2)
		assert.Equal(t, offerA.ID, ranked[0].Offer.ID)
		assert.InDelta(t, 0.75, ranked[0].InterestScore, 1e-9)
		assert.InDelta(t, 0.25, ranked[1].InterestScore, 1e-9)
		assert.InDelta(t, 0.004008, ranked[0].AmountScore, 1e-4)
		assert.InDelta(t, 0.198397, ranked[1].AmountScore, 1e-4)
		assert.Greater(t, ranked[0].Score, ranked[1].Score)
	})

	t.Run("returns at most three offers, scores non-increasing", func(t *testing.T) {
		t.Parallel()

		modalities := new(MockStandardModalityRepo)
		modalities.On("ListActive", mock.Anything).Return([]model.StandardModality{payrollModality}, nil)

		offers := []model.CreditOffer{
			completedOffer(modalityID, 0.028, 200000),
			completedOffer(modalityID, 0.012, 5000000),
			completedOffer(modalityID, 0.020, 1000000),
			completedOffer(modalityID, 0.015, 3000000),
			completedOffer(modalityID, 0.025, 800000),
		}

		svc := NewOfferRankingService(modalities)
		ranked, err := svc.RankOffers(context.Background(), offers)

		assert.NoError(t, err)
		assert.Len(t, ranked, 3)
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
		}
	})

	t.Run("non-completed offers are excluded", func(t *testing.T) {
		t.Parallel()

		modalities := new(MockStandardModalityRepo)
		modalities.On("ListActive", mock.Anything).Return([]model.StandardModality{payrollModality}, nil)

		pending := completedOffer(modalityID, 0.011, 9000000)
		pending.Status = model.OfferStatusPending
		failed := completedOffer(modalityID, 0.011, 9000000)
		failed.Status = model.OfferStatusFailed
		completed := completedOffer(modalityID, 0.02, 1000000)

		svc := NewOfferRankingService(modalities)
		ranked, err := svc.RankOffers(context.Background(), []model.CreditOffer{pending, failed, completed})

		assert.NoError(t, err)
		assert.Len(t, ranked, 1)
		assert.Equal(t, completed.ID, ranked[0].Offer.ID)
	})

	t.Run("offer without a known modality scores neutral interest", func(t *testing.T) {
		t.Parallel()

		modalities := new(MockStandardModalityRepo)
		modalities.On("ListActive", mock.Anything).Return([]model.StandardModality{payrollModality}, nil)

		orphan := completedOffer(uuid.New(), 0.05, 1000000)

		svc := NewOfferRankingService(modalities)
		ranked, err := svc.RankOffers(context.Background(), []model.CreditOffer{orphan})

		assert.NoError(t, err)
		assert.Len(t, ranked, 1)
		assert.InDelta(t, 0.5, ranked[0].InterestScore, 1e-9)
	})

	t.Run("empty input ranks to empty output", func(t *testing.T) {
		t.Parallel()

		modalities := new(MockStandardModalityRepo)
		modalities.On("ListActive", mock.Anything).Return([]model.StandardModality{}, nil)

		svc := NewOfferRankingService(modalities)
		ranked, err := svc.RankOffers(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, ranked)
	})
}

func TestOfferRankingService_RankByTotalCost(t *testing.T) {
	t.Parallel()

	modalityID := uuid.New()

	expensive := completedOffer(modalityID, 0.02, 500000)
	cheap := completedOffer(modalityID, 0, 500000)
	pending := completedOffer(modalityID, 0.01, 500000)
	pending.Status = model.OfferStatusPending

	svc := NewOfferRankingService(new(MockStandardModalityRepo))
	ranked, err := svc.RankByTotalCost(context.Background(), []model.CreditOffer{expensive, pending, cheap})

	assert.NoError(t, err)
	assert.Len(t, ranked, 2)
	assert.Equal(t, cheap.ID, ranked[0].Offer.ID)
	assert.Equal(t, expensive.ID, ranked[1].Offer.ID)

	// Zero-rate terms: 500000 cents over 12 months rounds each payment
	// half-up to 41667 cents.
	assert.Equal(t, int64(41667), ranked[0].MonthlyPayCents)
	assert.Equal(t, int64(500004), ranked[0].TotalCostCents)

	// Price table terms: 500000 cents at 2% a.m. over 12 months.
	assert.Equal(t, int64(47280), ranked[1].MonthlyPayCents)
	assert.Equal(t, int64(567360), ranked[1].TotalCostCents)
}

func TestInterestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		rate, min, max     float64
		want               float64
	}{
		{"at band minimum", 0.01, 0.01, 0.03, 1},
		{"at band maximum", 0.03, 0.01, 0.03, 0},
		{"mid band", 0.02, 0.01, 0.03, 0.5},
		{"below band clamps to one", 0.005, 0.01, 0.03, 1},
		{"above band clamps to zero", 0.05, 0.01, 0.03, 0},
		{"degenerate band is neutral", 0.02, 0.03, 0.03, 0.5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, InterestScore(tt.rate, tt.min, tt.max), 1e-9)
		})
	}
}

func TestAmountScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount int64
		want   float64
	}{
		{"band minimum", 100_000, 0},
		{"band maximum", 50_000_000, 1},
		{"below band clamps to zero", 50_000, 0},
		{"above band clamps to one", 80_000_000, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, AmountScore(tt.amount), 1e-9)
		})
	}
}
