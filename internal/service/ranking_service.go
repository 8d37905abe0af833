package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/credmatch/backend/internal/finance"
	"github.com/credmatch/backend/internal/model"
	"github.com/credmatch/backend/internal/repository"
	"github.com/credmatch/backend/pkg/money"
)

const (
	// Scoring weights: rate dominates, approved limit breaks the rest.
	interestWeight = 0.7
	amountWeight   = 0.3

	// Fixed market band for amount normalization: R$1,000 to R$500,000.
	marketMinAmountCents = 100_000
	marketMaxAmountCents = 50_000_000

	// maxRankedOffers caps how many offers a customer sees.
	maxRankedOffers = 3
)

// RankedOffer is a scored offer as presented to the customer.
type RankedOffer struct {
	Offer         model.CreditOffer `json:"offer"`
	Score         float64           `json:"score"`
	InterestScore float64           `json:"interestScore"`
	AmountScore   float64           `json:"amountScore"`
}

// CostRankedOffer is an offer ordered by total repayment cost.
type CostRankedOffer struct {
	Offer           model.CreditOffer `json:"offer"`
	TotalCostCents  int64             `json:"totalCostCents"`
	MonthlyPayCents int64             `json:"monthlyPaymentCents"`
}

// OfferRankingService scores and orders completed offers using the
// modality's typical rate range and the market amount band.
type OfferRankingService struct {
	modalities repository.StandardModalityRepositoryInterface
}

func NewOfferRankingService(modalities repository.StandardModalityRepositoryInterface) *OfferRankingService {
	return &OfferRankingService{modalities: modalities}
}

// RankOffers filters to completed offers, scores each one as
// 0.7·interestScore + 0.3·amountScore, and returns at most the top 3 in
// non-increasing score order. Ties keep their prior relative order.
func (s *OfferRankingService) RankOffers(ctx context.Context, offers []model.CreditOffer) ([]RankedOffer, error) {
	byID, err := s.modalityRanges(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.Status != model.OfferStatusCompleted {
			continue
		}

		interestScore := 0.5
		if modality, ok := byID[offer.StandardModalityID.String()]; ok {
			interestScore = InterestScore(offer.MonthlyRate, modality.MinMonthlyRate, modality.MaxMonthlyRate)
		}
		amountScore := AmountScore(offer.MaxAmountCents)

		ranked = append(ranked, RankedOffer{
			Offer:         offer,
			Score:         interestWeight*interestScore + amountWeight*amountScore,
			InterestScore: interestScore,
			AmountScore:   amountScore,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > maxRankedOffers {
		ranked = ranked[:maxRankedOffers]
	}
	return ranked, nil
}

// RankByTotalCost orders completed offers ascending by the total repayment
// of the approved terms. No scoring is involved.
func (s *OfferRankingService) RankByTotalCost(ctx context.Context, offers []model.CreditOffer) ([]CostRankedOffer, error) {
	ranked := make([]CostRankedOffer, 0, len(offers))
	for _, offer := range offers {
		if offer.Status != model.OfferStatusCompleted {
			continue
		}

		total, payment, err := approvedTermsCost(offer)
		if err != nil {
			return nil, fmt.Errorf("computing total cost for offer %s: %w", offer.ID, err)
		}

		ranked = append(ranked, CostRankedOffer{
			Offer:           offer,
			TotalCostCents:  total,
			MonthlyPayCents: payment,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalCostCents < ranked[j].TotalCostCents
	})
	return ranked, nil
}

func (s *OfferRankingService) modalityRanges(ctx context.Context) (map[string]model.StandardModality, error) {
	active, err := s.modalities.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing modalities for ranking: %w", err)
	}

	byID := make(map[string]model.StandardModality, len(active))
	for _, m := range active {
		byID[m.ID.String()] = m
	}
	return byID, nil
}

// InterestScore normalizes a monthly rate within the modality's typical
// [min, max] band, inverted so cheaper offers score higher, clamped to
// [0, 1]. A degenerate band scores a neutral 0.5.
func InterestScore(monthlyRate, typicalMin, typicalMax float64) float64 {
	if typicalMax <= typicalMin {
		return 0.5
	}
	score := 1 - (monthlyRate-typicalMin)/(typicalMax-typicalMin)
	return clamp01(score)
}

// AmountScore normalizes the offer's maximum amount within the fixed market
// band, clamped to [0, 1].
func AmountScore(maxAmountCents int64) float64 {
	if marketMaxAmountCents <= marketMinAmountCents {
		return 0.5
	}
	score := float64(maxAmountCents-marketMinAmountCents) / float64(marketMaxAmountCents-marketMinAmountCents)
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func approvedTermsCost(offer model.CreditOffer) (totalCents, paymentCents int64, err error) {
	principal, err := money.NewFromCents(offer.ApprovedAmountCents)
	if err != nil {
		return 0, 0, err
	}
	rate, err := finance.NewInterestRate(offer.MonthlyRate)
	if err != nil {
		return 0, 0, err
	}
	installments, err := finance.NewInstallmentCount(offer.ApprovedInstallments)
	if err != nil {
		return 0, 0, err
	}

	total, err := finance.TotalAmount(principal, rate, installments)
	if err != nil {
		return 0, 0, err
	}
	payment, err := finance.MonthlyPayment(principal, rate, installments)
	if err != nil {
		return 0, 0, err
	}
	return total.Cents(), payment.Cents(), nil
}
