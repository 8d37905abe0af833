package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/credmatch/backend/internal/finance"
	"github.com/credmatch/backend/pkg/money"
)

// LoanHandler handles loan simulation API requests. The endpoints are pure
// computations over the amortization calculator, no persistence involved.
type LoanHandler struct{}

func NewLoanHandler() *LoanHandler {
	return &LoanHandler{}
}

// SimulationResponse is the result of a Price-table loan simulation.
// Monetary values are reais with two decimal places.
type SimulationResponse struct {
	Principal         money.Money             `json:"principal"`
	MonthlyRate       float64                 `json:"monthlyRate"`
	AnnualRate        float64                 `json:"annualRate"`
	Installments      int                     `json:"installments"`
	PeriodDescription string                  `json:"periodDescription"`
	MonthlyPayment    money.Money             `json:"monthlyPayment"`
	TotalAmount       money.Money             `json:"totalAmount"`
	TotalInterest     money.Money             `json:"totalInterest"`
	EffectiveRate     float64                 `json:"effectiveRate"`
	Schedule          []finance.ScheduleEntry `json:"schedule,omitempty"`
}

// Simulate computes the payment, totals and optionally the full amortization
// schedule for the given terms.
//
// Query parameters: amount (reais), rate (monthly fraction), installments,
// schedule (optional bool).
func (h *LoanHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	terms, ok := h.parseTerms(w, r)
	if !ok {
		return
	}

	payment, err := finance.MonthlyPayment(terms.Principal, terms.Rate, terms.Installments)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	total, err := finance.TotalAmount(terms.Principal, terms.Rate, terms.Installments)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	interest, err := finance.TotalInterest(terms.Principal, terms.Rate, terms.Installments)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	effective, err := finance.EffectiveRate(terms.Principal, terms.Rate, terms.Installments)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := SimulationResponse{
		Principal:         terms.Principal,
		MonthlyRate:       terms.Rate.Monthly(),
		AnnualRate:        terms.Rate.Annual(),
		Installments:      terms.Installments.Value(),
		PeriodDescription: terms.Installments.PeriodDescription(),
		MonthlyPayment:    payment,
		TotalAmount:       total,
		TotalInterest:     interest,
		EffectiveRate:     effective,
	}

	if r.URL.Query().Get("schedule") == "true" {
		schedule, err := finance.Schedule(terms.Principal, terms.Rate, terms.Installments)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.Schedule = schedule
	}

	respondJSON(w, http.StatusOK, resp)
}

// AffordabilityResponse is the result of an affordability computation.
type AffordabilityResponse struct {
	MonthlyIncome     money.Money `json:"monthlyIncome"`
	DebtToIncomeRatio float64     `json:"debtToIncomeRatio"`
	MonthlyBudget     money.Money `json:"monthlyBudget"`
	MaxAffordable     money.Money `json:"maxAffordable"`
}

// Affordability computes the largest principal whose monthly payment fits
// within the given fraction of the customer's income.
//
// Query parameters: income (reais), ratio (fraction of income, (0,1]),
// rate (monthly fraction), installments.
func (h *LoanHandler) Affordability(w http.ResponseWriter, r *http.Request) {
	income, err := parseMoney(r.URL.Query().Get("income"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid income parameter")
		return
	}

	ratio, err := strconv.ParseFloat(r.URL.Query().Get("ratio"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid ratio parameter")
		return
	}

	rate, installments, ok := h.parseRateAndInstallments(w, r)
	if !ok {
		return
	}

	maxAffordable, err := finance.MaxAffordableAmount(income, ratio, rate, installments)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	budget, err := income.Mul(ratio)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, AffordabilityResponse{
		MonthlyIncome:     income,
		DebtToIncomeRatio: ratio,
		MonthlyBudget:     budget,
		MaxAffordable:     maxAffordable,
	})
}

// CompareRequest is the body of POST /api/loans/compare.
type CompareRequest struct {
	Loans []LoanTermsRequest `json:"loans"`
}

// LoanTermsRequest is one candidate financing in a comparison.
type LoanTermsRequest struct {
	Amount       float64 `json:"amount"`
	MonthlyRate  float64 `json:"monthly_rate"`
	Installments int     `json:"installments"`
}

// ComparedLoan is one financing with its realized cost.
type ComparedLoan struct {
	Amount        money.Money `json:"amount"`
	MonthlyRate   float64     `json:"monthlyRate"`
	Installments  int         `json:"installments"`
	TotalAmount   money.Money `json:"totalAmount"`
	EffectiveRate float64     `json:"effectiveRate"`
}

// Compare orders candidate financings ascending by effective rate, so the
// cheapest terms come first.
func (h *LoanHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Loans) == 0 {
		respondError(w, http.StatusBadRequest, "loans must not be empty")
		return
	}

	terms := make([]finance.LoanTerms, 0, len(req.Loans))
	for _, l := range req.Loans {
		principal, err := money.NewFromFloat(l.Amount)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid amount: "+err.Error())
			return
		}
		rate, err := finance.NewInterestRate(l.MonthlyRate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid monthly_rate: "+err.Error())
			return
		}
		installments, err := finance.NewInstallmentCount(l.Installments)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid installments: "+err.Error())
			return
		}
		terms = append(terms, finance.LoanTerms{Principal: principal, Rate: rate, Installments: installments})
	}

	finance.SortByEffectiveRate(terms)

	compared := make([]ComparedLoan, 0, len(terms))
	for _, t := range terms {
		total, err := finance.TotalAmount(t.Principal, t.Rate, t.Installments)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		effective, err := finance.EffectiveRate(t.Principal, t.Rate, t.Installments)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		compared = append(compared, ComparedLoan{
			Amount:        t.Principal,
			MonthlyRate:   t.Rate.Monthly(),
			Installments:  t.Installments.Value(),
			TotalAmount:   total,
			EffectiveRate: effective,
		})
	}

	respondJSON(w, http.StatusOK, compared)
}

func (h *LoanHandler) parseTerms(w http.ResponseWriter, r *http.Request) (finance.LoanTerms, bool) {
	principal, err := parseMoney(r.URL.Query().Get("amount"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid amount parameter")
		return finance.LoanTerms{}, false
	}

	rate, installments, ok := h.parseRateAndInstallments(w, r)
	if !ok {
		return finance.LoanTerms{}, false
	}

	return finance.LoanTerms{Principal: principal, Rate: rate, Installments: installments}, true
}

func (h *LoanHandler) parseRateAndInstallments(w http.ResponseWriter, r *http.Request) (finance.InterestRate, finance.InstallmentCount, bool) {
	rateValue, err := strconv.ParseFloat(r.URL.Query().Get("rate"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid rate parameter")
		return finance.InterestRate{}, finance.InstallmentCount{}, false
	}
	rate, err := finance.NewInterestRate(rateValue)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return finance.InterestRate{}, finance.InstallmentCount{}, false
	}

	count, err := strconv.Atoi(r.URL.Query().Get("installments"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid installments parameter")
		return finance.InterestRate{}, finance.InstallmentCount{}, false
	}
	installments, err := finance.NewInstallmentCount(count)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return finance.InterestRate{}, finance.InstallmentCount{}, false
	}

	return rate, installments, true
}
