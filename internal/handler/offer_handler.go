package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/credmatch/backend/internal/logger"
	"github.com/credmatch/backend/internal/model"
	"github.com/credmatch/backend/internal/repository"
	"github.com/credmatch/backend/internal/service"
	"github.com/credmatch/backend/pkg/cpf"
)

// OfferHandler handles offer ingestion and ranking API requests.
type OfferHandler struct {
	normalizer      NormalizationServiceInterface
	ranking         RankingServiceInterface
	offers          repository.CreditOfferRepositoryInterface
	allowSandboxCPF bool
}

func NewOfferHandler(
	normalizer NormalizationServiceInterface,
	ranking RankingServiceInterface,
	offers repository.CreditOfferRepositoryInterface,
	allowSandboxCPF bool,
) *OfferHandler {
	return &OfferHandler{
		normalizer:      normalizer,
		ranking:         ranking,
		offers:          offers,
		allowSandboxCPF: allowSandboxCPF,
	}
}

// IngestRequest is the body of POST /api/offers/ingest. Field names follow
// the institution wire contract.
type IngestRequest struct {
	CustomerID string           `json:"customer_id"`
	RequestID  string           `json:"request_id,omitempty"`
	Offers     []model.RawOffer `json:"offers"`
}

// IngestResponse reports both sides of a batch ingestion.
type IngestResponse struct {
	RequestID string                 `json:"request_id"`
	Accepted  int                    `json:"accepted"`
	Rejected  int                    `json:"rejected"`
	Offers    []model.CreditOffer    `json:"offers"`
	Failures  []service.OfferFailure `json:"failures,omitempty"`
}

// Ingest normalizes and persists a batch of raw institution offers. Offers
// that fail validation or lookup are reported without aborting the batch.
func (h *OfferHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	document, err := h.parseCPF(req.CustomerID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer_id: "+err.Error())
		return
	}

	requestID := uuid.New()
	if req.RequestID != "" {
		requestID, err = uuid.Parse(req.RequestID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid request_id")
			return
		}
	}

	if len(req.Offers) == 0 {
		respondError(w, http.StatusBadRequest, "offers must not be empty")
		return
	}

	result := h.normalizer.NormalizeBatch(ctx, document.String(), requestID, req.Offers)

	persisted := make([]model.CreditOffer, 0, len(result.Succeeded))
	failures := result.Failed
	for _, normalized := range result.Succeeded {
		offer := normalized.Offer
		if err := h.offers.Create(ctx, &offer); err != nil {
			logger.FromContext(ctx).Error("persisting normalized offer failed",
				"customer_id", offer.CustomerID,
				"institution_id", offer.InstitutionID.String(),
				"error", err.Error(),
			)
			failures = append(failures, service.OfferFailure{
				Index:         normalized.Index,
				InstitutionID: req.Offers[normalized.Index].InstitutionID,
				ModalityCode:  req.Offers[normalized.Index].ModalityCode,
				Reason:        "failed to persist offer",
			})
			continue
		}
		persisted = append(persisted, offer)
	}

	respondJSON(w, http.StatusOK, IngestResponse{
		RequestID: requestID.String(),
		Accepted:  len(persisted),
		Rejected:  len(failures),
		Offers:    persisted,
		Failures:  failures,
	})
}

// List returns every offer of the authenticated customer.
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	document, ok := h.customerFromPath(w, r)
	if !ok {
		return
	}

	offers, err := h.offers.ListByCustomer(ctx, document.String())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch offers")
		return
	}

	respondJSON(w, http.StatusOK, offers)
}

// Ranked returns the customer's best completed offers, at most three,
// scored by rate position and approved limit.
func (h *OfferHandler) Ranked(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	document, ok := h.customerFromPath(w, r)
	if !ok {
		return
	}

	offers, err := h.offers.ListCompletedByCustomer(ctx, document.String())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch offers")
		return
	}

	ranked, err := h.ranking.RankOffers(ctx, offers)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ranked)
}

// RankedByCost returns the customer's completed offers ordered by the total
// repayment cost of their approved terms, cheapest first.
func (h *OfferHandler) RankedByCost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	document, ok := h.customerFromPath(w, r)
	if !ok {
		return
	}

	offers, err := h.offers.ListCompletedByCustomer(ctx, document.String())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch offers")
		return
	}

	ranked, err := h.ranking.RankByTotalCost(ctx, offers)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ranked)
}

// customerFromPath validates the {cpf} path parameter and checks it against
// the authenticated customer. Writes the error response on failure.
func (h *OfferHandler) customerFromPath(w http.ResponseWriter, r *http.Request) (cpf.CPF, bool) {
	document, err := h.parseCPF(chi.URLParam(r, "cpf"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid cpf")
		return cpf.CPF{}, false
	}

	if GetCustomerID(r.Context()) != document.String() {
		respondError(w, http.StatusForbidden, "token does not match requested customer")
		return cpf.CPF{}, false
	}
	return document, true
}

func (h *OfferHandler) parseCPF(value string) (cpf.CPF, error) {
	if h.allowSandboxCPF {
		return cpf.NewWithSandboxFixtures(value)
	}
	return cpf.New(value)
}
