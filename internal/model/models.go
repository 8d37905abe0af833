package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RiskTier classifies a credit modality by typical default risk.
type RiskTier string

const (
	RiskTierLow    RiskTier = "low"
	RiskTierMedium RiskTier = "medium"
	RiskTierHigh   RiskTier = "high"
)

// Institution is a partner financial institution that reports credit offers.
type Institution struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ExternalID string    `db:"external_id" json:"externalId"`
	Name       string    `db:"name" json:"name"`
	Code       string    `db:"code" json:"code"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// StandardModality is a canonical taxonomy entry for a category of credit
// product. Entries are created by auto-discovery when an institution reports
// a modality that matches nothing in the taxonomy.
type StandardModality struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	Code           string         `db:"code" json:"code"` // upper snake, unique
	Name           string         `db:"name" json:"name"`
	RiskTier       RiskTier       `db:"risk_tier" json:"riskTier"`
	MinMonthlyRate float64        `db:"min_monthly_rate" json:"minMonthlyRate"`
	MaxMonthlyRate float64        `db:"max_monthly_rate" json:"maxMonthlyRate"`
	Keywords       pq.StringArray `db:"keywords" json:"keywords"`
	Active         bool           `db:"active" json:"active"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}

// ModalityMapping binds one institution's external modality code/name to a
// standard modality. Unique per (institution, external code); once learned,
// classification of that pairing never runs again.
type ModalityMapping struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	InstitutionID      uuid.UUID `db:"institution_id" json:"institutionId"`
	ExternalCode       string    `db:"external_code" json:"externalCode"`
	ExternalName       string    `db:"external_name" json:"externalName"`
	StandardModalityID uuid.UUID `db:"standard_modality_id" json:"standardModalityId"`
	AutoDiscovered     bool      `db:"auto_discovered" json:"autoDiscovered"`
	ConfidenceScore    float64   `db:"confidence_score" json:"confidenceScore"`
	DiscoveryMethod    string    `db:"discovery_method" json:"discoveryMethod"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// DiscoveryMethodKeywordMatching is the discovery method recorded on mappings
// created by the keyword classifier.
const DiscoveryMethodKeywordMatching = "keyword_matching"

// CreditModality is an internal credit product configured for a standard
// modality.
type CreditModality struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	StandardModalityID uuid.UUID `db:"standard_modality_id" json:"standardModalityId"`
	Name               string    `db:"name" json:"name"`
	Active             bool      `db:"active" json:"active"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// OfferStatus is the lifecycle state of a credit offer.
type OfferStatus string

const (
	OfferStatusPending    OfferStatus = "pending"
	OfferStatusProcessing OfferStatus = "processing"
	OfferStatusCompleted  OfferStatus = "completed"
	OfferStatusFailed     OfferStatus = "failed"
	OfferStatusExpired    OfferStatus = "expired"
)

// CreditOffer is a normalized credit offer for a customer. Monetary amounts
// are integer cents. Normalization only ever produces completed offers;
// failed and expired transitions belong to the surrounding orchestration.
type CreditOffer struct {
	ID                   uuid.UUID   `db:"id" json:"id"`
	CustomerID           string      `db:"customer_id" json:"customerId"` // CPF digits
	RequestID            uuid.UUID   `db:"request_id" json:"requestId"`
	InstitutionID        uuid.UUID   `db:"institution_id" json:"institutionId"`
	ModalityID           uuid.UUID   `db:"modality_id" json:"modalityId"`
	StandardModalityID   uuid.UUID   `db:"standard_modality_id" json:"standardModalityId"`
	MinAmountCents       int64       `db:"min_amount_cents" json:"minAmountCents"`
	MaxAmountCents       int64       `db:"max_amount_cents" json:"maxAmountCents"`
	ApprovedAmountCents  int64       `db:"approved_amount_cents" json:"approvedAmountCents"`
	MonthlyRate          float64     `db:"monthly_rate" json:"monthlyRate"`
	MinInstallments      int         `db:"min_installments" json:"minInstallments"`
	MaxInstallments      int         `db:"max_installments" json:"maxInstallments"`
	ApprovedInstallments int         `db:"approved_installments" json:"approvedInstallments"`
	Status               OfferStatus `db:"status" json:"status"`
	ErrorMessage         *string     `db:"error_message" json:"errorMessage,omitempty"`
	CreatedAt            time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time   `db:"updated_at" json:"updatedAt"`
}

// RawOffer is the wire payload reported by institutions. Field names follow
// the external contract verbatim.
type RawOffer struct {
	InstitutionID        string   `json:"institution_id"`
	ModalityCode         string   `json:"modality_code"`
	ModalityName         string   `json:"modality_name,omitempty"`
	MinAmount            *float64 `json:"min_amount"`
	MaxAmount            *float64 `json:"max_amount"`
	ApprovedAmount       *float64 `json:"approved_amount,omitempty"`
	MinInstallments      *int     `json:"min_installments"`
	MaxInstallments      *int     `json:"max_installments"`
	ApprovedInstallments *int     `json:"approved_installments,omitempty"`
	MonthlyInterestRate  *float64 `json:"monthly_interest_rate"`
}
