package model

// ModalityHeuristic maps a canonical modality code to the keywords that
// suggest it. The table is ordered: when a reported modality name matches
// several entries, the first one wins.
type ModalityHeuristic struct {
	Code     string
	Keywords []string
}

// ModalityHeuristics is the fixed suggestion table used by auto-discovery
// when no existing taxonomy entry matches a reported modality name. Keywords
// cover the Portuguese names institutions actually report plus their English
// equivalents seen in sandbox payloads.
var ModalityHeuristics = []ModalityHeuristic{
	{Code: "PERSONAL_CREDIT", Keywords: []string{"pessoal", "personal", "cdc"}},
	{Code: "PAYROLL_CREDIT", Keywords: []string{"consignado", "payroll", "folha"}},
	{Code: "VEHICLE_FINANCING", Keywords: []string{"veiculo", "veiculos", "vehicle", "auto", "carro", "moto"}},
	{Code: "REAL_ESTATE_FINANCING", Keywords: []string{"imobiliario", "imovel", "habitacional", "real estate", "mortgage"}},
	{Code: "CREDIT_CARD", Keywords: []string{"cartao", "card"}},
	{Code: "OVERDRAFT", Keywords: []string{"cheque especial", "overdraft", "limite"}},
	{Code: "REVOLVING_CREDIT", Keywords: []string{"rotativo", "revolving"}},
}

// ModalityProfile carries the default taxonomy attributes of a canonical
// modality code: the typical monthly rate band observed in the market and
// the risk tier.
type ModalityProfile struct {
	MinMonthlyRate float64
	MaxMonthlyRate float64
	RiskTier       RiskTier
}

// ModalityProfiles holds typical monthly rate ranges and risk tiers per
// canonical code, used when auto-discovery creates a new taxonomy entry.
var ModalityProfiles = map[string]ModalityProfile{
	"PERSONAL_CREDIT":       {MinMonthlyRate: 0.02, MaxMonthlyRate: 0.08, RiskTier: RiskTierMedium},
	"PAYROLL_CREDIT":        {MinMonthlyRate: 0.01, MaxMonthlyRate: 0.03, RiskTier: RiskTierLow},
	"VEHICLE_FINANCING":     {MinMonthlyRate: 0.012, MaxMonthlyRate: 0.035, RiskTier: RiskTierLow},
	"REAL_ESTATE_FINANCING": {MinMonthlyRate: 0.006, MaxMonthlyRate: 0.012, RiskTier: RiskTierLow},
	"CREDIT_CARD":           {MinMonthlyRate: 0.08, MaxMonthlyRate: 0.18, RiskTier: RiskTierHigh},
	"OVERDRAFT":             {MinMonthlyRate: 0.06, MaxMonthlyRate: 0.15, RiskTier: RiskTierHigh},
	"REVOLVING_CREDIT":      {MinMonthlyRate: 0.09, MaxMonthlyRate: 0.20, RiskTier: RiskTierHigh},
}

// DefaultModalityProfile applies to synthesized codes with no market data.
var DefaultModalityProfile = ModalityProfile{
	MinMonthlyRate: 0.01,
	MaxMonthlyRate: 0.10,
	RiskTier:       RiskTierMedium,
}

// ProfileForCode returns the modality profile for a canonical code, falling
// back to the default profile for unknown codes.
func ProfileForCode(code string) ModalityProfile {
	if p, ok := ModalityProfiles[code]; ok {
		return p
	}
	return DefaultModalityProfile
}
