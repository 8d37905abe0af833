package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/credmatch/backend/internal/logger"
	"github.com/credmatch/backend/internal/model"
	"github.com/credmatch/backend/internal/repository"
)

// ModalityDiscoveryService maps an institution's free-text modality name and
// code to one canonical StandardModality, creating a taxonomy entry when
// nothing matches and remembering the binding so classification runs at most
// once per (institution, external code) pairing.
type ModalityDiscoveryService struct {
	modalities repository.StandardModalityRepositoryInterface
	mappings   repository.ModalityMappingRepositoryInterface
	cache      repository.MappingCache
}

// NewModalityDiscoveryService creates a discovery service. A nil cache
// disables caching.
func NewModalityDiscoveryService(
	modalities repository.StandardModalityRepositoryInterface,
	mappings repository.ModalityMappingRepositoryInterface,
	cache repository.MappingCache,
) *ModalityDiscoveryService {
	if cache == nil {
		cache = repository.NoopMappingCache{}
	}
	return &ModalityDiscoveryService{
		modalities: modalities,
		mappings:   mappings,
		cache:      cache,
	}
}

// DiscoverOrCreateMapping resolves the mapping for (institutionID,
// externalCode), classifying modalityName only when the pairing has never
// been seen. Idempotent: repeated calls return the same mapping.
func (s *ModalityDiscoveryService) DiscoverOrCreateMapping(ctx context.Context, institutionID uuid.UUID, externalCode, modalityName string) (*model.ModalityMapping, error) {
	if cached, ok := s.cache.Get(ctx, institutionID, externalCode); ok {
		return cached, nil
	}

	mapping, err := s.mappings.GetByInstitutionAndExternalCode(ctx, institutionID, externalCode)
	if err == nil {
		s.cacheMapping(ctx, mapping)
		return mapping, nil
	}
	if !errors.Is(err, repository.ErrModalityMappingNotFound) {
		return nil, fmt.Errorf("looking up mapping for institution %s code %q: %w", institutionID, externalCode, err)
	}

	modality, err := s.classify(ctx, modalityName)
	if err != nil {
		return nil, err
	}

	mapping = &model.ModalityMapping{
		InstitutionID:      institutionID,
		ExternalCode:       externalCode,
		ExternalName:       modalityName,
		StandardModalityID: modality.ID,
		AutoDiscovered:     true,
		ConfidenceScore:    ConfidenceScore(modalityName, modality),
		DiscoveryMethod:    model.DiscoveryMethodKeywordMatching,
	}
	if err := s.mappings.Upsert(ctx, mapping); err != nil {
		return nil, fmt.Errorf("saving mapping for institution %s code %q: %w", institutionID, externalCode, err)
	}

	s.cacheMapping(ctx, mapping)
	return mapping, nil
}

func (s *ModalityDiscoveryService) cacheMapping(ctx context.Context, mapping *model.ModalityMapping) {
	if err := s.cache.Set(ctx, mapping); err != nil {
		logger.FromContext(ctx).Warn("caching modality mapping failed",
			"institution_id", mapping.InstitutionID.String(),
			"external_code", mapping.ExternalCode,
			"error", err.Error(),
		)
	}
}

// classify finds the standard modality for a reported name: first an active
// taxonomy entry whose keywords match, then the fixed suggestion table, and
// as a last resort a synthesized code with a freshly created taxonomy entry.
func (s *ModalityDiscoveryService) classify(ctx context.Context, modalityName string) (*model.StandardModality, error) {
	normalized := NormalizeModalityName(modalityName)

	active, err := s.modalities.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active modalities: %w", err)
	}
	for i := range active {
		if keywordMatch(normalized, active[i].Keywords) {
			return &active[i], nil
		}
	}

	code := SuggestStandardModalityCode(modalityName)
	profile := model.ProfileForCode(code)
	modality := &model.StandardModality{
		Code:           code,
		Name:           titleCase(normalized),
		RiskTier:       profile.RiskTier,
		MinMonthlyRate: profile.MinMonthlyRate,
		MaxMonthlyRate: profile.MaxMonthlyRate,
		Keywords:       keywordsFromName(normalized),
		Active:         true,
	}
	if err := s.modalities.Upsert(ctx, modality); err != nil {
		return nil, fmt.Errorf("creating standard modality %q: %w", code, err)
	}

	logger.FromContext(ctx).Info("auto-created standard modality",
		"code", modality.Code,
		"source_name", modalityName,
	)
	return modality, nil
}

// SuggestStandardModalityCode maps a modality name to a canonical code using
// the ordered heuristic table; unmatched names get a synthesized code built
// from the first three letters of each significant word.
func SuggestStandardModalityCode(modalityName string) string {
	normalized := NormalizeModalityName(modalityName)

	for _, h := range model.ModalityHeuristics {
		for _, kw := range h.Keywords {
			if strings.Contains(normalized, kw) {
				return h.Code
			}
		}
	}

	var parts []string
	for _, word := range strings.Fields(normalized) {
		if len([]rune(word)) > 2 {
			runes := []rune(word)
			parts = append(parts, strings.ToUpper(string(runes[:3])))
		}
	}
	if len(parts) == 0 {
		return "UNKNOWN_MODALITY"
	}
	return strings.Join(parts, "_")
}

// ConfidenceScore measures how well a reported name matches the chosen
// modality: the fraction of the modality's keywords found in the normalized
// name, capped at 1.0. A modality without keywords scores a neutral 0.5.
func ConfidenceScore(modalityName string, modality *model.StandardModality) float64 {
	if len(modality.Keywords) == 0 {
		return 0.5
	}

	normalized := NormalizeModalityName(modalityName)
	matched := 0
	for _, kw := range modality.Keywords {
		if strings.Contains(normalized, kw) {
			matched++
		}
	}

	score := float64(matched) / float64(len(modality.Keywords))
	if score > 1 {
		score = 1
	}
	return score
}

// accentFolder maps the accented characters seen in Portuguese modality
// names to their base letters so keywords can stay unaccented.
var accentFolder = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

// NormalizeModalityName lower-cases the name, folds accents, strips
// punctuation and collapses whitespace, so keyword matching is insensitive
// to the formatting quirks of institution payloads.
func NormalizeModalityName(name string) string {
	var b strings.Builder
	for _, r := range accentFolder.Replace(strings.ToLower(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func keywordMatch(normalizedName string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(normalizedName, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// keywordsFromName extracts the deduplicated significant words (longer than
// two characters) of a normalized name, preserving first-seen order.
func keywordsFromName(normalized string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, word := range strings.Fields(normalized) {
		if len([]rune(word)) <= 2 {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}

func titleCase(normalized string) string {
	words := strings.Fields(normalized)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
