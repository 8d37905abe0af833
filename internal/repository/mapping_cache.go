package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/credmatch/backend/internal/logger"
	"github.com/credmatch/backend/internal/model"
)

// mappingCacheTTL bounds staleness if a mapping is ever re-classified by
// hand; discovery repopulates the key on the next miss.
const mappingCacheTTL = 24 * time.Hour

// RedisMappingCache caches resolved modality mappings so the classification
// heuristic runs at most once per (institution, external code) pairing.
type RedisMappingCache struct {
	client *redis.Client
}

func NewRedisMappingCache(addr string) *RedisMappingCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisMappingCache{client: rdb}
}

func mappingCacheKey(institutionID uuid.UUID, externalCode string) string {
	return fmt.Sprintf("modality_mapping:%s:%s", institutionID, externalCode)
}

func (c *RedisMappingCache) Get(ctx context.Context, institutionID uuid.UUID, externalCode string) (*model.ModalityMapping, bool) {
	val, err := c.client.Get(ctx, mappingCacheKey(institutionID, externalCode)).Result()
	if err != nil {
		return nil, false
	}

	var mapping model.ModalityMapping
	if err := json.Unmarshal([]byte(val), &mapping); err != nil {
		logger.Warn("discarding unreadable cached mapping", "key", mappingCacheKey(institutionID, externalCode), "error", err)
		return nil, false
	}
	return &mapping, true
}

func (c *RedisMappingCache) Set(ctx context.Context, mapping *model.ModalityMapping) error {
	payload, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("encoding mapping for cache: %w", err)
	}
	return c.client.Set(ctx, mappingCacheKey(mapping.InstitutionID, mapping.ExternalCode), payload, mappingCacheTTL).Err()
}

// NoopMappingCache is used when Redis is disabled; every lookup misses.
type NoopMappingCache struct{}

func (NoopMappingCache) Get(ctx context.Context, institutionID uuid.UUID, externalCode string) (*model.ModalityMapping, bool) {
	return nil, false
}

func (NoopMappingCache) Set(ctx context.Context, mapping *model.ModalityMapping) error {
	return nil
}
