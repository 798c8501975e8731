// util/cache_service.go

package util

import (
	"context"

	"github.com/abhiraj070/RuleMind/db"
	"github.com/abhiraj070/RuleMind/model"
)

// CacheService caches the enabled-rule snapshot in Redis. A disabled
// service misses on every read and ignores writes.
type CacheService struct {
	enabled bool
}

func NewCacheService(enabled bool) *CacheService {
	return &CacheService{enabled: enabled}
}

func (c *CacheService) GetEnabledRules(ctx context.Context) ([]model.Rule, error) {
	if !c.enabled {
		return nil, nil
	}
	return db.GetCachedEnabledRules(ctx)
}

func (c *CacheService) SetEnabledRules(ctx context.Context, rules []model.Rule) error {
	if !c.enabled {
		return nil
	}
	return db.CacheEnabledRules(ctx, rules)
}

func (c *CacheService) InvalidateEnabledRules(ctx context.Context) error {
	if !c.enabled {
		return nil
	}
	return db.DeleteCachedEnabledRules(ctx)
}
