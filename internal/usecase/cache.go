package usecase

import (
	"context"
	"time"
)

// AnalysisCache is the read-through cache used by the band usecase. A nil
// cache or an unreachable backend is never fatal; callers fall through to the
// database.
type AnalysisCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}
