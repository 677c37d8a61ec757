package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/domain"
)

// Cache is a read-through performance layer over computed results. It
// is never a correctness dependency: every caller must behave the same
// with a cold cache.
type Cache interface {
	// GetJSON loads the value under key into dest; the bool reports a hit.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	// DeletePattern removes every key matching a glob-style pattern.
	DeletePattern(ctx context.Context, pattern string) error
	Close() error
}

// Cache key namespaces. Writes invalidate whole namespaces by pattern.
const (
	SchedulesPattern = "schedules:*"
	AnalystPattern   = "analyst:*"
	AnalyticsPattern = "analytics:*"
)

// Default TTLs per namespace.
const (
	SchedulesTTL = 5 * time.Minute
	AnalystTTL   = 15 * time.Minute
	AnalyticsTTL = time.Minute
)

// ScheduleRangeKey keys a schedule listing for a date range.
func ScheduleRangeKey(start, end time.Time) string {
	return fmt.Sprintf("schedules:range:%s:%s", start.Format(domain.DateLayout), end.Format(domain.DateLayout))
}

// AnalystKey keys a single analyst record.
func AnalystKey(id string) string {
	return "analyst:" + id
}

// WorkloadKey keys one analyst's analyzed week.
func WorkloadKey(analystID string, weekStart time.Time) string {
	return fmt.Sprintf("analytics:workload:%s:%s", analystID, weekStart.Format(domain.DateLayout))
}

// FairnessKey keys a fairness report over a date range.
func FairnessKey(start, end time.Time) string {
	return fmt.Sprintf("analytics:fairness:%s:%s", start.Format(domain.DateLayout), end.Format(domain.DateLayout))
}
