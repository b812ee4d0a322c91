package requestctx

import (
	"context"
	"sync"
	"time"
)

type ctxKey string

const (
	requestIDKey     ctxKey = "request_id"
	upstreamStatsKey ctxKey = "upstream_stats"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

// UpstreamStats accumulates the HR API round-trips made while serving
// one dashboard request, so the access log can show how much of the
// request's latency was spent upstream.
type UpstreamStats struct {
	mu      sync.Mutex
	calls   int
	elapsed time.Duration
}

func (s *UpstreamStats) Record(d time.Duration) {
	s.mu.Lock()
	s.calls++
	s.elapsed += d
	s.mu.Unlock()
}

func (s *UpstreamStats) Snapshot() (calls int, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls, s.elapsed
}

func WithUpstreamStats(ctx context.Context, stats *UpstreamStats) context.Context {
	return context.WithValue(ctx, upstreamStatsKey, stats)
}

func GetUpstreamStats(ctx context.Context) *UpstreamStats {
	if stats, ok := ctx.Value(upstreamStatsKey).(*UpstreamStats); ok {
		return stats
	}
	return nil
}
