package quota

import (
	"context"
	"sync"
	"time"

	"veritas-ai/config"
)

// AnalysisQuotaLimiter enforces per-minute and per-day limits on outbound
// model calls. It is in-memory and assumes a single API instance; counters
// reset when the process restarts.
type AnalysisQuotaLimiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	interval time.Duration
	lastCall time.Time
}

// NewAnalysisQuotaLimiterFromConfig builds the limiter from the
// analysis_quota section of config.yaml. Values of 0 or below disable the
// limit in that direction.
func NewAnalysisQuotaLimiterFromConfig(cfg config.AppConfig) *AnalysisQuotaLimiter {
	q := cfg.AnalysisQuota

	requestsPerDay := q.RequestsPerDay
	if requestsPerDay < 0 {
		requestsPerDay = 0
	}

	requestsPerMinute := q.RequestsPerMinute
	if requestsPerMinute < 0 {
		requestsPerMinute = 0
	}

	var interval time.Duration
	if requestsPerMinute > 0 {
		interval = time.Minute / time.Duration(requestsPerMinute)
	}

	return &AnalysisQuotaLimiter{
		dailyLimit: requestsPerDay,
		interval:   interval,
	}
}

// WaitAndReserve applies both limits before a model call.
// - Daily limit exhausted: returns (false, nil); the caller must skip the call.
// - Context cancelled while waiting: returns (false, error).
func (l *AnalysisQuotaLimiter) WaitAndReserve(ctx context.Context) (bool, error) {
	for {
		l.mu.Lock()

		now := time.Now().UTC()
		todayKey := now.Format("2006-01-02")
		if l.dayKey != todayKey {
			l.dayKey = todayKey
			l.usedToday = 0
		}

		if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
			l.mu.Unlock()
			return false, nil
		}

		var delay time.Duration
		if l.interval > 0 && !l.lastCall.IsZero() {
			nextAllowed := l.lastCall.Add(l.interval)
			delay = time.Until(nextAllowed)
		}

		if delay <= 0 {
			l.usedToday++
			l.lastCall = now
			l.mu.Unlock()
			return true, nil
		}

		// release the lock while waiting, then re-evaluate
		l.mu.Unlock()
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}
