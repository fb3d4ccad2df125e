package quota

import (
	"context"
	"testing"
	"time"

	"veritas-ai/config"
)

func limiterWith(perMinute, perDay int) *AnalysisQuotaLimiter {
	cfg := config.AppConfig{}
	cfg.AnalysisQuota.RequestsPerMinute = perMinute
	cfg.AnalysisQuota.RequestsPerDay = perDay
	return NewAnalysisQuotaLimiterFromConfig(cfg)
}

func TestWaitAndReserveUnlimited(t *testing.T) {
	l := limiterWith(0, 0)

	for i := 0; i < 5; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("expected reservation %d to succeed", i)
		}
	}
}

func TestWaitAndReserveDailyLimitExhausted(t *testing.T) {
	l := limiterWith(0, 2)

	for i := 0; i < 2; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		if err != nil || !ok {
			t.Fatalf("expected reservation %d to succeed, got ok=%v err=%v", i, ok, err)
		}
	}

	ok, err := l.WaitAndReserve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected reservation to be denied after daily limit")
	}
}

func TestWaitAndReserveHonoursCancellation(t *testing.T) {
	// 1 request per minute forces a long wait for the second reservation
	l := limiterWith(1, 0)

	if ok, err := l.WaitAndReserve(context.Background()); err != nil || !ok {
		t.Fatalf("expected first reservation to succeed, got ok=%v err=%v", ok, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ok, err := l.WaitAndReserve(ctx)
	if ok {
		t.Fatalf("expected reservation to fail under cancelled context")
	}
	if err == nil {
		t.Fatalf("expected context error")
	}
}
