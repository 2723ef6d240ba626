package infra

import (
	"testing"
	"time"
)

func TestTryAcquireBurst(t *testing.T) {
	limiter := NewRateLimiter(3, 1)

	for i := 0; i < 3; i++ {
		if !limiter.TryAcquire() {
			t.Fatalf("acquire %d within burst failed", i)
		}
	}
	if limiter.TryAcquire() {
		t.Error("acquire beyond burst succeeded")
	}
}

func TestTokensRefill(t *testing.T) {
	// 50 tokens per second: one token back every 20ms.
	limiter := NewRateLimiter(1, 50)

	if !limiter.TryAcquire() {
		t.Fatal("initial acquire failed")
	}
	if limiter.TryAcquire() {
		t.Fatal("acquire with empty bucket succeeded")
	}

	time.Sleep(40 * time.Millisecond)
	if !limiter.TryAcquire() {
		t.Error("acquire after refill window failed")
	}
}

func TestWaitBlocksUntilToken(t *testing.T) {
	limiter := NewRateLimiter(1, 20)
	limiter.Wait()

	start := time.Now()
	limiter.Wait()
	elapsed := time.Since(start)

	if elapsed < 20*time.Millisecond {
		t.Errorf("second Wait returned after %v, expected at least the refill interval", elapsed)
	}
}
