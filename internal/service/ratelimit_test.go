package service_test

import (
	"testing"

	"github.com/msomdec/trainer-streaks/internal/service"
)

func TestRateLimiter_AllowsUpToBurst(t *testing.T) {
	rl := service.NewRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow("test-key") {
			t.Fatalf("request %d should be allowed (bucket not yet empty)", i+1)
		}
	}

	if rl.Allow("test-key") {
		t.Fatal("4th request should be denied (bucket empty)")
	}
}

func TestRateLimiter_DifferentKeysAreIndependent(t *testing.T) {
	rl := service.NewRateLimiter(1, 1)

	if !rl.Allow("ip-a") {
		t.Fatal("ip-a first request should be allowed")
	}
	if rl.Allow("ip-a") {
		t.Fatal("ip-a second request should be denied")
	}
	if !rl.Allow("ip-b") {
		t.Fatal("ip-b first request should be allowed (independent bucket)")
	}
}

func TestRateLimiter_ZeroRateNeverRefills(t *testing.T) {
	rl := service.NewRateLimiter(0, 2)

	if !rl.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if !rl.Allow("k") {
		t.Fatal("second request should be allowed")
	}
	if rl.Allow("k") {
		t.Fatal("third request should be denied (no refill)")
	}
}
