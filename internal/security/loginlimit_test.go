package security

import (
	"testing"
	"time"
)

func newTestLimiter(now time.Time) (*LoginLimiter, *time.Time) {
	clock := now
	limiter := NewLoginLimiter(NewMemoryAttemptStore())
	limiter.now = func() time.Time { return clock }
	return limiter, &clock
}

func TestLoginLimiterLocksAfterMaxFailures(t *testing.T) {
	limiter, _ := newTestLimiter(time.Now())

	for i := 1; i < MaxLoginAttempts; i++ {
		result := limiter.RecordFailure("user@example.com")
		if result.Locked {
			t.Fatalf("locked after %d failures, want %d", i, MaxLoginAttempts)
		}
		if result.AttemptsRemaining != MaxLoginAttempts-i {
			t.Errorf("attempt %d: remaining = %d, want %d", i, result.AttemptsRemaining, MaxLoginAttempts-i)
		}
	}

	result := limiter.RecordFailure("user@example.com")
	if !result.Locked {
		t.Fatal("not locked after max failures")
	}
	if result.AttemptsRemaining != 0 {
		t.Errorf("remaining = %d, want 0", result.AttemptsRemaining)
	}

	status := limiter.CheckLock("user@example.com")
	if !status.Locked {
		t.Fatal("CheckLock() reports unlocked right after lockout")
	}
	if status.MinutesRemaining < 1 || status.MinutesRemaining > 15 {
		t.Errorf("MinutesRemaining = %d, want 1..15", status.MinutesRemaining)
	}
}

func TestLoginLimiterLockExpires(t *testing.T) {
	limiter, clock := newTestLimiter(time.Now())

	for i := 0; i < MaxLoginAttempts; i++ {
		limiter.RecordFailure("user@example.com")
	}

	*clock = clock.Add(LockoutDuration + time.Second)

	status := limiter.CheckLock("user@example.com")
	if status.Locked {
		t.Fatal("still locked after the lockout window elapsed")
	}

	// the expired record was cleared, so failures start counting from zero
	result := limiter.RecordFailure("user@example.com")
	if result.AttemptsRemaining != MaxLoginAttempts-1 {
		t.Errorf("remaining after expiry = %d, want %d", result.AttemptsRemaining, MaxLoginAttempts-1)
	}
}

func TestLoginLimiterMinutesRemainingRoundsUp(t *testing.T) {
	limiter, clock := newTestLimiter(time.Now())

	for i := 0; i < MaxLoginAttempts; i++ {
		limiter.RecordFailure("user@example.com")
	}

	// 30 seconds into the window: 14.5 minutes remain, reported as 15
	*clock = clock.Add(30 * time.Second)
	if status := limiter.CheckLock("user@example.com"); status.MinutesRemaining != 15 {
		t.Errorf("MinutesRemaining = %d, want 15", status.MinutesRemaining)
	}

	// 14 minutes 30 seconds in: half a minute remains, reported as 1
	*clock = clock.Add(14 * time.Minute)
	if status := limiter.CheckLock("user@example.com"); status.MinutesRemaining != 1 {
		t.Errorf("MinutesRemaining = %d, want 1", status.MinutesRemaining)
	}
}

func TestLoginLimiterClear(t *testing.T) {
	limiter, _ := newTestLimiter(time.Now())

	limiter.RecordFailure("user@example.com")
	limiter.RecordFailure("user@example.com")
	limiter.Clear("user@example.com")

	result := limiter.RecordFailure("user@example.com")
	if result.AttemptsRemaining != MaxLoginAttempts-1 {
		t.Errorf("remaining after clear = %d, want %d", result.AttemptsRemaining, MaxLoginAttempts-1)
	}
}

func TestLoginLimiterIdentifiersIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(time.Now())

	for i := 0; i < MaxLoginAttempts; i++ {
		limiter.RecordFailure("locked@example.com")
	}

	if limiter.CheckLock("other@example.com").Locked {
		t.Error("lockout leaked to a different identifier")
	}
}

func TestLoginLimiterUnknownIdentifierUnlocked(t *testing.T) {
	limiter, _ := newTestLimiter(time.Now())

	status := limiter.CheckLock("never-seen@example.com")
	if status.Locked || status.MinutesRemaining != 0 {
		t.Errorf("CheckLock() = %+v, want unlocked", status)
	}
}
