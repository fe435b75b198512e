package security

import (
	"sync"
	"time"
)

// Lockout policy defaults
const (
	MaxLoginAttempts = 5
	LockoutDuration  = 15 * time.Minute
)

// AttemptRecord tracks failed login attempts for one identifier
type AttemptRecord struct {
	Count       int
	LockedUntil time.Time // zero when not locked
}

// AttemptStore persists attempt records keyed by identifier. Keeping the
// store behind an interface lets the limiter run against process memory
// today and a shared cache later without touching the state machine.
type AttemptStore interface {
	Get(id string) (AttemptRecord, bool)
	Set(id string, record AttemptRecord)
	Delete(id string)
}

// MemoryAttemptStore is the in-process AttemptStore implementation
type MemoryAttemptStore struct {
	mu      sync.Mutex
	records map[string]AttemptRecord
}

// NewMemoryAttemptStore creates an empty in-memory attempt store
func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{records: make(map[string]AttemptRecord)}
}

func (s *MemoryAttemptStore) Get(id string) (AttemptRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	return record, ok
}

func (s *MemoryAttemptStore) Set(id string, record AttemptRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = record
}

func (s *MemoryAttemptStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
}

// LockStatus is the caller-visible lock state for an identifier
type LockStatus struct {
	Locked           bool `json:"locked"`
	MinutesRemaining int  `json:"minutesRemaining"`
}

// FailureResult reports the outcome of recording a failed attempt
type FailureResult struct {
	Locked            bool `json:"locked"`
	AttemptsRemaining int  `json:"attemptsRemaining"`
}

// LoginLimiter throttles repeated failed login attempts per identifier.
// It is a UX throttle local to this process, not a security boundary
// against distributed brute force.
type LoginLimiter struct {
	store       AttemptStore
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

// NewLoginLimiter creates a limiter with the default lockout policy
func NewLoginLimiter(store AttemptStore) *LoginLimiter {
	return &LoginLimiter{
		store:       store,
		maxAttempts: MaxLoginAttempts,
		lockout:     LockoutDuration,
		now:         time.Now,
	}
}

// CheckLock reports whether the identifier is currently locked out and,
// if so, how many minutes remain (rounded up). An expired lock is cleared
// as a side effect.
func (l *LoginLimiter) CheckLock(id string) LockStatus {
	record, ok := l.store.Get(id)
	if !ok || record.LockedUntil.IsZero() {
		return LockStatus{}
	}

	remaining := record.LockedUntil.Sub(l.now())
	if remaining <= 0 {
		l.store.Delete(id)
		return LockStatus{}
	}

	minutes := int((remaining + time.Minute - 1) / time.Minute)
	return LockStatus{Locked: true, MinutesRemaining: minutes}
}

// RecordFailure increments the failure count for the identifier,
// transitioning to locked once the maximum is reached
func (l *LoginLimiter) RecordFailure(id string) FailureResult {
	record, _ := l.store.Get(id)
	record.Count++

	if record.Count >= l.maxAttempts {
		record.LockedUntil = l.now().Add(l.lockout)
		l.store.Set(id, record)
		return FailureResult{Locked: true, AttemptsRemaining: 0}
	}

	l.store.Set(id, record)
	return FailureResult{AttemptsRemaining: l.maxAttempts - record.Count}
}

// Clear resets the identifier to unlocked with zero failures. Called on
// successful authentication.
func (l *LoginLimiter) Clear(id string) {
	l.store.Delete(id)
}
