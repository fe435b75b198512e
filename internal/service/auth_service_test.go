package service

import (
	"errors"
	"strings"
	"testing"
)

func TestBadCredentialsErrorUnwraps(t *testing.T) {
	var err error = &BadCredentialsError{AttemptsRemaining: 2}

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Error("expected BadCredentialsError to match ErrInvalidCredentials")
	}

	var badCreds *BadCredentialsError
	if !errors.As(err, &badCreds) {
		t.Fatal("expected errors.As to extract BadCredentialsError")
	}
	if badCreds.AttemptsRemaining != 2 {
		t.Errorf("expected 2 attempts remaining, got %d", badCreds.AttemptsRemaining)
	}
}

func TestPasswordPolicyErrorUnwraps(t *testing.T) {
	var err error = &PasswordPolicyError{Failures: []string{"Number"}}

	if !errors.Is(err, ErrWeakPassword) {
		t.Error("expected PasswordPolicyError to match ErrWeakPassword")
	}
}

func TestAccountLockedErrorMessage(t *testing.T) {
	err := &AccountLockedError{MinutesRemaining: 15}
	if !strings.Contains(err.Error(), "15") {
		t.Errorf("expected message to mention minutes remaining, got %q", err.Error())
	}
}

func TestPasswordFingerprintStable(t *testing.T) {
	a := passwordFingerprint("some-bcrypt-hash")
	b := passwordFingerprint("some-bcrypt-hash")
	if a != b {
		t.Error("fingerprint of the same hash should be stable")
	}
	if a == passwordFingerprint("another-hash") {
		t.Error("different hashes should not share a fingerprint")
	}
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(a))
	}
}
