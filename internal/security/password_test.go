package security

import "testing"

func TestHashPassword(t *testing.T) {
	password := "Abc12345!"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword() returned empty hash")
	}
	if hash == password {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword("wrong-password", hash) {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		wantValid  bool
		wantFailed []string
	}{
		{
			name:      "all rules pass",
			password:  "Abc12345!",
			wantValid: true,
		},
		{
			name:      "missing uppercase and special",
			password:  "abc12345",
			wantValid: false,
			wantFailed: []string{
				"Uppercase letter",
				"Special character (!@#$%^&*...)",
			},
		},
		{
			name:      "multi-byte runes counted as characters",
			password:  "ÑñÑñ1!",
			wantValid: false,
			wantFailed: []string{
				"At least 8 characters",
			},
		},
		{
			name:      "eight multi-byte characters pass the length rule",
			password:  "ÑñÑñÑñ1!",
			wantValid: true,
		},
		{
			name:      "short lowercase only",
			password:  "abc",
			wantValid: false,
			wantFailed: []string{
				"At least 8 characters",
				"Uppercase letter",
				"Number",
				"Special character (!@#$%^&*...)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := ValidatePasswordPolicy(tt.password)
			if check.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", check.Valid, tt.wantValid)
			}
			if len(check.Errors) != len(tt.wantFailed) {
				t.Fatalf("Errors = %v, want %v", check.Errors, tt.wantFailed)
			}
			for i, label := range tt.wantFailed {
				if check.Errors[i] != label {
					t.Errorf("Errors[%d] = %q, want %q", i, check.Errors[i], label)
				}
			}
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{
			name:     "all five rules is strong",
			password: "Abc12345!",
			want:     StrengthStrong,
		},
		{
			name:     "three rules is medium",
			password: "abc12345",
			want:     StrengthMedium,
		},
		{
			name:     "one rule is weak",
			password: "abc",
			want:     StrengthWeak,
		},
		{
			name:     "empty is weak",
			password: "",
			want:     StrengthWeak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PasswordStrength(tt.password); got != tt.want {
				t.Errorf("PasswordStrength(%q) = %q, want %q", tt.password, got, tt.want)
			}
		})
	}
}
