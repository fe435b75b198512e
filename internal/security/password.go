package security

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Password strength classifications
const (
	StrengthWeak   = "weak"
	StrengthMedium = "medium"
	StrengthStrong = "strong"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordRule pairs a user-facing label with its predicate
type PasswordRule struct {
	Label string
	Met   func(password string) bool
}

// PasswordRules is the fixed, ordered rule set passwords are checked
// against. Failed-rule labels are always reported in this order.
var PasswordRules = []PasswordRule{
	{
		Label: "At least 8 characters",
		Met:   func(s string) bool { return utf8.RuneCountInString(s) >= 8 },
	},
	{
		Label: "Uppercase letter",
		Met:   func(s string) bool { return strings.ContainsFunc(s, unicode.IsUpper) },
	},
	{
		Label: "Lowercase letter",
		Met:   func(s string) bool { return strings.ContainsFunc(s, unicode.IsLower) },
	},
	{
		Label: "Number",
		Met:   func(s string) bool { return strings.ContainsFunc(s, unicode.IsDigit) },
	},
	{
		Label: "Special character (!@#$%^&*...)",
		Met: func(s string) bool {
			return strings.ContainsFunc(s, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			})
		},
	},
}

// PasswordCheck reports which rules a password failed
type PasswordCheck struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidatePasswordPolicy checks a password against every rule and returns
// the labels of the failed ones in rule order
func ValidatePasswordPolicy(password string) PasswordCheck {
	var failed []string
	for _, rule := range PasswordRules {
		if !rule.Met(password) {
			failed = append(failed, rule.Label)
		}
	}
	return PasswordCheck{Valid: len(failed) == 0, Errors: failed}
}

// PasswordStrength classifies a password by the number of rules it passes
func PasswordStrength(password string) string {
	passed := 0
	for _, rule := range PasswordRules {
		if rule.Met(password) {
			passed++
		}
	}
	switch {
	case passed >= 5:
		return StrengthStrong
	case passed >= 3:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}
