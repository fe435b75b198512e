package service

import "testing"

func TestNormalizeOptional(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name     string
		input    *string
		expected *string
	}{
		{name: "nil stays nil", input: nil, expected: nil},
		{name: "empty becomes nil", input: strPtr(""), expected: nil},
		{name: "whitespace becomes nil", input: strPtr("   "), expected: nil},
		{name: "value is trimmed", input: strPtr("  Miles Davis  "), expected: strPtr("Miles Davis")},
		{name: "clean value unchanged", input: strPtr("Chorus"), expected: strPtr("Chorus")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizeOptional(tt.input)
			if tt.expected == nil {
				if result != nil {
					t.Errorf("normalizeOptional() = %q, want nil", *result)
				}
				return
			}
			if result == nil || *result != *tt.expected {
				t.Errorf("normalizeOptional() = %v, want %q", result, *tt.expected)
			}
		})
	}
}
