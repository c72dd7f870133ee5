package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Strength classes.
const (
	StrengthStrong = "Strong"
	StrengthMedium = "Medium"
	StrengthWeak   = "Weak"
)

// MinSecretLength is the length below which the length rule fails.
const MinSecretLength = 8

// StrengthRule is one independent check in the evaluation pipeline. When
// Satisfied returns false, Suggestion is appended to the report.
type StrengthRule struct {
	Name       string
	Suggestion string
	Satisfied  func(secret string) bool
}

// StrengthReport is the outcome of evaluating a secret.
type StrengthReport struct {
	Strength    string
	Suggestions []string
}

// DefaultStrengthRules returns the built-in rules in evaluation order. The
// order is observable: suggestions are reported in it.
func DefaultStrengthRules() []StrengthRule {
	return []StrengthRule{
		{
			Name:       "length",
			Suggestion: fmt.Sprintf("Password must be at least %d characters long", MinSecretLength),
			Satisfied:  func(s string) bool { return utf8.RuneCountInString(s) >= MinSecretLength },
		},
		{
			Name:       "lowercase",
			Suggestion: "Password must contain at least one lowercase letter",
			Satisfied:  func(s string) bool { return containsRune(s, isLower) },
		},
		{
			Name:       "uppercase",
			Suggestion: "Password must contain at least one uppercase letter",
			Satisfied:  func(s string) bool { return containsRune(s, isUpper) },
		},
		{
			Name:       "number",
			Suggestion: "Password must contain at least one number",
			Satisfied:  func(s string) bool { return containsRune(s, isDigit) },
		},
		{
			Name:       "special",
			Suggestion: "Password must contain at least one special character (e.g., !@#$%^&*)",
			Satisfied: func(s string) bool {
				return containsRune(s, func(r rune) bool { return !isLower(r) && !isUpper(r) && !isDigit(r) })
			},
		},
	}
}

// ClassifyStrength maps the number of unmet rules and the secret length to a
// strength class.
func ClassifyStrength(unmet int, length int) string {
	switch {
	case unmet == 0:
		return StrengthStrong
	case unmet <= 2 && length >= MinSecretLength:
		return StrengthMedium
	default:
		return StrengthWeak
	}
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func containsRune(s string, pred func(rune) bool) bool {
	return strings.IndexFunc(s, pred) >= 0
}
