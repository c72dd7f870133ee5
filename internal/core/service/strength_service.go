package service

import (
	"strings"
	"unicode/utf8"

	"github.com/securepass/securepass/internal/core/domain"
)

// StrengthService runs a secret through an ordered list of independent rules
// and classifies it from the number of unmet ones.
type StrengthService struct {
	rules []domain.StrengthRule
}

// NewStrengthService builds an evaluator over rules, or over
// domain.DefaultStrengthRules when none are given.
func NewStrengthService(rules ...domain.StrengthRule) *StrengthService {
	if len(rules) == 0 {
		rules = domain.DefaultStrengthRules()
	}
	return &StrengthService{rules: rules}
}

// Evaluate returns the strength class and the suggestions of every unmet
// rule, in rule order.
func (s *StrengthService) Evaluate(secret string) (*domain.StrengthReport, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, domain.Validation("password cannot be blank")
	}

	suggestions := make([]string, 0, len(s.rules))
	for _, rule := range s.rules {
		if !rule.Satisfied(secret) {
			suggestions = append(suggestions, rule.Suggestion)
		}
	}

	return &domain.StrengthReport{
		Strength:    domain.ClassifyStrength(len(suggestions), utf8.RuneCountInString(secret)),
		Suggestions: suggestions,
	}, nil
}
