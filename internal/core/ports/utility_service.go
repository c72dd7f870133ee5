package ports

import "github.com/securepass/securepass/internal/core/domain"

// StrengthEvaluator classifies a candidate secret.
type StrengthEvaluator interface {
	Evaluate(secret string) (*domain.StrengthReport, error)
}

// SecretGenerator produces random secrets from a generation spec.
type SecretGenerator interface {
	Generate(spec domain.GenerationSpec) (*domain.GeneratedSecret, error)
}
