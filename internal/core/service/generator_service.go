package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/securepass/securepass/internal/core/domain"
)

// GeneratorService draws secrets uniformly from the combined alphabet of the
// selected character pools. Selected pools are not guaranteed to appear.
type GeneratorService struct {
	random io.Reader
}

// NewGeneratorService returns a generator backed by crypto/rand.
func NewGeneratorService() *GeneratorService {
	return &GeneratorService{random: rand.Reader}
}

func (s *GeneratorService) Generate(spec domain.GenerationSpec) (*domain.GeneratedSecret, error) {
	if spec.Length <= 0 {
		return nil, domain.Validation("length must be greater than zero")
	}

	alphabet := spec.Alphabet()
	if alphabet == "" {
		return nil, domain.Validation("at least one character class must be selected")
	}

	n := big.NewInt(int64(len(alphabet)))
	out := make([]byte, spec.Length)
	for i := range out {
		idx, err := rand.Int(s.random, n)
		if err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}

	return &domain.GeneratedSecret{Secret: string(out), Spec: spec}, nil
}
