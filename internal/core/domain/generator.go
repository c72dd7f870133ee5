package domain

// Character pools for secret generation.
const (
	PoolUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	PoolLower   = "abcdefghijklmnopqrstuvwxyz"
	PoolDigits  = "0123456789"
	PoolSpecial = "!@#$%^&*()-_+=<>?"
)

// GenerationSpec describes the secret to generate.
type GenerationSpec struct {
	Length  int  `json:"length"`
	Upper   bool `json:"uppercase"`
	Lower   bool `json:"lowercase"`
	Digits  bool `json:"numbers"`
	Special bool `json:"special"`
}

// Alphabet concatenates the selected pools in fixed order.
func (s GenerationSpec) Alphabet() string {
	var alphabet string
	if s.Upper {
		alphabet += PoolUpper
	}
	if s.Lower {
		alphabet += PoolLower
	}
	if s.Digits {
		alphabet += PoolDigits
	}
	if s.Special {
		alphabet += PoolSpecial
	}
	return alphabet
}

// GeneratedSecret is a generated value plus the parameters it was built from.
type GeneratedSecret struct {
	Secret string
	Spec   GenerationSpec
}
