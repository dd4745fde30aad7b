// Package sharetoken generates the short public identifiers used to look up
// shared quiz scores.
package sharetoken

import "math/rand/v2"

const (
	// DefaultAlphabet covers 62 symbols; at the default length of 8 the
	// space is 62^8, so collisions are handled by the store's unique index
	// plus a bounded retry rather than checked at generation time.
	DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// DefaultLength is the number of characters in a share token.
	DefaultLength = 8
)

// Generator draws fixed-length tokens from a configurable alphabet.
// The zero value is not usable; construct with New or NewWithAlphabet.
type Generator struct {
	alphabet string
	length   int
}

// New returns a generator with the default 62-symbol alphabet and length 8.
func New() *Generator {
	return NewWithAlphabet(DefaultAlphabet, DefaultLength)
}

// NewWithAlphabet returns a generator over a custom alphabet and length.
// Empty alphabets and non-positive lengths fall back to the defaults.
func NewWithAlphabet(alphabet string, length int) *Generator {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{alphabet: alphabet, length: length}
}

// Generate returns a fresh token. The random source is non-cryptographic;
// tokens are lookup keys, not credentials.
func (g *Generator) Generate() string {
	b := make([]byte, g.length)
	for i := range b {
		b[i] = g.alphabet[rand.IntN(len(g.alphabet))]
	}
	return string(b)
}

// Length returns the configured token length.
func (g *Generator) Length() int {
	return g.length
}
