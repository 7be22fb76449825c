package shortid

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	Alphabet = "0123456789abcdef"
	Length   = 7
)

// Generator produces random fixed-length identifiers. It does not guarantee
// uniqueness; callers check candidates against storage.
type Generator struct {
	alphabet string
	length   int
}

func New() *Generator {
	return &Generator{alphabet: Alphabet, length: Length}
}

// Generate draws every character independently and uniformly from the alphabet.
func (g *Generator) Generate() string {
	return gonanoid.MustGenerate(g.alphabet, g.length)
}
