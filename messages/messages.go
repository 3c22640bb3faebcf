// Package messages provides randomized selection from fixed phrase sets
// used for spoken-interaction feedback.
package messages

import "math/rand"

// Default phrase sets shown when a session starts listening and when an
// utterance is understood.
var (
	DefaultGreetings = []string{
		"¿Dime?",
		"Te escucho",
		"¿Qué necesitas?",
		"Cuéntame",
		"Soy toda oídos",
		"A tus órdenes",
		"Dime lo que necesitas",
		"Habla con confianza",
		"Estoy atenta",
	}

	DefaultAcknowledgments = []string{
		"Entendido",
		"Ok, lo tengo",
		"Claro que sí",
		"Por supuesto",
		"Recibido",
		"Comprendido",
		"Anotado",
	}
)

// Catalog picks random phrases from immutable sets fixed at construction.
type Catalog struct {
	greetings       []string
	acknowledgments []string
	intn            func(n int) int
}

// Option customizes a Catalog.
type Option func(*Catalog)

// WithRand replaces the random source, for deterministic tests.
func WithRand(intn func(n int) int) Option {
	return func(c *Catalog) { c.intn = intn }
}

func NewCatalog(greetings, acknowledgments []string, opts ...Option) *Catalog {
	c := &Catalog{
		greetings:       append([]string(nil), greetings...),
		acknowledgments: append([]string(nil), acknowledgments...),
		intn:            rand.Intn,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDefaultCatalog builds a Catalog over the default phrase sets.
func NewDefaultCatalog(opts ...Option) *Catalog {
	return NewCatalog(DefaultGreetings, DefaultAcknowledgments, opts...)
}

func (c *Catalog) Greeting() string {
	return pick(c.greetings, c.intn)
}

func (c *Catalog) Acknowledgment() string {
	return pick(c.acknowledgments, c.intn)
}

func pick(set []string, intn func(n int) int) string {
	if len(set) == 0 {
		return ""
	}
	return set[intn(len(set))]
}
