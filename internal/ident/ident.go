// Package ident generates collision-resistant entity identifiers.
//
// Generated values are UUID-v4 strings. Because the ids are merged into
// client-visible records, every candidate is validated before it is returned;
// a value that fails validation escalates to the next fallback tier instead
// of being surfaced.
package ident

import (
	cryptorand "crypto/rand"
	"fmt"
	mathrand "math/rand"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// pattern matches the canonical 36-character hyphenated lowercase form with
// version nibble 4 and variant nibble in {8,9,a,b}.
var pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// Valid reports whether id is a canonically formatted identifier.
func Valid(id string) bool {
	return pattern.MatchString(id)
}

// tier is one candidate strategy in the fallback chain.
type tier struct {
	name     string
	generate func() (string, error)
}

// Generator produces validated identifiers via an ordered fallback chain.
// It is safe for concurrent use; each tier draws from a concurrency-safe
// randomness source.
type Generator struct {
	tiers []tier
}

// NewGenerator creates a generator with the standard three-tier chain:
// library UUID-v4, manual construction from crypto/rand, and a last-resort
// construction from a non-cryptographic source.
func NewGenerator() *Generator {
	return &Generator{
		tiers: []tier{
			{name: "uuid", generate: uuidTier},
			{name: "crypto", generate: cryptoTier},
			{name: "pseudo", generate: pseudoTier},
		},
	}
}

// Generate returns a validated identifier, trying each tier in order.
// It fails only when every tier is exhausted, returning a *GenerationError
// that carries the error from each attempted tier.
func (g *Generator) Generate() (string, error) {
	var tierErrs []string

	for _, t := range g.tiers {
		id, err := t.generate()
		if err != nil {
			tierErrs = append(tierErrs, fmt.Sprintf("%s: %v", t.name, err))
			continue
		}
		if !Valid(id) {
			tierErrs = append(tierErrs, fmt.Sprintf("%s: produced malformed id %q", t.name, id))
			continue
		}
		return id, nil
	}

	return "", &GenerationError{
		TierErrors: tierErrs,
		Timestamp:  time.Now().UTC(),
	}
}

// GenerationError reports that every fallback tier failed.
type GenerationError struct {
	TierErrors []string
	Timestamp  time.Time
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("identifier generation failed at all tiers: %v", e.TierErrors)
}

// uuidTier generates via the uuid library's secure random source.
func uuidTier() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// cryptoTier builds a UUID-v4 by hand from 16 secure random bytes.
func cryptoTier() (string, error) {
	var b [16]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return "", err
	}
	return formatBytes(b), nil
}

// pseudoTier is the last resort: same construction from math/rand.
func pseudoTier() (string, error) {
	var b [16]byte
	hi := mathrand.Uint64()
	lo := mathrand.Uint64()
	for i := 0; i < 8; i++ {
		b[i] = byte(hi >> (8 * i))
		b[8+i] = byte(lo >> (8 * i))
	}
	return formatBytes(b), nil
}

// formatBytes forces the version and variant bits and renders the bytes
// as lowercase hex grouped 8-4-4-4-12.
func formatBytes(b [16]byte) string {
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant 10xxxxxx
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
