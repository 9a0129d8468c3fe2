// Package gameid generates and checks match identifiers. IDs are UUIDv7
// values in canonical string form, so they sort by creation time.
package gameid

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// generator creates IDs from a configurable source of randomness.
type generator struct {
	random io.Reader
}

// newGenerator reads random bits from r, or from crypto/rand when r is nil.
func newGenerator(r io.Reader) *generator {
	if r == nil {
		r = rand.Reader
	}
	return &generator{random: r}
}

// Generate creates a new match ID from crypto/rand.
func Generate() string {
	id, err := newGenerator(nil).generate()
	if err != nil {
		panic("failed to generate match id: " + err.Error())
	}
	return id
}

func (g *generator) generate() (string, error) {
	id, err := uuid.NewV7FromReader(g.random)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Validate checks that id is a canonical UUIDv7 string.
func Validate(id string) error {
	u, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", id, err)
	}
	if u.Version() != 7 {
		return fmt.Errorf("match id %q is version %d, want 7", id, u.Version())
	}
	if u.String() != id {
		return fmt.Errorf("match id %q is not in canonical form", id)
	}
	return nil
}

// Timestamp returns the creation time embedded in id.
func Timestamp(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}
	u := uuid.MustParse(id)

	// The first 48 bits are milliseconds since the Unix epoch.
	var ms int64
	for _, b := range u[:6] {
		ms = ms<<8 | int64(b)
	}
	return time.UnixMilli(ms), nil
}
