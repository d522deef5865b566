// Package ident supplies the stable identifiers that link a dropdown toggle
// to its menu for accessibility relations. The disclosure state machine
// never generates or stores them; hosts inject a Provider per instance.
package ident

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	defaultPrefix = "dd-"
	defaultBytes  = 4 // 8 hex characters
	menuSuffix    = "-menu"
)

// Provider returns a new unique identifier on each call.
type Provider interface {
	NewID() (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() (string, error)

// NewID calls f.
func (f ProviderFunc) NewID() (string, error) {
	return f()
}

// Random generates prefixed hex identifiers using crypto/rand.
type Random struct {
	Prefix string
	Bytes  int
}

// NewID generates a unique identifier using crypto/rand
func (r Random) NewID() (string, error) {
	prefix := r.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	n := r.Bytes
	if n <= 0 {
		n = defaultBytes
	}
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return prefix + hex.EncodeToString(bytes), nil
}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// NewID returns a new UUID string.
func (UUID) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}

// Sequence hands out predictable identifiers: <prefix>1, <prefix>2, ...
// It is intended for tests and scripted replays.
type Sequence struct {
	Prefix string
	n      atomic.Uint64
}

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() (string, error) {
	prefix := s.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return fmt.Sprintf("%s%d", prefix, s.n.Add(1)), nil
}

// MenuID derives the menu element's identifier from the toggle's. The menu
// is labelled by the toggle, so the toggle id is the one that matters.
func MenuID(toggleID string) string {
	return toggleID + menuSuffix
}
