package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Passphrase guards the catalog when it is reachable by others on the
// network. The zero value (and a nil *Passphrase) disables the guard.
type Passphrase struct {
	hash []byte
}

// NewPassphrase hashes plain. An empty plain returns nil, which disables
// the guard.
func NewPassphrase(plain string) (*Passphrase, error) {
	if plain == "" {
		return nil, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing passphrase: %w", err)
	}
	return &Passphrase{hash: hash}, nil
}

// Enabled reports whether requests must be authenticated.
func (p *Passphrase) Enabled() bool {
	return p != nil && len(p.hash) > 0
}

// Check reports whether attempt matches the passphrase.
func (p *Passphrase) Check(attempt string) bool {
	if !p.Enabled() {
		return true
	}
	return bcrypt.CompareHashAndPassword(p.hash, []byte(attempt)) == nil
}
