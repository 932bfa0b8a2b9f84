package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies secrets for every principal type.
type Hasher struct {
	cost  int
	once  sync.Once
	dummy []byte
}

// NewHasher returns a bcrypt hasher. Out of range costs fall back to the default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a plaintext secret with the configured cost.
func (h *Hasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Matches verifies a secret against its hashed value.
func (h *Hasher) Matches(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// Burn spends one comparison's worth of time for an unknown identifier so a
// miss costs the same as a wrong secret.
func (h *Hasher) Burn(plain string) {
	h.once.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("unknown-principal"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
}
