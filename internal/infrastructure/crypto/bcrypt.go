// Package crypto provides the bcrypt implementation of the ports.Hasher
// contract.
package crypto

import "golang.org/x/crypto/bcrypt"

// BcryptHasher hashes passwords with bcrypt at the configured cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using bcrypt.DefaultCost when cost is
// out of range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
