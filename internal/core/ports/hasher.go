package ports

// Hasher is the pluggable one-way password hasher. Verify reports whether
// the candidate password matches the stored hash.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
