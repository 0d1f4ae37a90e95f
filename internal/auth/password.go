package auth

import "golang.org/x/crypto/bcrypt"

// Hasher hashes passwords with bcrypt after appending a deployment-wide
// pepper. The pepper is supplied via configuration and is never stored
// with the hash, so a leaked table alone is not enough to verify guesses.
type Hasher struct {
	pepper string
	cost   int
}

func NewHasher(pepper string, cost int) *Hasher {
	return &Hasher{pepper: pepper, cost: cost}
}

// Hash returns the bcrypt hash of the peppered password. bcrypt embeds a
// random salt per call, so hashing the same password twice yields
// different strings.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain+h.pepper), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored hash. It never fails:
// a malformed hash simply verifies false.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain+h.pepper)) == nil
}
