package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a plaintext password. Costs outside bcrypt's
// accepted range fall back to the library default, so a misconfigured
// BCRYPT_COST cannot weaken hashing below the floor.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash. The
// comparison is constant time inside bcrypt; malformed hashes simply fail.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
