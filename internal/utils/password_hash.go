package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the bcrypt digest stored for a user's password.
// Default cost is sufficient here since the login endpoints are rate-limited.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPasswordHash reports whether plain matches the stored bcrypt digest.
func CheckPasswordHash(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
