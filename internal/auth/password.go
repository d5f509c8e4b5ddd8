package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is used when hashing passwords for the users document.
const BcryptCost = 10

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// IsHashed reports whether stored looks like a bcrypt hash.
func IsHashed(stored string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(stored, p) {
			return true
		}
	}
	return false
}

// CheckPassword compares a login password against the stored value. Stored
// values are plaintext unless they carry a bcrypt prefix.
func CheckPassword(stored, given string) bool {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
