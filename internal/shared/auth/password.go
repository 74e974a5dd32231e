package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost the existing account base was hashed with,
// so stored hashes keep verifying after migration.
const bcryptCost = 10

// HashPassword hashes a plain text password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if a plain text password matches the hashed password
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
