package auth

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes
const maxPasswordBytes = 72

// PasswordPolicy decides whether a plaintext password is strong enough
type PasswordPolicy func(password string) bool

// DefaultPasswordPolicy requires at least minLen characters with a digit, an
// upper-case letter and a special character.
func DefaultPasswordPolicy(minLen int) PasswordPolicy {
	return func(password string) bool {
		if len([]rune(password)) < minLen || len(password) > maxPasswordBytes {
			return false
		}

		var (
			hasUpper   bool
			hasNumber  bool
			hasSpecial bool
		)
		for _, char := range password {
			switch {
			case unicode.IsUpper(char):
				hasUpper = true
			case unicode.IsNumber(char):
				hasNumber = true
			case unicode.IsPunct(char) || unicode.IsSymbol(char):
				hasSpecial = true
			}
		}
		return hasUpper && hasNumber && hasSpecial
	}
}

// hashPassword salts and hashes the password. bcrypt draws a fresh random
// salt per call and stores it inside the hash.
func hashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
