// Package passwords wraps bcrypt hashing and verification for account
// credentials.
package passwords

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost matches the work factor the stored hashes were created with.
const Cost = 10

// MinLength is the minimum accepted password length.
const MinLength = 6

// ErrTooShort is returned by Hash for passwords under MinLength.
var ErrTooShort = errors.New("password must be at least 6 characters")

// Hash returns the bcrypt hash of a plaintext password.
func Hash(plain string) (string, error) {
	if len(plain) < MinLength {
		return "", ErrTooShort
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored bcrypt hash.
func Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
