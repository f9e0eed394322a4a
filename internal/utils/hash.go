package utils

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. Changing these invalidates every stored hash, so
// they are fixed for the lifetime of the data set.
const (
	SaltLength = 16
	Iterations = 10000
	KeyLength  = 128
)

// HashPassword derives a salted PBKDF2-SHA512 hash for a password.
// Both return values are hex-encoded for storage in text columns.
func HashPassword(password string) (salt string, hash string, err error) {
	rawSalt := make([]byte, SaltLength)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", err
	}
	salt = hex.EncodeToString(rawSalt)

	key := pbkdf2.Key([]byte(password), []byte(salt), Iterations, KeyLength, sha512.New)
	hash = hex.EncodeToString(key)

	return salt, hash, nil
}

// VerifyPassword re-derives the hash for password with the stored salt
// and compares it against the stored hash in constant time.
func VerifyPassword(password, salt, hash string) bool {
	key := pbkdf2.Key([]byte(password), []byte(salt), Iterations, KeyLength, sha512.New)
	candidate := hex.EncodeToString(key)

	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) == 1
}
