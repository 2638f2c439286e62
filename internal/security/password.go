package security

import (
	"errors"
	"regexp"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost defines the bcrypt work factor.
const bcryptCost = 12

// ErrNoAuthKey indicates the server-side key material is not configured.
var ErrNoAuthKey = errors.New("security: auth key is not configured")

// hashedPattern matches self-describing bcrypt output: algorithm tag, cost,
// then 53 characters of salt and digest.
var hashedPattern = regexp.MustCompile(`^\$2[aby]\$\d{2}\$.{53}$`)

// HashPassword hashes a plaintext password using bcrypt. The server-side
// auth key is concatenated with the password before hashing, so rotating
// the key invalidates every stored hash at once.
func HashPassword(password, authKey string) (string, error) {
	if authKey == "" {
		return "", ErrNoAuthKey
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password+authKey), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a stored bcrypt hash with a plaintext password
// combined with the auth key. It never fails loudly: any internal error is
// logged and reported as a mismatch.
func CheckPassword(hash, password, authKey string) bool {
	if authKey == "" {
		log.Error("password check attempted without auth key")
		return false
	}
	errCompare := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+authKey))
	if errCompare != nil {
		if !errors.Is(errCompare, bcrypt.ErrMismatchedHashAndPassword) {
			log.WithError(errCompare).Warn("password hash comparison failed")
		}
		return false
	}
	return true
}

// LooksHashed reports whether a stored value is structurally a bcrypt hash.
// Migration tooling uses this to find legacy plaintext credentials; the
// live authentication path never consults it.
func LooksHashed(value string) bool {
	return hashedPattern.MatchString(value)
}
