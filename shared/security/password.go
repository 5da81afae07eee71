package security

import (
	"runtime"

	"github.com/matthewhartstonge/argon2"
)

// hashSem bounds the number of concurrent argon2 computations so a burst of
// signups cannot starve other requests of CPU.
var hashSem = make(chan struct{}, runtime.GOMAXPROCS(0))

var hashConfig = argon2.DefaultConfig()

// HashPassword hashes the given plaintext with argon2id and returns the
// encoded hash string. The same encoding is used for passwords and for
// stored refresh tokens.
func HashPassword(password string) (string, error) {
	hashSem <- struct{}{}
	defer func() { <-hashSem }()

	encoded, err := hashConfig.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether the given plaintext matches the encoded
// argon2 hash. A malformed hash yields an error, a plain mismatch does not.
func VerifyPassword(password, encodedHash string) (bool, error) {
	hashSem <- struct{}{}
	defer func() { <-hashSem }()

	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
