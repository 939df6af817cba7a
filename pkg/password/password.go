// Package password generates class access passwords.
package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Alphabet omits characters that are easy to confuse when read aloud or printed
// (0/O, 1/I/L).
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Generate returns a random password of the given length drawn from Alphabet.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("password length must be positive, got %d", length)
	}
	max := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf), nil
}
