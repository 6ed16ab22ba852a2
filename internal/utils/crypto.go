// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"math/big"
)

const digits = "0123456789"

// RandomDigits returns n cryptographically random decimal digits.
func RandomDigits(n int) (string, error) {
	b := make([]byte, n)

	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		b[i] = digits[idx.Int64()]
	}

	return string(b), nil
}
