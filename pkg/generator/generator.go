package generator

import (
	"crypto/rand"
	"math/big"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// IDLength is the length of user and session identifiers.
	IDLength = 24
)

func GenerateRandomID(length int) (string, error) {
	result := make([]byte, length)
	n := big.NewInt(int64(len(alphabet)))

	for i := range result {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", err
		}
		result[i] = alphabet[idx.Int64()]
	}

	return string(result), nil
}

func NewID() (string, error) {
	return GenerateRandomID(IDLength)
}
