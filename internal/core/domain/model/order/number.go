package order

import (
	"crypto/rand"
	"fmt"
)

// numberAlphabet excludes characters easy to misread over the phone (0/O, 1/I/L).
const numberAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

const numberSuffixLength = 10

// GenerateNumber produces a human-readable order number such as
// "FM-7K2MQ94XRT". Collision probability over the alphabet and length is
// negligible, and the database enforces uniqueness regardless.
func GenerateNumber() (string, error) {
	buf := make([]byte, numberSuffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating order number: %w", err)
	}

	for i, b := range buf {
		buf[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}

	return "FM-" + string(buf), nil
}
