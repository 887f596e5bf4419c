package domain

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// codeAlphabet is the character set for redemption codes. Uppercase
// alphanumerics only, so codes survive handwriting and shouting across
// a noisy door line.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the number of characters in a redemption code.
const CodeLength = 8

// NewID returns a fresh record identifier. UUIDv7 combines a monotonic
// timestamp with random bits, so IDs from the same ledger sort roughly
// by creation time and never collide in practice.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewCode returns a human-presentable redemption code. Uniqueness is
// probabilistic and deliberately unchecked against the ledger: the
// reconciler and lookup paths treat duplicate codes as the same logical
// registration rather than failing.
func NewCode() string {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf)
}
