package order

import "crypto/rand"

const refAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RefLength is the size of the public order reference.
const RefLength = 12

// NewRef generates a short shareable order reference, e.g. "K3TQ7W2ZB9XD".
func NewRef() string {
	buf := make([]byte, RefLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	for i, b := range buf {
		buf[i] = refAlphabet[int(b)%len(refAlphabet)]
	}
	return string(buf)
}
