// Package shortcode mints the public identifiers screenshots are shared
// under. Codes are random, so they reveal nothing about the image or its
// owner; collision handling is the link registry's job.
package shortcode

import (
	"crypto/rand"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length 7 over a 62-char alphabet gives ~3.5e12 codes; accidental
// collisions at tens of thousands of rows are negligible.
const Length = 7

// Generate returns a new random short code.
func Generate() string {
	b := make([]byte, Length)
	rand.Read(b)
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}
