package shortcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := Generate()
		assert.Len(t, code, Length)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(charset, r), "unexpected character %q in %q", r, code)
		}
	}
}

func TestGenerateDoesNotRepeat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := Generate()
		assert.False(t, seen[code], "generator repeated %q", code)
		seen[code] = true
	}
}
