package handler

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "short", truncateUTF8("short", 30000))
	assert.Equal(t, "abcde", truncateUTF8("abcdefgh", 5))

	// Limit landing inside a multi-byte rune backs off to the boundary
	s := "aaaa" + "é" // é is 2 bytes, starting at index 4
	assert.Equal(t, "aaaa", truncateUTF8(s, 5))
	assert.Equal(t, "aaaa", truncateUTF8(s, 4))
	assert.Equal(t, s, truncateUTF8(s, 6))

	// Never produces invalid UTF-8 regardless of where the limit falls
	mixed := strings.Repeat("résumé ✓ ", 50)
	for limit := 0; limit <= len(mixed); limit++ {
		assert.True(t, utf8.ValidString(truncateUTF8(mixed, limit)))
	}
}
