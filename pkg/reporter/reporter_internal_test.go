package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "ééé…", truncate("éééééé", 4))
	assert.Equal(t, "unbounded", truncate("unbounded", 0))
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/a/b.java", displayPath("/a/b.java", ""))
	assert.Equal(t, "b.java", displayPath("/a/b.java", "/a"))
	assert.Equal(t, "/x/b.java", displayPath("/x/b.java", "/a"))
}

func TestPad(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "  ab", padLeft("ab", 4))
	assert.Equal(t, "abcdef", padLeft("abcdef", 4))
}
