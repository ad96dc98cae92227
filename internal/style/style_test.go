package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlain(t *testing.T) {
	p := Plain()
	assert.False(t, p.Enabled())
	assert.Equal(t, "Expected: 1", p.Expected("Expected: 1"))
	assert.Equal(t, "a\nb", p.Received("a\nb"))
}

func TestColored(t *testing.T) {
	p := New(true)
	assert.True(t, p.Enabled())

	out := p.Expected("short\nmuch longer line")
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "\x1b[")
	assert.Contains(t, lines[0], "short")
	// lines are not padded to a common width
	assert.NotContains(t, lines[0], "short ")

	assert.Equal(t, "", p.Received(""))
	assert.Contains(t, p.Fail("FAIL"), "FAIL")
}
