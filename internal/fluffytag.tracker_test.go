package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func feed(t *JSONTracker, s string) {
	for i := 0; i < len(s); i++ {
		t.Update(s[i])
	}
}

func TestJSONTracker_DepthCounting(t *testing.T) {
	tr := NewJSONTracker()

	feed(tr, "{")
	assert.Equal(t, 1, tr.Depth())

	feed(tr, "{")
	assert.Equal(t, 2, tr.Depth())

	feed(tr, "}}")
	assert.Equal(t, 0, tr.Depth())
}

func TestJSONTracker_UnmatchedCloseFloorsAtZero(t *testing.T) {
	tr := NewJSONTracker()

	feed(tr, "}}}")
	assert.Equal(t, 0, tr.Depth())

	feed(tr, "{")
	assert.Equal(t, 1, tr.Depth())
}

func TestJSONTracker_QuotesOnlyInsideBraces(t *testing.T) {
	tr := NewJSONTracker()

	// Quotes at depth 0 are plain text
	feed(tr, `"hello"`)
	assert.False(t, tr.InQuotes())
	assert.Equal(t, 0, tr.Depth())

	// Quotes inside braces toggle quoting
	feed(tr, `{"`)
	assert.True(t, tr.InQuotes())
	assert.Equal(t, byte('"'), tr.QuoteChar())

	feed(tr, `"`)
	assert.False(t, tr.InQuotes())
}

func TestJSONTracker_BracesInsideQuotesIgnored(t *testing.T) {
	tr := NewJSONTracker()

	feed(tr, `{"a{{{b"`)
	assert.Equal(t, 1, tr.Depth())
	assert.False(t, tr.InQuotes())
}

func TestJSONTracker_ExactQuoteCharCloses(t *testing.T) {
	tr := NewJSONTracker()

	// A single quote opens; a double quote inside does not close it
	feed(tr, `{'a"b`)
	assert.True(t, tr.InQuotes())
	assert.Equal(t, byte('\''), tr.QuoteChar())

	feed(tr, `'`)
	assert.False(t, tr.InQuotes())
	assert.Equal(t, byte(0), tr.QuoteChar())
}

func TestJSONTracker_QuoteToggleDoesNotChangeDepth(t *testing.T) {
	tr := NewJSONTracker()

	feed(tr, `{"x"`)
	assert.Equal(t, 1, tr.Depth())
}

func TestJSONTracker_Reset(t *testing.T) {
	tr := NewJSONTracker()

	feed(tr, `{{"in quotes`)
	assert.Equal(t, 2, tr.Depth())
	assert.True(t, tr.InQuotes())

	tr.Reset()
	assert.Equal(t, 0, tr.Depth())
	assert.False(t, tr.InQuotes())
	assert.Equal(t, byte(0), tr.QuoteChar())
}
