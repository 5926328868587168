package internal

// JSONTracker tracks whether the scanner is currently inside JSON-shaped
// content ({ ... }) and, within that, inside a quoted string. While the
// tracker reports depth > 0 or an open quote, angle brackets are treated as
// payload rather than tag delimiters.
type JSONTracker struct {
	depth     int
	inQuotes  bool
	quoteChar byte
}

// NewJSONTracker creates a tracker in its zero state.
func NewJSONTracker() *JSONTracker {
	return &JSONTracker{}
}

// Update advances the tracker by one byte.
//
// Quote toggling only happens inside braces (depth > 0), and only the exact
// quote character that opened a string closes it. Brace counting is
// suspended while inside quotes. An unmatched closing brace is tolerated:
// depth never goes negative.
func (t *JSONTracker) Update(ch byte) {
	if (ch == CharDoubleQuote || ch == CharSingleQuote) && t.depth > 0 {
		if !t.inQuotes {
			t.inQuotes = true
			t.quoteChar = ch
		} else if ch == t.quoteChar {
			t.inQuotes = false
			t.quoteChar = 0
		}
	}

	if !t.inQuotes {
		switch ch {
		case CharOpenBrace:
			t.depth++
		case CharCloseBrace:
			if t.depth > 0 {
				t.depth--
			}
		}
	}
}

// Depth returns the current brace nesting depth.
func (t *JSONTracker) Depth() int {
	return t.depth
}

// InQuotes reports whether the tracker is inside a quoted string.
func (t *JSONTracker) InQuotes() bool {
	return t.inQuotes
}

// QuoteChar returns the quote character that opened the current string,
// or 0 when not inside quotes.
func (t *JSONTracker) QuoteChar() byte {
	return t.quoteChar
}

// Reset returns the tracker to its zero state.
func (t *JSONTracker) Reset() {
	t.depth = 0
	t.inQuotes = false
	t.quoteChar = 0
}
