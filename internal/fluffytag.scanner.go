package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Sink receives scanner events. The processor implements this interface and
// owns the tag stack; the scanner only decides whether a byte is part of a
// tag token, part of an open tag's body, or untagged prose.
type Sink interface {
	// TagToken is called with a complete, whitespace-trimmed tag token
	// including its angle brackets (e.g. `<artifact id="a1">`).
	TagToken(raw string)

	// BodyByte is called for each byte belonging to the innermost open
	// tag's body. Only called while HasOpenTag reports true.
	BodyByte(ch byte)

	// UntaggedByte is called for each byte outside any open tag.
	UntaggedByte(ch byte)

	// FlushUntagged is called when a tag token opens, before TagToken.
	FlushUntagged()

	// HasOpenTag reports whether at least one tag context is open.
	HasOpenTag() bool
}

// Scanner is the byte-at-a-time lexer for tag-bearing text streams. It keeps
// the in-token buffer and the JSON quote/depth state; everything else lives
// behind the Sink. State persists across calls, so input may be split at any
// byte boundary without changing the event sequence.
type Scanner struct {
	sink    Sink
	tracker *JSONTracker
	inTag   bool
	token   strings.Builder
	logger  *zap.Logger
}

// NewScanner creates a scanner emitting into sink.
func NewScanner(sink Sink, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgScannerCreated)
	return &Scanner{
		sink:    sink,
		tracker: NewJSONTracker(),
		logger:  logger,
	}
}

// Scan feeds a chunk of input to the scanner.
func (s *Scanner) Scan(chunk string) {
	for i := 0; i < len(chunk); i++ {
		s.scanByte(chunk[i])
	}
}

// scanByte advances the state machine by one byte.
func (s *Scanner) scanByte(ch byte) {
	s.tracker.Update(ch)

	// A '<' only opens a tag token outside quoted or brace-nested content.
	// This fires inside an open tag's body too, which is how nested tags
	// are recognized.
	if ch == CharTagOpen && !s.tracker.InQuotes() && s.tracker.Depth() == 0 {
		s.sink.FlushUntagged()
		s.inTag = true
		s.token.Reset()
		s.token.WriteByte(ch)
		return
	}

	if s.inTag {
		s.token.WriteByte(ch)
		if ch == CharTagClose {
			raw := strings.TrimSpace(s.token.String())
			s.inTag = false
			s.token.Reset()
			s.logger.Debug(LogMsgTokenComplete, zap.String(LogFieldToken, raw))
			s.sink.TagToken(raw)
		}
		return
	}

	if s.sink.HasOpenTag() {
		s.sink.BodyByte(ch)
	} else {
		s.sink.UntaggedByte(ch)
	}
}

// InTag reports whether the scanner is in the middle of a tag token.
func (s *Scanner) InTag() bool {
	return s.inTag
}

// PartialToken returns the bytes of an incomplete tag token, if any.
func (s *Scanner) PartialToken() string {
	return s.token.String()
}

// Tracker exposes the quote/depth state for introspection.
func (s *Scanner) Tracker() *JSONTracker {
	return s.tracker
}

// Reset clears all scanner state.
func (s *Scanner) Reset() {
	s.inTag = false
	s.token.Reset()
	s.tracker.Reset()
	s.logger.Debug(LogMsgScannerReset)
}
