package fluffytag

import (
	"fmt"
	"sort"
	"strings"
)

// Attributes holds a tag's parsed attributes. Keys are unique; a duplicate
// attribute name in the source markup resolves last-write-wins.
type Attributes map[string]string

// Get returns the value for name and whether it was present.
func (a Attributes) Get(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// GetOr returns the value for name, or fallback when absent.
func (a Attributes) GetOr(name, fallback string) string {
	if v, ok := a[name]; ok {
		return v
	}
	return fallback
}

// Has reports whether name is present.
func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String renders the attributes in sorted key order, for logs and error
// metadata.
func (a Attributes) String() string {
	if len(a) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%q", k, a[k])
	}
	return sb.String()
}

// HandlerFunc processes a completed tag. It receives the tag's attributes
// and its full body content (empty for self-closing tags). A non-nil error
// is wrapped and routed to the processor's error boundary.
type HandlerFunc func(attrs Attributes, content string) error

// StreamingFunc receives one body byte at a time while a tag is open,
// enabling incremental consumption before the tag closes.
type StreamingFunc func(ch byte, attrs Attributes) error

// TagStartFunc is called when an opening or self-closing tag is recognized,
// before the handler runs.
type TagStartFunc func(name string, attrs Attributes) error

// TagCompleteFunc is called after the handler has run for a completed tag.
type TagCompleteFunc func(name string, attrs Attributes, content string) error

// UntaggedFunc receives trimmed untagged prose, either when the auto-process
// threshold is exceeded or on Flush.
type UntaggedFunc func(content string) error

// ErrorHandlerFunc receives every structural or handler error raised during
// processing. When configured, it is the single error boundary: scanning
// state is left as-is and processing continues.
type ErrorHandlerFunc func(err error)

// TagConfig is the immutable configuration for one registered tag type.
// It is resolved once when a tag opens; re-registering a handler mid-stream
// does not affect tags already on the stack.
type TagConfig struct {
	// Handler processes the completed tag. Required.
	Handler HandlerFunc

	// StreamContent marks the tag as intended for streaming consumption.
	// Informational; body bytes are always accumulated either way.
	StreamContent bool

	// ProcessNested is accepted for compatibility but not consulted:
	// nested tags are always structurally recognized. See the package
	// documentation.
	ProcessNested bool

	// StreamingCallback, when set, receives each body byte as it arrives.
	StreamingCallback StreamingFunc

	// AllowsNestedOfSameType permits a tag to open while another tag of
	// the same name is already on the stack. When false (the default),
	// such an opening raises a nested-tag violation.
	AllowsNestedOfSameType bool

	// OnTagStart fires when the tag opens, before any body content.
	OnTagStart TagStartFunc

	// OnTagComplete fires after the handler, with the final content.
	OnTagComplete TagCompleteFunc
}

// TagOption is a functional option for RegisterHandler.
type TagOption func(*TagConfig)

// WithStreamContent sets the informational stream-content flag.
// Default: true
func WithStreamContent(stream bool) TagOption {
	return func(c *TagConfig) {
		c.StreamContent = stream
	}
}

// WithProcessNested sets the advisory nested-processing flag.
// Default: true
func WithProcessNested(nested bool) TagOption {
	return func(c *TagConfig) {
		c.ProcessNested = nested
	}
}

// WithStreamingCallback sets a per-byte body callback.
func WithStreamingCallback(cb StreamingFunc) TagOption {
	return func(c *TagConfig) {
		c.StreamingCallback = cb
	}
}

// WithAllowsNestedOfSameType permits self-nesting for this tag.
// Default: false
func WithAllowsNestedOfSameType(allow bool) TagOption {
	return func(c *TagConfig) {
		c.AllowsNestedOfSameType = allow
	}
}

// WithOnTagStart sets a callback fired when the tag opens.
func WithOnTagStart(cb TagStartFunc) TagOption {
	return func(c *TagConfig) {
		c.OnTagStart = cb
	}
}

// WithOnTagComplete sets a callback fired after the tag's handler has run.
func WithOnTagComplete(cb TagCompleteFunc) TagOption {
	return func(c *TagConfig) {
		c.OnTagComplete = cb
	}
}
