package fluffytag

import (
	"strings"
	"time"
)

// TagContext is the live bookkeeping record for one currently-open tag.
// Contexts are exclusively owned by the processor's stack while open; the
// final (attributes, content) snapshot is handed to the dispatcher at pop
// time.
type TagContext struct {
	// Name is the tag name as it appeared in the opening token.
	Name string

	// Attributes are the parsed opening-tag attributes.
	Attributes Attributes

	// StartTime records when the opening tag was recognized. Informational.
	StartTime time.Time

	// content accumulates body bytes while the tag is open. Only bytes
	// appearing directly inside this tag accumulate here; a nested child's
	// markup and body belong to the child.
	content strings.Builder

	// parentIdx is the index of the enclosing context in the processor's
	// stack at push time, or -1 for a top-level tag. Parent is a lookup by
	// index, never an owning reference.
	parentIdx int

	// config is the registration snapshot resolved at open time.
	config *TagConfig
}

// Content returns the body content accumulated so far.
func (c *TagContext) Content() string {
	return c.content.String()
}

// ContentLen returns the number of accumulated body bytes.
func (c *TagContext) ContentLen() int {
	return c.content.Len()
}

// HasParent reports whether this context is nested inside another open tag.
func (c *TagContext) HasParent() bool {
	return c.parentIdx >= 0
}

// PendingTag describes one still-open tag, as reported by PendingTags.
type PendingTag struct {
	// Name is the tag name.
	Name string `json:"name"`

	// StartTime is when the tag opened.
	StartTime time.Time `json:"start_time"`

	// Depth is the tag's position on the stack, 0 = outermost.
	Depth int `json:"depth"`
}
