package internal

import (
	"strings"
	"unicode"
)

// TokenKind discriminates the three tag token shapes.
type TokenKind int

const (
	// TokenOpening is `<name attrs>`
	TokenOpening TokenKind = iota
	// TokenClosing is `</name>`
	TokenClosing
	// TokenSelfClosing is `<name attrs/>`
	TokenSelfClosing
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenOpening:
		return "opening"
	case TokenClosing:
		return "closing"
	case TokenSelfClosing:
		return "self-closing"
	default:
		return "unknown"
	}
}

// TagToken is a classified tag token.
type TagToken struct {
	Kind       TokenKind
	Name       string
	Attributes map[string]string
}

// ClassifyToken classifies a complete raw tag token (trimmed, including the
// surrounding angle brackets) and parses its attributes. Closing tags never
// carry attributes; any text after the name of a closing tag is ignored.
func ClassifyToken(raw string) TagToken {
	if strings.HasPrefix(raw, StrClosingTagPrefix) {
		name := strings.TrimSpace(raw[len(StrClosingTagPrefix) : len(raw)-1])
		return TagToken{Kind: TokenClosing, Name: name, Attributes: map[string]string{}}
	}

	if strings.HasSuffix(raw, StrSelfClosingEnd) {
		inner := strings.TrimSpace(raw[1 : len(raw)-len(StrSelfClosingEnd)])
		name, attrText := splitNameAttrs(inner)
		return TagToken{Kind: TokenSelfClosing, Name: name, Attributes: ParseAttributes(attrText)}
	}

	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	name, attrText := splitNameAttrs(inner)
	return TagToken{Kind: TokenOpening, Name: name, Attributes: ParseAttributes(attrText)}
}

// splitNameAttrs splits the inner tag text into the tag name (first
// whitespace-delimited word) and the remaining attribute text.
func splitNameAttrs(inner string) (string, string) {
	idx := strings.IndexFunc(inner, unicode.IsSpace)
	if idx < 0 {
		return inner, ""
	}
	return inner[:idx], strings.TrimSpace(inner[idx+1:])
}
