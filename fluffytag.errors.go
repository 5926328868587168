package fluffytag

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Registration errors
	ErrMsgEmptyTagName     = "tag name cannot be empty"
	ErrMsgNilHandler       = "handler cannot be nil"
	ErrMsgInvalidThreshold = "auto-process threshold must be a positive integer"

	// Structural errors
	ErrMsgNestedTag         = "tag cannot be nested within itself"
	ErrMsgUnexpectedClosing = "closing tag found with no opening tags on the stack"
	ErrMsgMismatchedClosing = "mismatched closing tag"

	// Handler errors
	ErrMsgHandlerFailed = "tag callback failed"
)

// Error code constants for categorization
const (
	ErrCodeRegistration = "FLUFFYTAG_REGISTRATION"
	ErrCodeStructure    = "FLUFFYTAG_STRUCTURE"
	ErrCodeHandler      = "FLUFFYTAG_HANDLER"
)

// NewEmptyTagNameError creates a registration error for an empty tag name.
func NewEmptyTagNameError() error {
	return cuserr.NewValidationError(ErrCodeRegistration, ErrMsgEmptyTagName)
}

// NewNilHandlerError creates a registration error for a nil handler.
func NewNilHandlerError(tagName string) error {
	return cuserr.NewValidationError(ErrCodeRegistration, ErrMsgNilHandler).
		WithMetadata(MetaKeyTag, tagName)
}

// NewInvalidThresholdError creates a registration error for a non-positive
// auto-process threshold.
func NewInvalidThresholdError(threshold int) error {
	return cuserr.NewValidationError(ErrCodeRegistration, ErrMsgInvalidThreshold).
		WithMetadata(MetaKeyThreshold, strconv.Itoa(threshold))
}

// NewNestedTagError creates a structural error for a tag opened while an
// instance of the same tag is already on the stack.
func NewNestedTagError(tagName string, attrs Attributes) error {
	return cuserr.NewValidationError(ErrCodeStructure, ErrMsgNestedTag).
		WithMetadata(MetaKeyReason, ReasonNestedTagViolation).
		WithMetadata(MetaKeyTag, tagName).
		WithMetadata(MetaKeyAttributes, attrs.String())
}

// NewUnexpectedClosingTagError creates a structural error for a closing tag
// arriving on an empty stack.
func NewUnexpectedClosingTagError(tagName string) error {
	return cuserr.NewValidationError(ErrCodeStructure, ErrMsgUnexpectedClosing).
		WithMetadata(MetaKeyReason, ReasonUnexpectedClosingTag).
		WithMetadata(MetaKeyTag, tagName)
}

// NewMismatchedClosingTagError creates a structural error for a closing tag
// that does not match the innermost open tag. The stack is left untouched.
func NewMismatchedClosingTagError(expected, received string) error {
	return cuserr.NewValidationError(ErrCodeStructure, ErrMsgMismatchedClosing).
		WithMetadata(MetaKeyReason, ReasonMismatchedClosingTag).
		WithMetadata(MetaKeyExpected, expected).
		WithMetadata(MetaKeyReceived, received)
}

// NewHandlerError wraps a failure raised by user callback code. The site
// identifies which callback failed (handler, streaming, lifecycle, untagged)
// and the error carries the tag name, attributes, and a content preview so
// the raw user error never escapes uncontextualized.
func NewHandlerError(site string, tagName string, attrs Attributes, preview string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeHandler, ErrMsgHandlerFailed).
		WithMetadata(MetaKeyReason, site).
		WithMetadata(MetaKeyTag, tagName).
		WithMetadata(MetaKeyAttributes, attrs.String()).
		WithMetadata(MetaKeyContentPreview, preview)
}

// ErrorReason extracts the structural reason or callback site from a
// processing error, or "" when the error carries none.
func ErrorReason(err error) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	reason, _ := customErr.GetMetadata(MetaKeyReason)
	return reason
}

// contentPreview truncates content for error metadata.
func contentPreview(content string) string {
	if len(content) <= ContentPreviewLength {
		return content
	}
	return content[:ContentPreviewLength] + "..."
}

// panicError converts a recovered panic value into an error.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", v)
}
