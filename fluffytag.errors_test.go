package fluffytag

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorReason(t *testing.T) {
	assert.Equal(t, ReasonNestedTagViolation, ErrorReason(NewNestedTagError("a", nil)))
	assert.Equal(t, ReasonUnexpectedClosingTag, ErrorReason(NewUnexpectedClosingTagError("a")))
	assert.Equal(t, ReasonMismatchedClosingTag, ErrorReason(NewMismatchedClosingTagError("a", "b")))
	assert.Equal(t, SiteHandler,
		ErrorReason(NewHandlerError(SiteHandler, "a", nil, "", errors.New("x"))))

	// Errors outside the package's error model carry no reason.
	assert.Equal(t, "", ErrorReason(errors.New("plain")))
	assert.Equal(t, "", ErrorReason(nil))
}

func TestNewHandlerError_WrapsCause(t *testing.T) {
	cause := errors.New("underlying failure")
	err := NewHandlerError(SiteTagComplete, "code", Attributes{"id": "1"}, "preview", cause)

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), ErrMsgHandlerFailed)
	assert.Equal(t, "code", errMetadata(t, err, MetaKeyTag))
	assert.Equal(t, `id="1"`, errMetadata(t, err, MetaKeyAttributes))
	assert.Equal(t, "preview", errMetadata(t, err, MetaKeyContentPreview))
}

func TestContentPreview_Truncation(t *testing.T) {
	short := "short content"
	assert.Equal(t, short, contentPreview(short))

	long := strings.Repeat("x", ContentPreviewLength+50)
	preview := contentPreview(long)
	assert.Len(t, preview, ContentPreviewLength+3)
	assert.True(t, strings.HasSuffix(preview, "..."))
}

func TestPanicError(t *testing.T) {
	orig := errors.New("already an error")
	assert.Equal(t, orig, panicError(orig))

	err := panicError("string panic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string panic")
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Message: ErrMsgStorageClosed, Name: "filesystem", Cause: cause}

	assert.Equal(t, "storage is closed: filesystem: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := &StorageError{Message: ErrMsgArtifactNotFound}
	assert.Equal(t, ErrMsgArtifactNotFound, bare.Error())
	assert.Nil(t, bare.Unwrap())
}
