package fluffytag

// Default processor settings
const (
	// DefaultAutoProcessThreshold is the untagged-buffer size above which
	// buffered prose is flushed to the untagged-content handler.
	DefaultAutoProcessThreshold = 20

	// ContentPreviewLength caps the content excerpt attached to handler
	// failure errors.
	ContentPreviewLength = 100
)

// Log message constants - ALL log messages must be constants (NO MAGIC STRINGS)
const (
	LogMsgProcessorCreated   = "processor created"
	LogMsgProcessorReset     = "processor reset"
	LogMsgHandlerRegistered  = "registered handler for tag"
	LogMsgUntaggedHandlerSet = "set untagged content handler"
	LogMsgUnregisteredTag    = "unregistered tag type"
	LogMsgTagStarted         = "started tag"
	LogMsgTagCompleted       = "completed tag"
	LogMsgSelfClosingTag     = "processing self-closing tag"
	LogMsgUntaggedProcessed  = "processed untagged content"
	LogMsgUnclosedTags       = "unclosed tags remain in stack"
	LogMsgProcessingError    = "tag processing error"
)

// Log field constants
const (
	LogFieldTag     = "tag"
	LogFieldTags    = "tags"
	LogFieldChars   = "chars"
	LogFieldError   = "error"
	LogFieldCount   = "count"
	LogFieldBackend = "backend"
)

// Metadata keys attached to processing errors
const (
	MetaKeyTag            = "tag"
	MetaKeyReason         = "reason"
	MetaKeyExpected       = "expected"
	MetaKeyReceived       = "received"
	MetaKeyAttributes     = "attributes"
	MetaKeyContentPreview = "content_preview"
	MetaKeyChar           = "char"
	MetaKeyThreshold      = "threshold"
)

// Structural error reasons carried under MetaKeyReason
const (
	ReasonNestedTagViolation   = "nested_tag_violation"
	ReasonUnexpectedClosingTag = "unexpected_closing_tag"
	ReasonMismatchedClosingTag = "mismatched_closing_tag"
)

// Callback site names carried under MetaKeyReason on handler failures
const (
	SiteHandler         = "handler"
	SiteStreaming       = "streaming_callback"
	SiteTagStart        = "on_tag_start"
	SiteTagComplete     = "on_tag_complete"
	SiteUntaggedHandler = "untagged_content_handler"
)
