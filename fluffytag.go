// Package fluffytag provides an incremental processor for XML-like tags
// embedded in free-form text arriving one token at a time, such as the
// streamed output of an LLM.
//
// The processor recognizes tag boundaries across arbitrary chunk splits,
// tracks nesting, extracts attributes, and routes tag bodies and untagged
// prose to registered handlers. Content that looks like JSON is passed
// through untouched: angle brackets and quotes inside brace-delimited
// values never trigger tag detection.
//
// # Basic Usage
//
// Register handlers, then feed tokens as they arrive:
//
//	p := fluffytag.NewProcessor()
//	p.MustRegisterHandler("artifact", func(attrs fluffytag.Attributes, content string) error {
//	    fmt.Println("artifact", attrs["id"], len(content))
//	    return nil
//	})
//	p.SetUntaggedContentHandler(func(text string) error {
//	    fmt.Println("prose:", text)
//	    return nil
//	})
//
//	for token := range llmTokens {
//	    p.ProcessToken(token)
//	}
//	p.Flush()
//
// # Tag Syntax
//
// Three token shapes are recognized:
//
//	<name key="value">...</name>
//	<name key='value' other="x"/>
//	</name>
//
// Attribute values may use single or double quotes; text between the tag
// name and the closing bracket that does not match name="value" is ignored.
//
// # Streaming Callbacks
//
// A tag can receive its body byte by byte while it is still open, which is
// what makes progressive rendering of model output possible:
//
//	p.MustRegisterHandler("code", codeHandler,
//	    fluffytag.WithStreamingCallback(func(ch byte, attrs fluffytag.Attributes) error {
//	        term.Write([]byte{ch})
//	        return nil
//	    }))
//
// # Error Handling
//
// Structural errors (mismatched or unexpected closing tags, forbidden
// self-nesting) and failures raised by user callbacks are funneled through a
// single error boundary. Configure one with WithErrorHandler; without one,
// errors are logged through the injected zap logger and the stream keeps
// going. Processing is never aborted mid-stream.
//
// # Artifact Capture
//
// The companion Recorder persists completed tags into pluggable storage
// backends (memory, filesystem, PostgreSQL):
//
//	store := fluffytag.NewMemoryStorage()
//	rec := fluffytag.NewRecorder(p, store, fluffytag.RecorderConfig{Tags: []string{"artifact"}})
//	_ = rec
package fluffytag
