package fluffytag

import (
	"strings"
	"time"

	"github.com/itsatony/go-fluffytag/internal"
	"go.uber.org/zap"
)

// Processor is an incremental tag processor for one logical text stream.
//
// A Processor is single-threaded by design: each Process* call runs to
// completion before returning and callbacks execute inline on the caller's
// goroutine. Concurrent feeding from multiple goroutines is unsupported;
// use one Processor per stream or serialize externally. Registrations are
// read-only during scanning and survive Reset.
type Processor struct {
	configs         map[string]*TagConfig
	stack           []*TagContext
	untagged        strings.Builder
	untaggedHandler UntaggedFunc
	scanner         *internal.Scanner
	config          *processorConfig
	logger          *zap.Logger
}

// NewProcessor creates a processor with the given options. Construction has
// no global side effects; diagnostics go to the injected logger only.
func NewProcessor(opts ...Option) *Processor {
	config := defaultProcessorConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Processor{
		configs: make(map[string]*TagConfig),
		config:  config,
		logger:  logger,
	}
	p.scanner = internal.NewScanner(&scannerSink{p: p}, logger)
	logger.Debug(LogMsgProcessorCreated)
	return p
}

// RegisterHandler registers a handler for a tag name. A prior registration
// for the same name is overwritten; tags already open keep the config they
// were opened with. The tag name must be non-empty and the handler non-nil.
func (p *Processor) RegisterHandler(tagName string, handler HandlerFunc, opts ...TagOption) error {
	if tagName == "" {
		return NewEmptyTagNameError()
	}
	if handler == nil {
		return NewNilHandlerError(tagName)
	}

	config := &TagConfig{
		Handler:       handler,
		StreamContent: true,
		ProcessNested: true,
	}
	for _, opt := range opts {
		opt(config)
	}

	p.configs[tagName] = config
	p.logger.Debug(LogMsgHandlerRegistered, zap.String(LogFieldTag, tagName))
	return nil
}

// MustRegisterHandler registers a handler and panics on a registration
// error. Returns the processor for chaining.
func (p *Processor) MustRegisterHandler(tagName string, handler HandlerFunc, opts ...TagOption) *Processor {
	if err := p.RegisterHandler(tagName, handler, opts...); err != nil {
		panic(err)
	}
	return p
}

// SetUntaggedContentHandler sets the handler for prose outside any tag.
// Pass nil to disable. Returns the processor for chaining.
func (p *Processor) SetUntaggedContentHandler(handler UntaggedFunc) *Processor {
	p.untaggedHandler = handler
	p.logger.Debug(LogMsgUntaggedHandlerSet)
	return p
}

// SetAutoProcessThreshold sets the untagged-buffer size above which buffered
// prose is flushed. The threshold must be a positive integer.
func (p *Processor) SetAutoProcessThreshold(threshold int) error {
	if threshold < 1 {
		return NewInvalidThresholdError(threshold)
	}
	p.config.autoProcessThreshold = threshold
	return nil
}

// ProcessToken feeds one token of streamed content. Empty tokens are a
// no-op, as are whitespace-only tokens while the processor is idle (no open
// tag, no partial tag token, nothing buffered) — leading whitespace never
// survives untagged trimming, so dropping it keeps handler invocations
// independent of how the stream is chunked. Structural and handler errors
// are routed to the error boundary; processing of subsequent tokens is
// never aborted.
func (p *Processor) ProcessToken(token string) *Processor {
	if token == "" {
		return p
	}
	if strings.TrimSpace(token) == "" && p.idle() {
		return p
	}
	p.scanner.Scan(token)
	return p
}

// idle reports whether the processor holds no scan state at all.
func (p *Processor) idle() bool {
	return len(p.stack) == 0 && !p.scanner.InTag() && p.untagged.Len() == 0
}

// ProcessTokens feeds a sequence of tokens in order.
func (p *Processor) ProcessTokens(tokens []string) *Processor {
	for _, token := range tokens {
		p.ProcessToken(token)
	}
	return p
}

// ProcessString feeds a complete string as one token.
func (p *Processor) ProcessString(content string) *Processor {
	return p.ProcessToken(content)
}

// Reset clears all scanning state (stack, buffers, quote/depth flags) while
// preserving registrations, so the processor can be reused for a fresh
// stream.
func (p *Processor) Reset() *Processor {
	p.stack = nil
	p.untagged.Reset()
	p.scanner.Reset()
	p.logger.Debug(LogMsgProcessorReset)
	return p
}

// Flush force-delivers any buffered untagged content and reports tags still
// open, without closing them or invoking their handlers.
func (p *Processor) Flush() *Processor {
	p.flushUntagged()

	if len(p.stack) > 0 {
		names := make([]string, len(p.stack))
		for i, ctx := range p.stack {
			names[i] = ctx.Name
		}
		p.logger.Warn(LogMsgUnclosedTags, zap.Strings(LogFieldTags, names))
	}
	return p
}

// StackDepth returns the number of currently-open tags.
func (p *Processor) StackDepth() int {
	return len(p.stack)
}

// IsInsideTag reports whether a tag with the given name is currently open
// at any depth.
func (p *Processor) IsInsideTag(tagName string) bool {
	for _, ctx := range p.stack {
		if ctx.Name == tagName {
			return true
		}
	}
	return false
}

// PendingTags returns information about all currently-open tags, outermost
// first.
func (p *Processor) PendingTags() []PendingTag {
	pending := make([]PendingTag, len(p.stack))
	for i, ctx := range p.stack {
		pending[i] = PendingTag{Name: ctx.Name, StartTime: ctx.StartTime, Depth: i}
	}
	return pending
}

// HasHandler reports whether a handler is registered for the tag name.
func (p *Processor) HasHandler(tagName string) bool {
	_, ok := p.configs[tagName]
	return ok
}

// raise routes a processing error through the single error boundary:
// the configured error handler if present, otherwise the logger. Scanning
// state is left exactly as it was when the error occurred.
func (p *Processor) raise(err error) {
	if p.config.errorHandler != nil {
		p.config.errorHandler(err)
		return
	}
	p.logger.Error(LogMsgProcessingError, zap.Error(err))
}

// flushUntagged delivers trimmed buffered prose to the untagged handler and
// clears the buffer. Whitespace-only buffers are dropped silently.
func (p *Processor) flushUntagged() {
	if p.untagged.Len() == 0 {
		return
	}
	content := strings.TrimSpace(p.untagged.String())
	p.untagged.Reset()

	if content == "" || p.untaggedHandler == nil {
		return
	}
	if err := p.dispatchUntagged(content); err != nil {
		p.raise(err)
		return
	}
	p.logger.Debug(LogMsgUntaggedProcessed, zap.Int(LogFieldChars, len(content)))
}

// handleTagToken classifies a completed raw tag token and drives the stack
// machine.
func (p *Processor) handleTagToken(raw string) {
	token := internal.ClassifyToken(raw)

	switch token.Kind {
	case internal.TokenClosing:
		p.handleClosingTag(token.Name)
	case internal.TokenSelfClosing:
		p.handleSelfClosingTag(token.Name, Attributes(token.Attributes))
	default:
		p.handleOpeningTag(token.Name, Attributes(token.Attributes))
	}
}

// handleOpeningTag pushes a context for a registered tag. Unregistered tags
// are dropped with a diagnostic so their body flows through as enclosing
// content.
func (p *Processor) handleOpeningTag(tagName string, attrs Attributes) {
	config, ok := p.configs[tagName]
	if !ok {
		p.logger.Warn(LogMsgUnregisteredTag, zap.String(LogFieldTag, tagName))
		return
	}

	if !config.AllowsNestedOfSameType && p.IsInsideTag(tagName) {
		p.raise(NewNestedTagError(tagName, attrs))
		return
	}

	if config.OnTagStart != nil {
		if err := p.dispatchTagStart(config, tagName, attrs); err != nil {
			p.raise(err)
			return
		}
	}

	p.stack = append(p.stack, &TagContext{
		Name:       tagName,
		Attributes: attrs,
		StartTime:  time.Now(),
		parentIdx:  len(p.stack) - 1,
		config:     config,
	})
	p.logger.Debug(LogMsgTagStarted, zap.String(LogFieldTag, tagName))
}

// handleSelfClosingTag runs the full lifecycle with empty content, without
// pushing a context.
func (p *Processor) handleSelfClosingTag(tagName string, attrs Attributes) {
	config, ok := p.configs[tagName]
	if !ok {
		p.logger.Warn(LogMsgUnregisteredTag, zap.String(LogFieldTag, tagName))
		return
	}

	p.logger.Debug(LogMsgSelfClosingTag, zap.String(LogFieldTag, tagName))

	if config.OnTagStart != nil {
		if err := p.dispatchTagStart(config, tagName, attrs); err != nil {
			p.raise(err)
			return
		}
	}

	if err := p.dispatchHandler(config, tagName, attrs, ""); err != nil {
		p.raise(err)
		return
	}

	if config.OnTagComplete != nil {
		if err := p.dispatchTagComplete(config, tagName, attrs, ""); err != nil {
			p.raise(err)
		}
	}
}

// handleClosingTag pops the matching context and dispatches its handler.
// A mismatch leaves the stack unmodified; no partial recovery is attempted.
func (p *Processor) handleClosingTag(tagName string) {
	if len(p.stack) == 0 {
		p.raise(NewUnexpectedClosingTagError(tagName))
		return
	}

	top := p.stack[len(p.stack)-1]
	if top.Name != tagName {
		p.raise(NewMismatchedClosingTagError(top.Name, tagName))
		return
	}

	p.stack = p.stack[:len(p.stack)-1]
	content := top.Content()
	p.logger.Debug(LogMsgTagCompleted, zap.String(LogFieldTag, tagName))

	if err := p.dispatchHandler(top.config, tagName, top.Attributes, content); err != nil {
		p.raise(err)
		return
	}

	if top.config.OnTagComplete != nil {
		if err := p.dispatchTagComplete(top.config, tagName, top.Attributes, content); err != nil {
			p.raise(err)
		}
	}
}

// scannerSink adapts the Processor to the internal scanner's event interface.
type scannerSink struct {
	p *Processor
}

func (s *scannerSink) TagToken(raw string) {
	s.p.handleTagToken(raw)
}

func (s *scannerSink) BodyByte(ch byte) {
	p := s.p
	top := p.stack[len(p.stack)-1]
	top.content.WriteByte(ch)

	if top.config.StreamingCallback != nil {
		if err := p.dispatchStreaming(top.config, top.Name, top.Attributes, ch); err != nil {
			p.raise(err)
		}
	}
}

func (s *scannerSink) UntaggedByte(ch byte) {
	p := s.p
	p.untagged.WriteByte(ch)

	if p.config.autoProcessUntagged && p.untagged.Len() > p.config.autoProcessThreshold {
		p.flushUntagged()
	}
}

func (s *scannerSink) FlushUntagged() {
	s.p.flushUntagged()
}

func (s *scannerSink) HasOpenTag() bool {
	return len(s.p.stack) > 0
}
