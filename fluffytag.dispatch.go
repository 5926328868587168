package fluffytag

// The dispatcher wraps every user callback invocation so that a returned
// error or a panic becomes a uniform handler error carrying the tag name,
// attributes, and a content preview. User failures never escape raw and are
// never silently lost: every failure reaches the error boundary.

// safeInvoke runs fn, converting a returned error or a panic into a handler
// error for the given callback site.
func safeInvoke(site, tagName string, attrs Attributes, preview string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewHandlerError(site, tagName, attrs, preview, panicError(r))
		}
	}()

	if callErr := fn(); callErr != nil {
		return NewHandlerError(site, tagName, attrs, preview, callErr)
	}
	return nil
}

// dispatchHandler invokes a tag's main handler with its final content.
func (p *Processor) dispatchHandler(config *TagConfig, name string, attrs Attributes, content string) error {
	return safeInvoke(SiteHandler, name, attrs, contentPreview(content), func() error {
		return config.Handler(attrs, content)
	})
}

// dispatchStreaming invokes a tag's streaming callback with one body byte.
func (p *Processor) dispatchStreaming(config *TagConfig, name string, attrs Attributes, ch byte) error {
	return safeInvoke(SiteStreaming, name, attrs, string(ch), func() error {
		return config.StreamingCallback(ch, attrs)
	})
}

// dispatchTagStart invokes a tag's start callback.
func (p *Processor) dispatchTagStart(config *TagConfig, name string, attrs Attributes) error {
	return safeInvoke(SiteTagStart, name, attrs, "", func() error {
		return config.OnTagStart(name, attrs)
	})
}

// dispatchTagComplete invokes a tag's completion callback.
func (p *Processor) dispatchTagComplete(config *TagConfig, name string, attrs Attributes, content string) error {
	return safeInvoke(SiteTagComplete, name, attrs, contentPreview(content), func() error {
		return config.OnTagComplete(name, attrs, content)
	})
}

// dispatchUntagged invokes the untagged-content handler.
func (p *Processor) dispatchUntagged(content string) error {
	return safeInvoke(SiteUntaggedHandler, "", nil, contentPreview(content), func() error {
		return p.untaggedHandler(content)
	})
}
