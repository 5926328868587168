package fluffytag

import (
	"os"

	"github.com/itsatony/go-cuserr"
	"gopkg.in/yaml.v3"
)

// Manifest declares tag registrations in YAML, so an application can keep
// its tag vocabulary in configuration and bind handlers by name:
//
//	tags:
//	  - name: artifact
//	    handler: save_artifact
//	    stream_content: true
//	    allows_nested_of_same_type: false
//	  - name: thinking
//	    handler: discard
type Manifest struct {
	Tags []ManifestTag `yaml:"tags"`
}

// ManifestTag is one tag declaration in a manifest.
type ManifestTag struct {
	// Name is the tag name to register.
	Name string `yaml:"name"`

	// Handler is the key of the handler in the HandlerSet.
	Handler string `yaml:"handler"`

	// StreamContent mirrors TagConfig.StreamContent.
	StreamContent *bool `yaml:"stream_content,omitempty"`

	// ProcessNested mirrors TagConfig.ProcessNested (advisory).
	ProcessNested *bool `yaml:"process_nested,omitempty"`

	// AllowsNestedOfSameType mirrors TagConfig.AllowsNestedOfSameType.
	AllowsNestedOfSameType bool `yaml:"allows_nested_of_same_type,omitempty"`
}

// HandlerSet maps manifest handler keys to handler functions.
type HandlerSet map[string]HandlerFunc

// Manifest error message and code constants
const (
	ErrMsgManifestInvalid   = "manifest parsing failed"
	ErrMsgManifestNoTags    = "manifest declares no tags"
	ErrMsgManifestNoHandler = "manifest tag references an unknown handler"
	ErrMsgManifestRead      = "manifest file could not be read"

	ErrCodeManifest = "FLUFFYTAG_MANIFEST"

	MetaKeyHandler = "handler"
	MetaKeyPath    = "path"
)

// NewManifestError creates a manifest validation error.
func NewManifestError(msg string, cause error) error {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeManifest, msg)
	}
	return cuserr.NewValidationError(ErrCodeManifest, msg)
}

// NewManifestHandlerError creates an error for a tag bound to a handler key
// missing from the HandlerSet.
func NewManifestHandlerError(tagName, handlerKey string) error {
	return cuserr.NewValidationError(ErrCodeManifest, ErrMsgManifestNoHandler).
		WithMetadata(MetaKeyTag, tagName).
		WithMetadata(MetaKeyHandler, handlerKey)
}

// ParseManifest parses a YAML manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, NewManifestError(ErrMsgManifestInvalid, err)
	}
	if len(m.Tags) == 0 {
		return nil, NewManifestError(ErrMsgManifestNoTags, nil)
	}
	for _, tag := range m.Tags {
		if tag.Name == "" {
			return nil, NewEmptyTagNameError()
		}
	}
	return &m, nil
}

// ParseManifestFile reads and parses a YAML manifest file.
func ParseManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewManifestError(ErrMsgManifestRead, err)
	}
	return ParseManifest(data)
}

// LoadManifest parses a manifest and registers its tags on the processor,
// binding each declaration to a handler from the set. Registration stops at
// the first error; tags registered before the failure remain registered.
func (p *Processor) LoadManifest(data []byte, handlers HandlerSet) error {
	m, err := ParseManifest(data)
	if err != nil {
		return err
	}
	return p.applyManifest(m, handlers)
}

// LoadManifestFile is LoadManifest for a file path.
func (p *Processor) LoadManifestFile(path string, handlers HandlerSet) error {
	m, err := ParseManifestFile(path)
	if err != nil {
		return err
	}
	return p.applyManifest(m, handlers)
}

func (p *Processor) applyManifest(m *Manifest, handlers HandlerSet) error {
	for _, tag := range m.Tags {
		handler, ok := handlers[tag.Handler]
		if !ok {
			return NewManifestHandlerError(tag.Name, tag.Handler)
		}

		opts := []TagOption{
			WithAllowsNestedOfSameType(tag.AllowsNestedOfSameType),
		}
		if tag.StreamContent != nil {
			opts = append(opts, WithStreamContent(*tag.StreamContent))
		}
		if tag.ProcessNested != nil {
			opts = append(opts, WithProcessNested(*tag.ProcessNested))
		}

		if err := p.RegisterHandler(tag.Name, handler, opts...); err != nil {
			return err
		}
	}
	return nil
}
