package fluffytag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifestYAML = `
tags:
  - name: artifact
    handler: save
    stream_content: true
    allows_nested_of_same_type: false
  - name: thinking
    handler: discard
    process_nested: false
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(testManifestYAML))
	require.NoError(t, err)
	require.Len(t, m.Tags, 2)

	assert.Equal(t, "artifact", m.Tags[0].Name)
	assert.Equal(t, "save", m.Tags[0].Handler)
	require.NotNil(t, m.Tags[0].StreamContent)
	assert.True(t, *m.Tags[0].StreamContent)
	assert.False(t, m.Tags[0].AllowsNestedOfSameType)

	assert.Equal(t, "thinking", m.Tags[1].Name)
	assert.Nil(t, m.Tags[1].StreamContent)
	require.NotNil(t, m.Tags[1].ProcessNested)
	assert.False(t, *m.Tags[1].ProcessNested)
}

func TestParseManifest_Invalid(t *testing.T) {
	_, err := ParseManifest([]byte("tags: [no"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgManifestInvalid)

	_, err = ParseManifest([]byte("tags: []"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgManifestNoTags)

	_, err = ParseManifest([]byte("tags:\n  - handler: save\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgEmptyTagName)
}

func TestParseManifestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testManifestYAML), 0o644))

	m, err := ParseManifestFile(path)
	require.NoError(t, err)
	assert.Len(t, m.Tags, 2)

	_, err = ParseManifestFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgManifestRead)
}

func TestLoadManifest(t *testing.T) {
	c := &collector{}
	p := NewProcessor(WithErrorHandler(c.errorHandler))

	handlers := HandlerSet{
		"save":    c.handler("artifact"),
		"discard": func(Attributes, string) error { return nil },
	}
	require.NoError(t, p.LoadManifest([]byte(testManifestYAML), handlers))

	assert.True(t, p.HasHandler("artifact"))
	assert.True(t, p.HasHandler("thinking"))

	p.ProcessString(`<artifact id="a1">content</artifact>`)
	require.Len(t, c.calls, 1)
	assert.Equal(t, "content", c.calls[0].Content)
}

func TestLoadManifest_UnknownHandler(t *testing.T) {
	p := NewProcessor()

	err := p.LoadManifest([]byte(testManifestYAML), HandlerSet{
		"save": func(Attributes, string) error { return nil },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgManifestNoHandler)
	assert.Equal(t, "thinking", errMetadata(t, err, MetaKeyTag))
	assert.Equal(t, "discard", errMetadata(t, err, MetaKeyHandler))

	// Registration stops at the failure; earlier tags stay registered.
	assert.True(t, p.HasHandler("artifact"))
	assert.False(t, p.HasHandler("thinking"))
}

func TestLoadManifestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testManifestYAML), 0o644))

	p := NewProcessor()
	handlers := HandlerSet{
		"save":    func(Attributes, string) error { return nil },
		"discard": func(Attributes, string) error { return nil },
	}
	require.NoError(t, p.LoadManifestFile(path, handlers))
	assert.True(t, p.HasHandler("artifact"))
}
