package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyToken(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind TokenKind
		wantName string
		wantAttr map[string]string
	}{
		{
			name:     "opening without attributes",
			raw:      "<artifact>",
			wantKind: TokenOpening,
			wantName: "artifact",
			wantAttr: map[string]string{},
		},
		{
			name:     "opening with attributes",
			raw:      `<artifact id="a1" type="code">`,
			wantKind: TokenOpening,
			wantName: "artifact",
			wantAttr: map[string]string{"id": "a1", "type": "code"},
		},
		{
			name:     "closing",
			raw:      "</artifact>",
			wantKind: TokenClosing,
			wantName: "artifact",
			wantAttr: map[string]string{},
		},
		{
			name:     "closing with surrounding whitespace",
			raw:      "</ artifact >",
			wantKind: TokenClosing,
			wantName: "artifact",
			wantAttr: map[string]string{},
		},
		{
			name:     "self-closing without attributes",
			raw:      "<br/>",
			wantKind: TokenSelfClosing,
			wantName: "br",
			wantAttr: map[string]string{},
		},
		{
			name:     "self-closing with attributes",
			raw:      `<status value="done" />`,
			wantKind: TokenSelfClosing,
			wantName: "status",
			wantAttr: map[string]string{"value": "done"},
		},
		{
			name:     "inner whitespace around name",
			raw:      "< artifact >",
			wantKind: TokenOpening,
			wantName: "artifact",
			wantAttr: map[string]string{},
		},
		{
			name:     "empty token",
			raw:      "<>",
			wantKind: TokenOpening,
			wantName: "",
			wantAttr: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := ClassifyToken(tt.raw)
			assert.Equal(t, tt.wantKind, token.Kind)
			assert.Equal(t, tt.wantName, token.Name)
			assert.Equal(t, tt.wantAttr, token.Attributes)
		})
	}
}

func TestTokenKind_String(t *testing.T) {
	assert.Equal(t, "opening", TokenOpening.String())
	assert.Equal(t, "closing", TokenClosing.String())
	assert.Equal(t, "self-closing", TokenSelfClosing.String())
}

func TestClassifyToken_AttributesNeverNil(t *testing.T) {
	token := ClassifyToken("</x>")
	require.NotNil(t, token.Attributes)
}
