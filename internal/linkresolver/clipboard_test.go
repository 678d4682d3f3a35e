package linkresolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClipboardURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		kind Kind
	}{
		{name: "https", text: "https://example.com", want: "https://example.com"},
		{name: "http with path", text: "http://example.com/a/b?c=d#e", want: "http://example.com/a/b?c=d#e"},
		{name: "trimmed", text: "\n\t https://example.com \n", want: "https://example.com"},
		{name: "uppercase scheme", text: "HTTPS://example.com", want: "HTTPS://example.com"},
		{name: "empty", text: "", kind: KindEmptyClipboard},
		{name: "whitespace", text: "   ", kind: KindEmptyClipboard},
		{name: "ftp", text: "ftp://x", kind: KindUnsupportedScheme},
		{name: "mailto", text: "mailto:someone@example.com", kind: KindUnsupportedScheme},
		{name: "file", text: "file:///etc/hosts", kind: KindUnsupportedScheme},
		{name: "plain text", text: "not a url", kind: KindInvalidURL},
		{name: "bare filename", text: "notes.txt", kind: KindInvalidURL},
		{name: "surrounding text", text: "check this: https://foo.bar", kind: KindInvalidURL},
		{name: "no host", text: "https://", kind: KindInvalidURL},
		{name: "space in host", text: "https://foo bar.com", kind: KindInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateClipboardURL(tt.text)
			if tt.kind == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.ErrorIs(t, err, ErrResolution)
		})
	}
}

func TestValidateClipboardURLMessagesAreDistinct(t *testing.T) {
	_, parseErr := ValidateClipboardURL("not a url")
	_, schemeErr := ValidateClipboardURL("ftp://x")
	require.Error(t, parseErr)
	require.Error(t, schemeErr)
	assert.NotEqual(t, parseErr.Error(), schemeErr.Error())
}
