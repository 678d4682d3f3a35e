package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/tablink/internal/linkresolver"
)

func writeScripts(t *testing.T, cfgPath, body string) {
	t.Helper()
	path := filepath.Join(filepath.Dir(cfgPath), "scripts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

type createdBookmark struct {
	Link       string                 `json:"link"`
	Title      string                 `json:"title"`
	Tags       []string               `json:"tags"`
	Collection map[string]interface{} `json:"collection"`
}

func raindropServer(t *testing.T, got *createdBookmark) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"result":false,"errorMessage":"Invalid token"}`))
			return
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"result": true,
			"item": map[string]interface{}{
				"_id":   int64(4242),
				"link":  got.Link,
				"title": got.Title,
				"tags":  got.Tags,
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSaveResolvedLink(t *testing.T) {
	var got createdBookmark
	srv := raindropServer(t, &got)
	cfgPath := setupCLI(t, "[raindrop]\ntoken = \"secret\"\ntags = [\"later\"]\nbase_url = \""+srv.URL+"\"\n", &cliEnv{
		platform: "linux",
		deps: linkresolver.Dependencies{
			Extension: fakeTabs{tabs: []linkresolver.Tab{{Active: true, URL: "https://go.dev/blog"}}},
		},
	})

	out, err := runCLI(t, cfgPath, "--json", "save", "--tag", "go", "--title", "Go blog")
	require.NoError(t, err)

	data := dataMap(t, decodeResponse(t, out))
	assert.Equal(t, float64(4242), data["id"])
	assert.Equal(t, "browser", data["source"])
	assert.Equal(t, float64(-1), data["collection"])

	assert.Equal(t, "https://go.dev/blog", got.Link)
	assert.Equal(t, "Go blog", got.Title)
	assert.Equal(t, []string{"later", "go"}, got.Tags)
	assert.Equal(t, float64(-1), got.Collection["$id"])
}

func TestSaveExplicitLinkAndCollection(t *testing.T) {
	var got createdBookmark
	srv := raindropServer(t, &got)
	cfgPath := setupCLI(t, "[raindrop]\ntoken = \"secret\"\nbase_url = \""+srv.URL+"\"\n", nil)

	out, err := runCLI(t, cfgPath, "--json", "save", "--link", "https://example.com", "--collection", "7")
	require.NoError(t, err)

	data := dataMap(t, decodeResponse(t, out))
	assert.Equal(t, "flag", data["source"])
	assert.Equal(t, float64(7), got.Collection["$id"])
}

func TestSaveErrors(t *testing.T) {
	srv := raindropServer(t, &createdBookmark{})

	tests := []struct {
		name   string
		config string
		args   []string
		code   string
	}{
		{
			name: "missing token",
			args: []string{"--link", "https://example.com"},
			code: ErrMissingToken,
		},
		{
			name:   "bad token",
			config: "[raindrop]\ntoken = \"wrong\"\nbase_url = \"" + srv.URL + "\"\n",
			args:   []string{"--link", "https://example.com"},
			code:   ErrRaindropError,
		},
		{
			name:   "link without scheme",
			config: "[raindrop]\ntoken = \"secret\"\nbase_url = \"" + srv.URL + "\"\n",
			args:   []string{"--link", "example.com"},
			code:   ErrInvalidInput,
		},
		{
			name:   "link with other scheme",
			config: "[raindrop]\ntoken = \"secret\"\nbase_url = \"" + srv.URL + "\"\n",
			args:   []string{"--link", "mailto:me@example.com"},
			code:   ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := setupCLI(t, tt.config, nil)

			out, err := runCLI(t, cfgPath, append([]string{"--json", "save"}, tt.args...)...)
			require.Error(t, err)
			resp := decodeResponse(t, out)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
