package browserext

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	assert.True(t, New(srv.URL+"/", time.Second).Available(context.Background()))
	assert.False(t, New("", time.Second).Available(context.Background()))

	var nilClient *Client
	assert.False(t, nilClient.Available(context.Background()))
}

func TestAvailableUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	assert.False(t, New(url, 200*time.Millisecond).Available(context.Background()))
}

func TestTabs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tabs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"snapshot_id":"abc","tabs":[{"id":1,"active":false,"url":"https://a.example"},{"id":2,"active":true,"url":"https://b.example","title":"B"}]}`))
	}))
	defer srv.Close()

	tabs, err := New(srv.URL, time.Second).Tabs(context.Background())
	require.NoError(t, err)
	require.Len(t, tabs, 2)
	assert.True(t, tabs[1].Active)
	assert.Equal(t, "https://b.example", tabs[1].URL)
	assert.Equal(t, "B", tabs[1].Title)
}

func TestTabsErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(srv.URL, time.Second).Tabs(context.Background())
		assert.ErrorContains(t, err, "500")
	})

	t.Run("decode", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, time.Second).Tabs(context.Background())
		assert.ErrorContains(t, err, "decode")
	})
}
