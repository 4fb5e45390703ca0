package mediawiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageExtractRequiresExactlyOneRef(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)

	// Neither field nor both fields may be set; the call must fail
	// before any network activity (the endpoint is unreachable).
	_, err := client.PageExtract(context.Background(), "http://127.0.0.1:0", PageRef{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = client.PageExtract(context.Background(), "http://127.0.0.1:0", PageRef{PageID: 1, Title: "Alpha"})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPageExtractByPageID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "extracts", q.Get("prop"))
		assert.Equal(t, "1", q.Get("explaintext"))
		assert.Equal(t, "1", q.Get("exlimit"))
		assert.Equal(t, "42", q.Get("pageids"))
		w.Write([]byte(`{"query":{"pages":{"42":{"pageid":42,"title":"Alpha","extract":"Hello world."}}}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := newTestClient(t)
	ext, err := client.PageExtract(context.Background(), srv.URL, PageRef{PageID: 42})
	require.NoError(t, err)
	require.NotNil(t, ext)
	require.EqualValues(t, 42, ext.PageID)
	require.Equal(t, "Alpha", ext.Title)
	require.Equal(t, "Hello world.", ext.Text)
}

func TestPageExtractByTitle(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Alpha", r.URL.Query().Get("titles"))
		assert.Empty(t, r.URL.Query().Get("pageids"))
		w.Write([]byte(`{"query":{"pages":{"42":{"pageid":42,"title":"Alpha","extract":"Hello."}}}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := newTestClient(t)
	ext, err := client.PageExtract(context.Background(), srv.URL, PageRef{Title: "Alpha"})
	require.NoError(t, err)
	require.NotNil(t, ext)
	require.Equal(t, "Alpha", ext.Title)
}

func TestPageExtractMissingPage(t *testing.T) {
	t.Parallel()

	// Missing pages come back keyed by a negative synthetic id. That is
	// absence, not an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"query":{"pages":{"-1":{"title":"Nonexistent","missing":""}}}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := newTestClient(t)
	ext, err := client.PageExtract(context.Background(), srv.URL, PageRef{Title: "Nonexistent"})
	require.NoError(t, err)
	require.Nil(t, ext)
}

func TestPageExtractPropagatesExhaustion(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(t)
	_, err := client.PageExtract(context.Background(), srv.URL, PageRef{PageID: 7})

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.EqualValues(t, 3, hits.Load())
}
