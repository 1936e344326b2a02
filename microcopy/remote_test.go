// SPDX-License-Identifier: MIT

package microcopy

import (
	"net/http"
	"net/http/httptest"
	"testing"
	stdlibtime "time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslationServerFetchRecords(t *testing.T) {
	t.Parallel()

	var gotPath, gotAccessKey string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccessKey = r.Header.Get("access-key")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode([]*Record{{Key: "cta", Language: "en", Translation: "remote"}}))
	}))
	defer srv.Close()

	remote := newTranslationServer(srv.URL+"/api/microcopy/{key}", "sesame", 5*stdlibtime.Second)
	records, err := remote.fetchRecords(t.Context(), "cta", []string{"count", "variant"}, []Language{"en", "nl"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "remote", records[0].Translation)
	assert.Equal(t, "/api/microcopy/cta", gotPath)
	assert.Equal(t, "sesame", gotAccessKey)
	assert.Equal(t, []string{"count", "variant"}, gotQuery["parameters"])
	assert.Equal(t, []string{"en", "nl"}, gotQuery["locales"])
}

func TestTranslationServerEscapesKey(t *testing.T) {
	t.Parallel()

	var gotRawPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	remote := newTranslationServer(srv.URL+"/api/microcopy/{key}", "sesame", 5*stdlibtime.Second)
	records, err := remote.fetchRecords(t.Context(), "with/slash", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, "/api/microcopy/with%2Fslash", gotRawPath)
}

func TestTranslationServerRejectsNonJSONResponses(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>login page</html>"))
	}))
	defer srv.Close()

	remote := newTranslationServer(srv.URL+"/api/microcopy/{key}", "sesame", 5*stdlibtime.Second)
	records, err := remote.fetchRecords(t.Context(), "cta", nil, nil)
	require.ErrorIs(t, err, ErrRemoteFetch)
	assert.Nil(t, records)
}

func TestTranslationServerPropagatesErrorStatuses(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	remote := newTranslationServer(srv.URL+"/api/microcopy/{key}", "wrong", 5*stdlibtime.Second)
	records, err := remote.fetchRecords(t.Context(), "cta", nil, nil)
	require.ErrorIs(t, err, ErrRemoteFetch)
	assert.Nil(t, records)
}
