// SPDX-License-Identifier: MIT

package staticstrings

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(strs ...*StaticString) *staticStrings {
	domains := make(map[Domain]map[Key]*StaticString)
	for _, str := range strs {
		if domains[str.Domain] == nil {
			domains[str.Domain] = make(map[Key]*StaticString)
		}
		domains[str.Domain][str.Key] = str
	}

	return &staticStrings{cfg: new(config), mx: new(sync.RWMutex), domains: domains}
}

func TestGetTranslationMemoryHit(t *testing.T) {
	t.Parallel()

	expected := &StaticString{Domain: "default", Key: "welcome", SingularTranslation: "Welcome!"}
	cl := newTestClient(expected)

	str, err := cl.GetTranslation(t.Context(), "default", "welcome")
	require.NoError(t, err)
	assert.Equal(t, expected, str)

	// An empty domain falls back to the default one.
	str, err = cl.GetTranslation(t.Context(), "", "welcome")
	require.NoError(t, err)
	assert.Equal(t, expected, str)
}

func TestTranslateStringPluralSelection(t *testing.T) {
	t.Parallel()

	cl := newTestClient(&StaticString{
		Domain:              "default",
		Key:                 "messages",
		SingularTranslation: "%v new message",
		PluralTranslation:   "%v new messages",
	})

	tests := []struct {
		count    string
		expected string
	}{
		{"0", "0 new messages"},
		{"0.5", "0.5 new message"},
		{"1", "1 new message"},
		{"2", "2 new messages"},
		{"17", "17 new messages"},
		{"many", "many new message"},
	}
	for _, test := range tests {
		translated, err := cl.TranslateString(t.Context(), "default", "messages", test.count)
		require.NoError(t, err)
		assert.Equal(t, test.expected, translated)
	}
}

func TestTranslateStringWithoutPluralBodyStaysSingular(t *testing.T) {
	t.Parallel()

	cl := newTestClient(&StaticString{Domain: "default", Key: "items", SingularTranslation: "%v item(s)"})
	translated, err := cl.TranslateString(t.Context(), "default", "items", "5")
	require.NoError(t, err)
	assert.Equal(t, "5 item(s)", translated)
}

func TestTranslateStringWithoutArgs(t *testing.T) {
	t.Parallel()

	cl := newTestClient(&StaticString{Domain: "default", Key: "welcome", SingularTranslation: "Welcome!"})
	translated, err := cl.TranslateString(t.Context(), "default", "welcome")
	require.NoError(t, err)
	assert.Equal(t, "Welcome!", translated)
}

func TestDomainsSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	cl := newTestClient(&StaticString{Domain: "default", Key: "welcome", SingularTranslation: "Welcome!"})
	snapshot, err := cl.Domains(t.Context())
	require.NoError(t, err)
	require.Len(t, snapshot, 1)

	delete(snapshot["default"], "welcome")
	str, gErr := cl.GetTranslation(t.Context(), "default", "welcome")
	require.NoError(t, gErr)
	assert.NotNil(t, str)
}

func TestIsPlural(t *testing.T) {
	t.Parallel()

	assert.False(t, isPlural(nil))
	assert.False(t, isPlural([]string{"1"}))
	assert.False(t, isPlural([]string{"0.9"}))
	assert.False(t, isPlural([]string{"something"}))
	assert.True(t, isPlural([]string{"0"}))
	assert.True(t, isPlural([]string{"2", "ignored"}))
	assert.True(t, isPlural([]string{" 3 "}))
}
