// SPDX-License-Identifier: MIT

package microcopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyRenderFallsBackToKey(t *testing.T) {
	t.Parallel()

	mc := newTestClient(&fakeLocalStore{}, nil)
	assert.Equal(t, "missing", mc.New("missing", nil).Render(t.Context(), "en"))
}

func TestCopyRenderFallsBackToConfiguredFallback(t *testing.T) {
	t.Parallel()

	mc := newTestClient(&fakeLocalStore{}, nil)
	copyHandle := mc.New("missing", NamedParams(map[string]string{"fallback": "Save"}))
	assert.Equal(t, "Save", copyHandle.Render(t.Context(), "en"))
}

func TestCopyRenderPlainTranslation(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{{Key: "cta", Language: "en", Translation: "Click here"}}}
	mc := newTestClient(db, nil)
	assert.Equal(t, "Click here", mc.New("cta", nil).Render(t.Context(), "en"))
}

func TestCopyRenderNegativeWeightPrefersFallback(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{{Key: "cta", Language: "en", Translation: "meh", Weight: -1}}}
	mc := newTestClient(db, nil)

	withFallback := mc.New("cta", NamedParams(map[string]string{"fallback": "Click here"}))
	assert.Equal(t, "Click here", withFallback.Render(t.Context(), "en"))

	withoutFallback := mc.New("cta", nil)
	assert.Equal(t, "meh", withoutFallback.Render(t.Context(), "en"))
}

func TestCopyRenderExecutesTemplates(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{{
		Key: "inbox", Language: "en", Translation: "{{.count}} new messages", ContainsCode: true, ContainsHTML: true,
	}}}
	mc := newTestClient(db, nil)
	copyHandle := mc.New("inbox", NamedParams(map[string]string{"count": "2"}))
	assert.Equal(t, "2 new messages", copyHandle.Render(t.Context(), "en"))
}

func TestCopyRenderTitleStyle(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{{Key: "cta", Language: "en", Translation: "save changes"}}}
	mc := newTestClient(db, nil)
	copyHandle := mc.New("cta", NamedParams(map[string]string{"style": "title"}))
	assert.Equal(t, "Save Changes", copyHandle.Render(t.Context(), "en"))
}

func TestCopyRenderStyleFilterOptsOut(t *testing.T) {
	t.Parallel()

	// A record filtering on `style` handles the styling itself.
	db := &fakeLocalStore{records: []*Record{{
		Key: "cta", Language: "en", Translation: "save changes",
		Filters: Filters{{Name: "style", Value: "*", Optional: true}},
	}}}
	mc := newTestClient(db, nil)
	copyHandle := mc.New("cta", NamedParams(map[string]string{"style": "title"}))
	assert.Equal(t, "save changes", copyHandle.Render(t.Context(), "en"))
}

func TestCopyRenderLockCaseSuppressesStyle(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{{Key: "brand", Language: "en", Translation: "iPhone", LockCase: true}}}
	mc := newTestClient(db, nil)
	copyHandle := mc.New("brand", NamedParams(map[string]string{"style": "title"}))
	assert.Equal(t, "iPhone", copyHandle.Render(t.Context(), "en"))
}

func TestCopyRenderStyleAppliesToKeyFallback(t *testing.T) {
	t.Parallel()

	mc := newTestClient(&fakeLocalStore{}, nil)
	copyHandle := mc.New("missing key", NamedParams(map[string]string{"style": "title"}))
	assert.Equal(t, "Missing Key", copyHandle.Render(t.Context(), "en"))
}

func TestCopyRenderElementEscapesPlainText(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{{Key: "cta", Language: "en", Translation: "Fish & chips"}}}
	mc := newTestClient(db, nil)
	element := mc.New("cta", nil).RenderElement(t.Context(), "en")
	assert.Equal(t, `<micro-copy key="cta">Fish &amp; chips</micro-copy>`, element)
}

func TestCopyRenderElementKeepsRenderedHTML(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{{
		Key: "cta", Language: "en", Translation: "<b>{{.name}}</b>", ContainsCode: true, ContainsHTML: true,
	}}}
	mc := newTestClient(db, nil)
	element := mc.New("cta", NamedParams(map[string]string{"name": "Jo"})).RenderElement(t.Context(), "en")
	assert.Equal(t, `<micro-copy key="cta"><b>Jo</b></micro-copy>`, element)
}

func TestCopyRenderNeverPropagatesErrors(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{{
		Key: "broken", Language: "en", Translation: "{{.count", ContainsCode: true, ContainsHTML: true,
	}}}
	mc := newTestClient(db, nil)
	copyHandle := mc.New("broken", NamedParams(map[string]string{"fallback": "ok"}))

	require.NotPanics(t, func() {
		assert.Equal(t, "ok", copyHandle.Render(t.Context(), "en"))
	})
}
