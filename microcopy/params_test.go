// SPDX-License-Identifier: MIT

package microcopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamedParamsConsumeReservedFallback(t *testing.T) {
	t.Parallel()

	params := NamedParams(map[string]string{"count": "2", "fallback": "Save", "style": "title"})
	assert.Equal(t, map[string]string{"count": "2", "style": "title"}, params.Named())
	assert.Equal(t, []string{"count", "style"}, params.Names())
	assert.Equal(t, "Save", params.Fallback())
	assert.Equal(t, "title", params.Style())
}

func TestNilParamsAreSafe(t *testing.T) {
	t.Parallel()

	var params *Params
	assert.Nil(t, params.Named())
	assert.Nil(t, params.Names())
	assert.Nil(t, params.Positional())
	assert.Empty(t, params.Fallback())
	assert.Empty(t, params.Style())
	assert.False(t, params.IsPlural())
}

func TestPositionalParamsPluralization(t *testing.T) {
	t.Parallel()

	assert.False(t, PositionalParams().IsPlural())
	assert.False(t, PositionalParams("1").IsPlural())
	assert.False(t, PositionalParams("one").IsPlural())
	assert.False(t, PositionalParams("0.5").IsPlural())
	assert.True(t, PositionalParams("0").IsPlural())
	assert.True(t, PositionalParams("2").IsPlural())
	assert.True(t, PositionalParams("3.5").IsPlural())
	assert.False(t, NamedParams(map[string]string{"count": "2"}).IsPlural())
}

func TestWithFallback(t *testing.T) {
	t.Parallel()

	params := PositionalParams("2").WithFallback("n items")
	assert.Equal(t, "n items", params.Fallback())
	assert.Equal(t, []string{"2"}, params.Positional())
}
