// SPDX-License-Identifier: MIT

package microcopy

import (
	"context"
	"fmt"
	"html"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/elevenways/lingo/log"
)

// Copy is the lazy call-site handle for one translation. It resolves and
// renders on demand and always produces a usable string, degrading to the
// fallback or the key itself when anything goes wrong.
type Copy struct {
	mc     *microcopy
	key    string
	params *Params
}

func (m *microcopy) New(key string, params *Params) *Copy {
	return &Copy{mc: m, key: key, params: params}
}

func (c *Copy) Key() string {
	return c.key
}

// Render resolves the best record and renders it. Lookup and template failures
// are logged once per distinct problem and never bubble up, the page keeps
// rendering with the fallback or the key.
func (c *Copy) Render(ctx context.Context, locales ...Language) string {
	_, rendered := c.renderWithRecord(ctx, locales)

	return rendered
}

// RenderElement wraps the rendered translation in a micro-copy element, so
// client-side code can re-resolve it when the locale changes.
func (c *Copy) RenderElement(ctx context.Context, locales ...Language) string {
	record, body := c.renderWithRecord(ctx, locales)
	if record == nil || (!record.ContainsHTML && !record.ContainsCode) {
		body = html.EscapeString(body)
	}

	return fmt.Sprintf(`<micro-copy key="%v">%v</micro-copy>`, html.EscapeString(c.key), body)
}

func (c *Copy) renderWithRecord(ctx context.Context, locales []Language) (*Record, string) {
	record, rendered := c.resolve(ctx, locales)
	if rendered == "" {
		if fallback := c.params.Fallback(); fallback != "" {
			rendered = fallback
		} else {
			rendered = c.key
		}
	}
	if style := c.params.Style(); style != "" && rendered != "" {
		applyStyle := record == nil || (!record.HasFilter(styleParameter) && !record.LockCase)
		if applyStyle && style == "title" {
			rendered = titleize(rendered, record, locales)
		}
	}

	return record, rendered
}

func (c *Copy) resolve(ctx context.Context, locales []Language) (record *Record, rendered string) {
	record, err := c.mc.FindTranslation(ctx, c.key, c.params, locales)
	if err != nil {
		logProblemOnce(c.key, err)

		return nil, ""
	}
	if record == nil {
		return nil, ""
	}
	if record.Weight < 0 && c.params.Fallback() != "" {
		return record, ""
	}
	if !record.ContainsCode && !record.ContainsHTML {
		return record, record.Translation
	}
	rendered, err = c.mc.renderer.Render(ctx, record.Translation, c.params.Named())
	if err != nil {
		logProblemOnce(c.key, err)

		return record, ""
	}

	return record, rendered
}

func titleize(value string, record *Record, locales []Language) string {
	tag := language.Und
	if record != nil && record.Language != "" {
		tag = language.Make(record.Language)
	} else if len(locales) != 0 {
		tag = language.Make(locales[0])
	}

	return cases.Title(tag, cases.NoLower).String(value)
}

// Repeated failures for the same key would otherwise flood the logs on every
// page render, so each distinct problem is reported a single time.
var loggedProblems = new(sync.Map) //nolint:gochecknoglobals // Process-wide dedup is the point.

func logProblemOnce(key string, err error) {
	signature := fmt.Sprintf("%v: %v", key, err)
	if _, alreadyLogged := loggedProblems.LoadOrStore(signature, struct{}{}); !alreadyLogged {
		log.Error(errors.Wrapf(err, "microcopy rendering problem for key %q", key))
	}
}
