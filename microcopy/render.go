// SPDX-License-Identifier: MIT

package microcopy

import (
	"context"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

type templateRenderer struct{}

func newTemplateRenderer() Renderer {
	return &templateRenderer{}
}

// Render executes the translation body as a template against the named
// parameters. Bodies never produce per-request state, so a parse per call is
// acceptable, they are one-liners in practice.
func (*templateRenderer) Render(_ context.Context, body string, parameters map[string]string) (string, error) {
	tmpl, err := template.New("translation").Option("missingkey=zero").Parse(body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse translation body %q", body)
	}
	var sb strings.Builder
	if err = tmpl.Execute(&sb, parameters); err != nil {
		return "", errors.Wrapf(err, "failed to execute translation body %q", body)
	}

	return sb.String(), nil
}
