// SPDX-License-Identifier: MIT

package api

import (
	_ "embed"

	"github.com/elevenways/lingo/microcopy"
	"github.com/elevenways/lingo/staticstrings"
	"github.com/elevenways/lingo/storage"
)

// Public API.

type (
	GetTranslationArg struct {
		Domain string `uri:"domain" required:"true" example:"default"`
		Key    string `uri:"key" required:"true" example:"welcome.title"`
	}
	GetTranslatedStringArg struct {
		Domain string   `uri:"domain" required:"true" example:"default"`
		Key    string   `uri:"key" required:"true" example:"welcome.title"`
		Args   []string `form:"args" example:"2"`
	}
	TranslatedString struct {
		Translation string `json:"translation" example:"2 new messages"`
	}
	FindMicrocopyRecordsArg struct {
		_          struct{} `requiresAccessKey:"true"` //nolint:revive // It's processed by the router.
		Key        string   `uri:"key" required:"true" example:"confirm-button"`
		Parameters []string `form:"parameters" example:"count"`
		Locales    []string `form:"locales" example:"en"`
	}
)

// Private API.

const applicationYAMLKey = "lingo"

//go:embed ddl.sql
var ddl string //nolint:gochecknoglobals // Its loaded once, at startup.

type state struct {
	db            *storage.DB
	microcopy     microcopy.Client
	staticStrings staticstrings.Client
}
