// SPDX-License-Identifier: MIT

package staticstrings

import (
	"context"
	"sync"
	stdlibtime "time"

	"github.com/elevenways/lingo/storage"
	"github.com/elevenways/lingo/time"
)

// Public API.

type (
	Domain = string
	Key    = string

	// StaticString is the legacy fixed-form translation, one singular and one
	// optional plural body per (domain, key) pair.
	StaticString struct {
		CreatedAt           *time.Time `json:"createdAt,omitempty" db:"created_at"`
		UpdatedAt           *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
		Domain              Domain     `json:"domain" db:"domain"`
		Key                 Key        `json:"key" db:"key"`
		SingularTranslation string     `json:"singularTranslation" db:"singular_translation"` //nolint:tagliatelle // Nope.
		PluralTranslation   string     `json:"pluralTranslation" db:"plural_translation"`     //nolint:tagliatelle // Nope.
	}

	Client interface {
		GetTranslation(ctx context.Context, domain Domain, key Key) (*StaticString, error)
		// TranslateString formats the stored translation with the positional
		// arguments. The plural body is used when the first argument is numeric
		// and equal to 0 or greater than 1. An unknown key degrades to the key itself.
		TranslateString(ctx context.Context, domain Domain, key Key, args ...string) (string, error)
		Domains(ctx context.Context) (map[Domain]map[Key]*StaticString, error)
	}
)

// Private API.

const (
	defaultDomain          = "default"
	defaultRefreshInterval = 5 * stdlibtime.Minute
)

type (
	staticStrings struct {
		cfg           *config
		db            *storage.DB
		mx            *sync.RWMutex
		lastRefreshAt *time.Time
		domains       map[Domain]map[Key]*StaticString
	}

	config struct {
		StaticStrings struct {
			RefreshInterval stdlibtime.Duration `yaml:"refreshInterval" mapstructure:"refreshInterval"` //nolint:tagliatelle // Nope.
		} `yaml:"lingo/staticstrings" mapstructure:"lingo/staticstrings"` //nolint:tagliatelle // Nope.
	}
)

var _ Client = (*staticStrings)(nil)
