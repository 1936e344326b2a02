// SPDX-License-Identifier: MIT

package microcopy

import (
	"context"
	"sync"
	stdlibtime "time"

	"github.com/pkg/errors"

	"github.com/elevenways/lingo/storage"
	"github.com/elevenways/lingo/time"
)

// Public API.

var (
	ErrInvalidKey  = errors.New("a valid key is required to look for translations")
	ErrRemoteFetch = errors.New("failed to fetch records from the remote translation server")
)

type (
	Language = string

	// Record is one stored translation candidate. Many records share a key,
	// the resolver picks the best match for the call site.
	Record struct {
		CreatedAt    *time.Time `json:"createdAt,omitempty" db:"created_at" msgpack:"createdAt,omitempty"`
		UpdatedAt    *time.Time `json:"updatedAt,omitempty" db:"updated_at" msgpack:"updatedAt,omitempty"`
		ID           string     `json:"id,omitempty" db:"id" msgpack:"id,omitempty"`
		Key          string     `json:"key" db:"key" msgpack:"key"`
		Language     Language   `json:"language" db:"language" msgpack:"language"`
		Translation  string     `json:"translation" db:"translation" msgpack:"translation"`
		Filters      Filters    `json:"filters,omitempty" db:"filters" msgpack:"filters,omitempty"`
		Weight       int        `json:"weight" db:"weight" msgpack:"weight"`
		LockCase     bool       `json:"lockCase" db:"lock_case" msgpack:"lockCase"`           //nolint:tagliatelle // Nope.
		ContainsCode bool       `json:"containsCode" db:"contains_code" msgpack:"containsCode"` //nolint:tagliatelle // Nope.
		ContainsHTML bool       `json:"containsHtml" db:"contains_html" msgpack:"containsHtml"` //nolint:tagliatelle // Nope.
	}
	// Filter is one matching constraint inside a record. An empty Value matches
	// any parameter value with a low score, `*` with a medium one, an exact
	// string equality with a high one.
	Filter struct {
		Name     string `json:"name" msgpack:"name"`
		Value    string `json:"value" msgpack:"value"`
		Optional bool   `json:"optional" msgpack:"optional"`
	}
	Filters []*Filter

	// Renderer executes translation bodies that contain template code.
	Renderer interface {
		Render(ctx context.Context, body string, parameters map[string]string) (string, error)
	}

	Client interface {
		FindTranslation(ctx context.Context, key string, params *Params, locales []Language) (*Record, error)
		FindRecords(ctx context.Context, key string, parameterNames []string, locales []Language) ([]*Record, error)
		SaveRecord(ctx context.Context, record *Record) error
		TouchAll(ctx context.Context) error
		New(key string, params *Params) *Copy
		// UpdateRemoteConfig swaps the translation server address/credentials and
		// clears the remote fallback cache, so no stale cross-environment data survives.
		UpdateRemoteConfig(ctx context.Context, translationServer, accessKey string) error
		Close() error
	}
)

// Private API.

const (
	defaultCacheTTL       = 2 * stdlibtime.Hour
	defaultRequestTimeout = 30 * stdlibtime.Second

	fallbackParameter = "fallback"
	styleParameter    = "style"
)

type (
	localStore interface {
		fetchCandidates(ctx context.Context, key string, parameterNames []string, locales []Language) ([]*Record, error)
		saveRecord(ctx context.Context, record *Record) error
		touchAll(ctx context.Context) error
	}
	remoteStore interface {
		fetchRecords(ctx context.Context, key string, parameterNames []string, locales []Language) ([]*Record, error)
	}
	remoteCache interface {
		get(ctx context.Context, cacheKey string) (records []*Record, found bool, err error)
		set(ctx context.Context, cacheKey string, records []*Record) error
		clear(ctx context.Context) error
	}

	microcopy struct {
		cfg      *config
		db       localStore
		remote   remoteStore
		cache    remoteCache
		renderer Renderer
		mx       *sync.RWMutex
	}

	config struct {
		Microcopy struct {
			Locales []Language `yaml:"locales" mapstructure:"locales"`
			Cache   struct {
				Backend string              `yaml:"backend" mapstructure:"backend"`
				URL     string              `yaml:"url" mapstructure:"url"`
				TTL     stdlibtime.Duration `yaml:"ttl" mapstructure:"ttl"`
			} `yaml:"cache" mapstructure:"cache"`
			Remote struct {
				TranslationServer string              `yaml:"translationServer" mapstructure:"translationServer"` //nolint:tagliatelle // Nope.
				AccessKey         string              `yaml:"accessKey" mapstructure:"accessKey"`                 //nolint:tagliatelle // Nope.
				RequestTimeout    stdlibtime.Duration `yaml:"requestTimeout" mapstructure:"requestTimeout"`       //nolint:tagliatelle // Nope.
			} `yaml:"remote" mapstructure:"remote"`
		} `yaml:"lingo/microcopy" mapstructure:"lingo/microcopy"` //nolint:tagliatelle // Nope.
	}

	dbStore struct {
		db *storage.DB
	}
)

var (
	_ Client     = (*microcopy)(nil)
	_ localStore = (*dbStore)(nil)
)
