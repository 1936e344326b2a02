// SPDX-License-Identifier: MIT

package staticstrings

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	stdlibtime "time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"

	appcfg "github.com/elevenways/lingo/config"
	"github.com/elevenways/lingo/log"
	"github.com/elevenways/lingo/storage"
	"github.com/elevenways/lingo/time"
)

func New(ctx context.Context, applicationYAMLKey string, db *storage.DB) Client {
	var cfg config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	if cfg.StaticStrings.RefreshInterval == 0 {
		cfg.StaticStrings.RefreshInterval = defaultRefreshInterval
	}

	ss := &staticStrings{
		cfg:     &cfg,
		db:      db,
		mx:      new(sync.RWMutex),
		domains: make(map[Domain]map[Key]*StaticString),
	}
	//nolint:mnd,gomnd // Retry config.
	loadBackoff := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 10), ctx)
	log.Panic(errors.Wrap(backoff.Retry(func() error { return ss.loadAllStrings(ctx) }, loadBackoff), //nolint:revive // Intended.
		"failed to load static strings"))
	go ss.startRefreshProcess(ctx)

	return ss
}

func (s *staticStrings) GetTranslation(ctx context.Context, domain Domain, key Key) (*StaticString, error) {
	if domain == "" {
		domain = defaultDomain
	}
	s.mx.RLock()
	str, found := s.domains[domain][key]
	s.mx.RUnlock()
	if found {
		return str, nil
	}
	// A miss can mean a string added after the last refresh, so the store gets one chance.
	sql := `SELECT created_at, updated_at, domain, key, singular_translation, plural_translation
			FROM static_strings
			WHERE domain = $1
			  AND key = $2`
	str, err := storage.Get[StaticString](ctx, s.db, sql, domain, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get static string for domain %q, key %q", domain, key)
	}
	s.mx.Lock()
	if s.domains[domain] == nil {
		s.domains[domain] = make(map[Key]*StaticString)
	}
	s.domains[domain][key] = str
	s.mx.Unlock()

	return str, nil
}

func (s *staticStrings) TranslateString(ctx context.Context, domain Domain, key Key, args ...string) (string, error) {
	str, err := s.GetTranslation(ctx, domain, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return key, nil
		}

		return "", errors.Wrapf(err, "failed to translate static string for domain %q, key %q", domain, key)
	}
	source := str.SingularTranslation
	if str.PluralTranslation != "" && isPlural(args) {
		source = str.PluralTranslation
	}
	if len(args) == 0 {
		return source, nil
	}
	anyArgs := make([]any, len(args))
	for ix, arg := range args {
		anyArgs[ix] = arg
	}

	return fmt.Sprintf(source, anyArgs...), nil
}

func (s *staticStrings) Domains(_ context.Context) (map[Domain]map[Key]*StaticString, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()

	snapshot := make(map[Domain]map[Key]*StaticString, len(s.domains))
	for domain, strs := range s.domains {
		keys := make(map[Key]*StaticString, len(strs))
		for key, str := range strs {
			keys[key] = str
		}
		snapshot[domain] = keys
	}

	return snapshot, nil
}

func (s *staticStrings) startRefreshProcess(ctx context.Context) {
	ticker := stdlibtime.NewTicker(s.cfg.StaticStrings.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Debug("started refreshing static strings")
			log.Error(errors.Wrap(s.loadAllStrings(ctx), "failed to loadAllStrings"),
				"elapsedMinutesSinceLatestRefresh", stdlibtime.Since(*s.lastRefreshAt.Time).Minutes())
			log.Debug("finished refreshing static strings")
		}
	}
}

func (s *staticStrings) loadAllStrings(ctx context.Context) error {
	sql := `SELECT created_at, updated_at, domain, key, singular_translation, plural_translation
			FROM static_strings`
	strs, err := storage.Select[StaticString](ctx, s.db, sql)
	if err != nil {
		return errors.Wrap(err, "failed to select all static strings")
	}
	domains := make(map[Domain]map[Key]*StaticString)
	for _, str := range strs {
		if domains[str.Domain] == nil {
			domains[str.Domain] = make(map[Key]*StaticString)
		}
		domains[str.Domain][str.Key] = str
	}
	s.mx.Lock()
	s.domains = domains
	s.lastRefreshAt = time.Now()
	s.mx.Unlock()

	return nil
}

func isPlural(args []string) bool {
	if len(args) == 0 {
		return false
	}
	count, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return false
	}

	return count == 0 || count > 1
}
