// SPDX-License-Identifier: MIT

package microcopy

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	appcfg "github.com/elevenways/lingo/config"
	"github.com/elevenways/lingo/storage"
)

func New(ctx context.Context, applicationYAMLKey string, db *storage.DB) Client {
	var cfg config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	cfg.Microcopy.Remote.AccessKey = appcfg.MustLoadSecret(cfg.Microcopy.Remote.AccessKey, applicationYAMLKey, "I18N_REMOTE_ACCESS_KEY")
	if cfg.Microcopy.Cache.TTL == 0 {
		cfg.Microcopy.Cache.TTL = defaultCacheTTL
	}
	if cfg.Microcopy.Remote.RequestTimeout == 0 {
		cfg.Microcopy.Remote.RequestTimeout = defaultRequestTimeout
	}

	mc := &microcopy{
		cfg:      &cfg,
		db:       &dbStore{db: db},
		cache:    newCache(ctx, &cfg),
		renderer: newTemplateRenderer(),
		mx:       new(sync.RWMutex),
	}
	if cfg.Microcopy.Remote.TranslationServer != "" && cfg.Microcopy.Remote.AccessKey != "" {
		mc.remote = newTranslationServer(cfg.Microcopy.Remote.TranslationServer, cfg.Microcopy.Remote.AccessKey, cfg.Microcopy.Remote.RequestTimeout)
	}

	return mc
}

func (m *microcopy) UpdateRemoteConfig(ctx context.Context, translationServer, accessKey string) error {
	m.mx.Lock()
	m.cfg.Microcopy.Remote.TranslationServer = translationServer
	m.cfg.Microcopy.Remote.AccessKey = accessKey
	if translationServer != "" && accessKey != "" {
		m.remote = newTranslationServer(translationServer, accessKey, m.cfg.Microcopy.Remote.RequestTimeout)
	} else {
		m.remote = nil
	}
	m.mx.Unlock()

	return errors.Wrap(m.cache.clear(ctx), "failed to clear the remote fallback cache")
}

func (m *microcopy) remoteStoreSnapshot() remoteStore {
	m.mx.RLock()
	defer m.mx.RUnlock()

	return m.remote
}

func (m *microcopy) Close() error {
	if closer, ok := m.cache.(interface{ Close() error }); ok {
		return errors.Wrap(closer.Close(), "failed to close the remote fallback cache")
	}

	return nil
}
