// SPDX-License-Identifier: MIT

package microcopy

import (
	"context"
	"sync"
	"testing"
	stdlibtime "time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocalStore struct {
	records []*Record
	err     error
	fetches int
}

func (f *fakeLocalStore) fetchCandidates(_ context.Context, key string, _ []string, _ []Language) ([]*Record, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	var matching []*Record
	for _, record := range f.records {
		if record.Key == key {
			matching = append(matching, record)
		}
	}

	return matching, nil
}

func (*fakeLocalStore) saveRecord(_ context.Context, _ *Record) error { return nil }

func (*fakeLocalStore) touchAll(_ context.Context) error { return nil }

type fakeRemoteStore struct {
	records []*Record
	err     error
	fetches int
}

func (f *fakeRemoteStore) fetchRecords(_ context.Context, _ string, _ []string, _ []Language) ([]*Record, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}

	return f.records, nil
}

func newTestClient(db localStore, remote remoteStore) *microcopy {
	cfg := new(config)
	cfg.Microcopy.Locales = []Language{"en", "nl"}
	cfg.Microcopy.Cache.TTL = stdlibtime.Hour

	return &microcopy{
		cfg:      cfg,
		db:       db,
		remote:   remote,
		cache:    newMemoryCache(cfg.Microcopy.Cache.TTL),
		renderer: newTemplateRenderer(),
		mx:       new(sync.RWMutex),
	}
}

func TestFindTranslationRequiresKey(t *testing.T) {
	t.Parallel()

	mc := newTestClient(&fakeLocalStore{}, nil)
	record, err := mc.FindTranslation(t.Context(), "", nil, nil)
	require.ErrorIs(t, err, ErrInvalidKey)
	assert.Nil(t, record)
}

func TestFindTranslationFilterSpecificity(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{
		{Key: "cta", Language: "en", Translation: "Click here"},
		{Key: "cta", Language: "en", Translation: "Act now!", Filters: Filters{{Name: "variant", Value: "urgent"}}},
	}}
	mc := newTestClient(db, nil)

	urgent, err := mc.FindTranslation(t.Context(), "cta", NamedParams(map[string]string{"variant": "urgent"}), []Language{"en"})
	require.NoError(t, err)
	require.NotNil(t, urgent)
	assert.Equal(t, "Act now!", urgent.Translation)

	plain, err := mc.FindTranslation(t.Context(), "cta", nil, []Language{"en"})
	require.NoError(t, err)
	require.NotNil(t, plain)
	assert.Equal(t, "Click here", plain.Translation)
}

func TestFindTranslationLocaleBonusOrdering(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{
		{Key: "greeting", Language: "fr", Translation: "Bonjour"},
		{Key: "greeting", Language: "en", Translation: "Hello"},
	}}
	mc := newTestClient(db, nil)

	record, err := mc.FindTranslation(t.Context(), "greeting", nil, []Language{"en", "fr"})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Hello", record.Translation)

	record, err = mc.FindTranslation(t.Context(), "greeting", nil, []Language{"fr", "en"})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Bonjour", record.Translation)
}

func TestFindTranslationRelaxesParametersOnDisqualification(t *testing.T) {
	t.Parallel()

	// The only record requires a `variant` parameter the call site doesn't have,
	// so everything scores 0 and the lookup retries once without parameters.
	db := &fakeLocalStore{records: []*Record{
		{Key: "greeting", Language: "en", Translation: "Hello", Filters: Filters{{Name: "variant", Value: "urgent"}}},
	}}
	mc := newTestClient(db, nil)

	record, err := mc.FindTranslation(t.Context(), "greeting", NamedParams(map[string]string{"count": "5"}), []Language{"en"})
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Equal(t, 2, db.fetches)
}

func TestFindTranslationRetryOnEmptyStillFindsZeroFilterRecord(t *testing.T) {
	t.Parallel()

	zeroFilter := &Record{Key: "greeting", Language: "en", Translation: "Hello"}
	db := &fakeLocalStore{records: []*Record{zeroFilter}}
	mc := newTestClient(db, nil)

	record, err := mc.FindTranslation(t.Context(), "greeting", NamedParams(map[string]string{"count": "5"}), []Language{"en"})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Hello", record.Translation)
}

func TestFindTranslationNoMatchIsNotAnError(t *testing.T) {
	t.Parallel()

	mc := newTestClient(&fakeLocalStore{}, nil)
	record, err := mc.FindTranslation(t.Context(), "missing", nil, []Language{"en"})
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestFindTranslationWeightBreaksScoreTies(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{
		{Key: "cta", Language: "en", Translation: "light", Weight: 1},
		{Key: "cta", Language: "en", Translation: "heavy", Weight: 10},
	}}
	mc := newTestClient(db, nil)

	record, err := mc.FindTranslation(t.Context(), "cta", nil, []Language{"en"})
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "heavy", record.Translation)
}

func TestFindTranslationDefaultsToConfiguredLocales(t *testing.T) {
	t.Parallel()

	db := &fakeLocalStore{records: []*Record{
		{Key: "greeting", Language: "nl", Translation: "Hallo"},
		{Key: "greeting", Language: "en", Translation: "Hello"},
	}}
	mc := newTestClient(db, nil)

	record, err := mc.FindTranslation(t.Context(), "greeting", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Hello", record.Translation)
}

func TestFindRecordsStoreErrorsPropagate(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("boom")
	mc := newTestClient(&fakeLocalStore{err: storeErr}, &fakeRemoteStore{records: []*Record{{Key: "x"}}})

	records, err := mc.FindRecords(t.Context(), "x", nil, []Language{"en"})
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, records)
}

func TestFindRecordsRemoteOnlyAugmentsEmptyLocalResults(t *testing.T) {
	t.Parallel()

	remote := &fakeRemoteStore{records: []*Record{{Key: "cta", Language: "en", Translation: "remote"}}}
	db := &fakeLocalStore{records: []*Record{{Key: "cta", Language: "en", Translation: "local"}}}
	mc := newTestClient(db, remote)

	records, err := mc.FindRecords(t.Context(), "cta", nil, []Language{"en"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "local", records[0].Translation)
	assert.Zero(t, remote.fetches)

	records, err = mc.FindRecords(t.Context(), "other", nil, []Language{"en"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "remote", records[0].Translation)
	assert.Equal(t, 1, remote.fetches)
}

func TestFindRecordsCacheIdempotence(t *testing.T) {
	t.Parallel()

	remote := &fakeRemoteStore{records: []*Record{{Key: "cta", Language: "en", Translation: "remote"}}}
	mc := newTestClient(&fakeLocalStore{}, remote)

	for range 3 {
		records, err := mc.FindRecords(t.Context(), "cta", []string{"count"}, []Language{"en"})
		require.NoError(t, err)
		require.Len(t, records, 1)
	}
	assert.Equal(t, 1, remote.fetches)
}

func TestFindRecordsNegativeCache(t *testing.T) {
	t.Parallel()

	remote := &fakeRemoteStore{}
	mc := newTestClient(&fakeLocalStore{}, remote)

	for range 3 {
		records, err := mc.FindRecords(t.Context(), "missing", nil, []Language{"en"})
		require.NoError(t, err)
		assert.Empty(t, records)
	}
	assert.Equal(t, 1, remote.fetches)
}

func TestFindRecordsRemoteErrorsAreNeverCached(t *testing.T) {
	t.Parallel()

	remote := &fakeRemoteStore{err: errors.Wrap(ErrRemoteFetch, "kaput")}
	mc := newTestClient(&fakeLocalStore{}, remote)

	for range 2 {
		records, err := mc.FindRecords(t.Context(), "cta", nil, []Language{"en"})
		require.ErrorIs(t, err, ErrRemoteFetch)
		assert.Nil(t, records)
	}
	assert.Equal(t, 2, remote.fetches)

	remote.err = nil
	records, err := mc.FindRecords(t.Context(), "cta", nil, []Language{"en"})
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 3, remote.fetches)
}

func TestUpdateRemoteConfigClearsCache(t *testing.T) {
	t.Parallel()

	remote := &fakeRemoteStore{records: []*Record{{Key: "cta", Language: "en", Translation: "remote"}}}
	mc := newTestClient(&fakeLocalStore{}, remote)

	_, err := mc.FindRecords(t.Context(), "cta", nil, []Language{"en"})
	require.NoError(t, err)
	require.NoError(t, mc.UpdateRemoteConfig(t.Context(), "", ""))
	assert.Nil(t, mc.remoteStoreSnapshot())

	// A fresh remote config starts from an empty cache.
	mc.mx.Lock()
	mc.remote = remote
	mc.mx.Unlock()
	_, err = mc.FindRecords(t.Context(), "cta", nil, []Language{"en"})
	require.NoError(t, err)
	assert.Equal(t, 2, remote.fetches)
}
