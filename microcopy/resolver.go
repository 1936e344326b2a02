// SPDX-License-Identifier: MIT

package microcopy

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/elevenways/lingo/terror"
)

const localeBonusBase = 1000

// FindTranslation picks the single best matching record for the given key,
// parameters and locale preference list, or (nil, nil) when nothing usable exists.
func (m *microcopy) FindTranslation(ctx context.Context, key string, params *Params, locales []Language) (*Record, error) {
	if key == "" {
		return nil, terror.NewWithCode(ErrInvalidKey, "INVALID_KEY", nil)
	}
	if len(locales) == 0 {
		locales = m.cfg.Microcopy.Locales
	}

	return m.findTranslation(ctx, key, params.Named(), locales, false)
}

//nolint:funlen // The whole selection algorithm reads better in one piece.
func (m *microcopy) findTranslation(ctx context.Context, key string, named map[string]string, locales []Language, relaxed bool) (*Record, error) {
	names := sortedNames(named)
	records, err := m.FindRecords(ctx, key, names, locales)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find candidate records for key %q", key)
	}
	// If nothing could be found *with* parameters, look for all of them.
	if len(records) == 0 {
		if len(named) != 0 && !relaxed {
			return m.findTranslation(ctx, key, nil, locales, true)
		}

		return nil, nil
	}

	scores := make([]int, len(records))
	maxScore := 0
	for ix, record := range records {
		score := record.Score(named)
		if score > 0 {
			for j, locale := range locales {
				if record.Language == locale {
					score += localeBonusBase / (j + 1)

					break
				}
			}
		}
		scores[ix] = score
		if score > maxScore {
			maxScore = score
		}
	}
	// If none of the records had a positive score, try once more without parameters.
	if maxScore == 0 {
		if len(named) != 0 && !relaxed {
			return m.findTranslation(ctx, key, nil, locales, true)
		}

		return nil, nil
	}
	for ix, score := range scores {
		if score == maxScore {
			return records[ix], nil
		}
	}

	return nil, nil
}

// FindRecords fetches all candidate records for the key, merging remote
// fallback records when the local store comes up empty, ordered by weight descending.
func (m *microcopy) FindRecords(ctx context.Context, key string, parameterNames []string, locales []Language) ([]*Record, error) {
	records, err := m.db.fetchCandidates(ctx, key, parameterNames, locales)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query local records for key %q", key)
	}
	if len(records) == 0 {
		if remote := m.remoteStoreSnapshot(); remote != nil {
			remoteRecords, rErr := m.remoteCandidates(ctx, remote, key, parameterNames, locales)
			if rErr != nil {
				return nil, rErr
			}
			records = append(records, remoteRecords...)
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Weight > records[j].Weight })

	return records, nil
}

func (m *microcopy) remoteCandidates(ctx context.Context, remote remoteStore, key string, parameterNames []string, locales []Language) ([]*Record, error) {
	cacheKey := candidateCacheKey(key, parameterNames, locales)
	cached, found, err := m.cache.get(ctx, cacheKey)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read the remote fallback cache for key %q", key)
	}
	if found {
		return cached, nil
	}
	records, err := remote.fetchRecords(ctx, key, parameterNames, locales)
	if err != nil {
		// Fetch failures propagate, only successful (possibly empty) responses get cached.
		return nil, errors.Wrapf(err, "failed to fetch remote records for key %q", key)
	}
	if sErr := m.cache.set(ctx, cacheKey, records); sErr != nil {
		return nil, errors.Wrapf(sErr, "failed to cache remote records for key %q", key)
	}

	return records, nil
}

func sortedNames(named map[string]string) []string {
	if len(named) == 0 {
		return nil
	}
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
