// SPDX-License-Identifier: MIT

package microcopy

import (
	"context"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/elevenways/lingo/storage"
	"github.com/elevenways/lingo/time"
)

func (m *microcopy) SaveRecord(ctx context.Context, record *Record) error {
	return errors.Wrapf(m.db.saveRecord(ctx, record), "failed to save translation record for key %q", record.Key)
}

func (m *microcopy) TouchAll(ctx context.Context) error {
	return errors.Wrap(m.db.touchAll(ctx), "failed to touch all translation records")
}

// fetchCandidates narrows the table down to records that could possibly score
// for this lookup: the right key, a wanted language, and either no filters,
// only optional ones, or at least one filter naming a provided parameter.
func (s *dbStore) fetchCandidates(ctx context.Context, key string, parameterNames []string, locales []Language) ([]*Record, error) {
	if parameterNames == nil {
		parameterNames = []string{} // A nil slice would reach postgres as NULL, and cardinality(NULL) is NULL, not 0.
	}
	if locales == nil {
		locales = []Language{}
	}
	sql := `SELECT created_at,
				   updated_at,
				   id,
				   key,
				   language,
				   translation,
				   filters,
				   weight,
				   lock_case,
				   contains_code,
				   contains_html
			FROM microcopy_records
			WHERE key = $1
			  AND (cardinality($2::TEXT[]) = 0 OR language = ANY($2))
			  AND (CASE WHEN cardinality($3::TEXT[]) = 0
						THEN jsonb_array_length(filters) = 0
							 OR NOT EXISTS (SELECT 1
											FROM jsonb_array_elements(filters) f
											WHERE coalesce(f->>'name','') != ''
											  AND NOT coalesce((f->>'optional')::BOOLEAN, FALSE))
						ELSE jsonb_array_length(filters) = 0
							 OR EXISTS (SELECT 1
										FROM jsonb_array_elements(filters) f
										WHERE f->>'name' = ANY($3))
				   END)
			ORDER BY weight DESC`
	records, err := storage.Select[Record](ctx, s.db, sql, key, locales, parameterNames)

	return records, errors.Wrapf(err, "failed to select candidate records for key %q", key)
}

func (s *dbStore) saveRecord(ctx context.Context, record *Record) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.ContainsCode, record.ContainsHTML = detectContent(record.Translation)
	now := time.Now()
	record.UpdatedAt = now
	if record.CreatedAt == nil {
		record.CreatedAt = now
	}
	sql := `INSERT INTO microcopy_records (created_at, updated_at, id, key, language, translation, filters, weight, lock_case, contains_code, contains_html)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE
				SET updated_at    = EXCLUDED.updated_at,
					key           = EXCLUDED.key,
					language      = EXCLUDED.language,
					translation   = EXCLUDED.translation,
					filters       = EXCLUDED.filters,
					weight        = EXCLUDED.weight,
					lock_case     = EXCLUDED.lock_case,
					contains_code = EXCLUDED.contains_code,
					contains_html = EXCLUDED.contains_html`
	_, err := storage.Exec(ctx, s.db, sql,
		record.CreatedAt.Time, record.UpdatedAt.Time, record.ID, record.Key, record.Language, record.Translation,
		record.Filters, record.Weight, record.LockCase, record.ContainsCode, record.ContainsHTML)

	return errors.Wrapf(err, "failed to upsert translation record %#v", record)
}

// touchAll re-saves every record: the derived rendering hints are recomputed
// (same markers as detectContent) and updated_at is bumped, which forces
// downstream consumers keyed on modification timestamps to regenerate.
func (s *dbStore) touchAll(ctx context.Context) error {
	sql := `UPDATE microcopy_records
			SET updated_at    = $1,
				contains_code = (position('{{' in translation) > 0
								 OR position('{%' in translation) > 0
								 OR position('<%' in translation) > 0),
				contains_html = (position('{{' in translation) > 0
								 OR position('{%' in translation) > 0
								 OR position('<%' in translation) > 0
								 OR translation ~ '[&<>"'']')`
	_, err := storage.Exec(ctx, s.db, sql, time.Now().Time)

	return errors.Wrap(err, "failed to update the modification timestamp of all records")
}

// detectContent derives the rendering hints from the translation body. Template
// markers imply HTML handling too, because rendered output is never re-inspected.
func detectContent(translation string) (containsCode, containsHTML bool) {
	for _, marker := range []string{"{{", "{%", "<%"} {
		if strings.Contains(translation, marker) {
			return true, true
		}
	}

	return false, html.EscapeString(translation) != translation
}
