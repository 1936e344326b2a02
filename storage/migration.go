// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"
	"github.com/pkg/errors"

	"github.com/elevenways/lingo/log"
)

func NewStringDDL(ddl string) DDL {
	return &stringDDL{Data: ddl}
}

func NewFilesystemDDL(fileSystem fs.FS, schemaTableName string) DDL {
	return &filesystemDDL{FS: fileSystem, SchemaTable: schemaTableName}
}

func (d *stringDDL) run(ctx context.Context, pool *pgxpool.Pool) error {
	for _, statement := range strings.Split(d.Data, "----") {
		if _, err := pool.Exec(ctx, statement); err != nil {
			return errors.Wrapf(err, "failed to execute DDL statement: %v", statement)
		}
	}

	return nil
}

func (d *filesystemDDL) run(ctx context.Context, pool *pgxpool.Pool) error {
	schemaTable := d.SchemaTable
	if schemaTable == "" {
		const defaultSchemaTable = "lingo_schema_migrations"
		schemaTable = defaultSchemaTable
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return errors.Wrap(err, "cannot acquire connection for migration")
	}
	defer conn.Release()

	migrator, err := migrate.NewMigrator(ctx, conn.Conn(), schemaTable)
	if err != nil {
		return errors.Wrap(err, "cannot create migrator")
	}
	if err = migrator.LoadMigrations(d.FS); err != nil {
		return errors.Wrap(err, "cannot load migrations from fs")
	}
	if v, vErr := migrator.GetCurrentVersion(ctx); vErr == nil {
		log.Info(fmt.Sprintf("current schema version: %d", v))
	}
	migrator.OnStart = func(sequence int32, name, direction, _ string) {
		log.Info(fmt.Sprintf("starting migration: %d: %s: %s", sequence, name, direction))
	}

	return errors.Wrap(migrator.Migrate(ctx), "migration failed")
}
