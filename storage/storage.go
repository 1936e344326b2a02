// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	appcfg "github.com/elevenways/lingo/config"
	"github.com/elevenways/lingo/log"
)

func MustConnect(ctx context.Context, ddl DDL, applicationYAMLKey string) *DB {
	var cfg config
	appcfg.MustLoadFromKey(applicationYAMLKey, &cfg)
	var primary *pgxpool.Pool
	if cfg.Storage.PrimaryURL != "" {
		primary = mustConnectPool(ctx, cfg.Storage.PrimaryURL)
	}
	var replicas []*pgxpool.Pool
	if len(cfg.Storage.ReplicaURLs) != 0 {
		replicas = make([]*pgxpool.Pool, len(cfg.Storage.ReplicaURLs))
		for ix, url := range cfg.Storage.ReplicaURLs {
			replicas[ix] = mustConnectPool(ctx, url)
		}
	}
	if primary != nil && ddl != nil && cfg.Storage.RunDDL {
		log.Panic(errors.Wrap(ddl.run(ctx, primary), "failed to run DDL")) //nolint:revive // Intended.
	}

	return &DB{primaryPool: primary, lb: &lb{replicas: replicas}}
}

func mustConnectPool(ctx context.Context, url string) (db *pgxpool.Pool) {
	poolConfig, err := pgxpool.ParseConfig(url)
	log.Panic(errors.Wrapf(err, "failed to parse pool config: %v", url)) //nolint:revive // Intended.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		var res int
		if qErr := conn.QueryRow(ctx, `SELECT 1`).Scan(&res); qErr != nil {
			return errors.Wrapf(qErr, "dummy select failed")
		}
		if res != 1 {
			return errors.New("db validation failed")
		}

		return nil
	}
	db, err = pgxpool.NewWithConfig(ctx, poolConfig)
	log.Panic(errors.Wrapf(err, "failed to start pool for config: %v", url))

	return db
}

func (db *DB) Ping(ctx context.Context) error {
	return errors.Wrap(db.primary().Ping(ctx), "primary ping failed")
}

func (db *DB) Close() {
	if db.primaryPool != nil {
		db.primaryPool.Close()
	}
	for _, replica := range db.lb.replicas {
		replica.Close()
	}
}

func (db *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return db.replica().Query(ctx, sql, args...) //nolint:wrapcheck // We have nothing relevant to wrap.
}

func (db *DB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return db.primary().Exec(ctx, sql, args...) //nolint:wrapcheck // We have nothing relevant to wrap.
}

func (db *DB) primary() *pgxpool.Pool {
	return db.primaryPool
}

func (db *DB) replica() *pgxpool.Pool {
	if len(db.lb.replicas) == 0 {
		return db.primaryPool
	}

	return db.lb.replicas[atomic.AddUint64(&db.lb.currentIndex, 1)%uint64(len(db.lb.replicas))]
}
