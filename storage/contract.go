// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// Public API.

var (
	ErrNotFound         = errors.New("not found")
	ErrRelationNotFound = errors.New("relation not found")
	ErrDuplicate        = errors.New("duplicate")
)

type (
	DB struct {
		primaryPool *pgxpool.Pool
		lb          *lb
	}
	// DDL is anything that can bootstrap the schema on the primary.
	DDL interface {
		run(ctx context.Context, pool *pgxpool.Pool) error
	}
)

// Private API.

type (
	lb struct {
		replicas     []*pgxpool.Pool
		currentIndex uint64
	}
	stringDDL struct {
		Data string
	}
	filesystemDDL struct {
		FS          fs.FS
		SchemaTable string
	}
	config struct {
		Storage struct {
			PrimaryURL  string   `yaml:"primaryURL" mapstructure:"primaryURL"`   //nolint:tagliatelle // Nope.
			ReplicaURLs []string `yaml:"replicaURLs" mapstructure:"replicaURLs"` //nolint:tagliatelle // Nope.
			RunDDL      bool     `yaml:"runDDL" mapstructure:"runDDL"`           //nolint:tagliatelle // Nope.
		} `yaml:"lingo/storage" mapstructure:"lingo/storage"` //nolint:tagliatelle // Nope.
	}
)
