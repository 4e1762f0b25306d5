// Package schema holds the database schema used by the console.
package schema

import (
	"context"
	_ "embed"

	kpool "github.com/kubeconsole/console/pkg/conn/db/postgres/pool"
	xe "github.com/kubeconsole/console/pkg/errors"
)

//go:embed schema.sql
var DDL string

// Apply creates tables and indexes which do not exist yet, in a transaction.
func Apply(ctx context.Context, pool kpool.Begin) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, DDL); err != nil {
		return xe.Wrap(err)
	}
	return xe.Wrap(tx.Commit(ctx))
}
