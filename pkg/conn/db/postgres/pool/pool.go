// Package pool abstracts pgx connection pools and transactions,
// so that repositories can be tested with the fake in pool/fake.
package pool

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Begin starts a transaction. Both of pools and transactions are Begin.
type Begin interface {
	Begin(ctx context.Context) (Tx, error)
}

type BeginTx interface {
	Begin
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (Tx, error)
}

// Queryer sends SQL. Both of pools and transactions are Queryer.
type Queryer interface {
	// for commands without result rows.
	Exec(ctx context.Context, sql string, arguments ...interface{}) (commandTag pgconn.CommandTag, err error)

	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)

	// for commands with a single result row.
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Tx is a transaction.
//
// Begin on Tx starts a nested transaction (savepoint).
// pgx.Tx does not satisfy Tx, since its Begin returns pgx.Tx.
type Tx interface {
	Queryer
	Begin

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Pool is the subset of *pgxpool.Pool used in the console.
type Pool interface {
	BeginTx
	Queryer

	Ping(ctx context.Context) error
	Close()
}

type pgxTx struct {
	pgx.Tx
}

var _ Tx = pgxTx{}

func wrapTx(tx pgx.Tx, err error) (Tx, error) {
	if tx == nil {
		return nil, err
	}
	return pgxTx{tx}, err
}

func (tx pgxTx) Begin(ctx context.Context) (Tx, error) {
	return wrapTx(tx.Tx.Begin(ctx))
}

type pgxPool struct {
	*pgxpool.Pool
}

var _ Pool = pgxPool{}

func (p pgxPool) Begin(ctx context.Context) (Tx, error) {
	return wrapTx(p.Pool.Begin(ctx))
}

func (p pgxPool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (Tx, error) {
	return wrapTx(p.Pool.BeginTx(ctx, txOptions))
}

func Wrap(p *pgxpool.Pool) Pool {
	return pgxPool{p}
}

type Option func(*pgxpool.Config)

// WithMaxConns limits connections of the pool. n <= 0 means the pgx default.
func WithMaxConns(n int32) Option {
	return func(c *pgxpool.Config) {
		if 0 < n {
			c.MaxConns = n
		}
	}
}

// WithApplicationName sets "application_name" shown in pg_stat_activity.
func WithApplicationName(name string) Option {
	return func(c *pgxpool.Config) {
		c.ConnConfig.RuntimeParams["application_name"] = name
	}
}

// Connect to postgres, then ping it.
func Connect(ctx context.Context, url string, options ...Option) (Pool, error) {
	conf, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	for _, opt := range options {
		opt(conf)
	}
	p, err := pgxpool.ConnectConfig(ctx, conf)
	if err != nil {
		return nil, err
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, err
	}
	return Wrap(p), nil
}
