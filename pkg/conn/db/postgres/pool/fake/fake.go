// Package fake provides an in-memory pool.Pool which records SQL statements
// and answers them with a scripted Handler.
package fake

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgproto3/v2"
	"github.com/jackc/pgx/v4"
	"github.com/kubeconsole/console/pkg/conn/db/postgres/pool"
)

type Statement struct {
	SQL  string
	Args []any
}

// Result of a statement.
//
// For Exec, Tag is returned as command tag.
// For Query and QueryRow, Rows are returned. QueryRow with empty Rows causes pgx.ErrNoRows.
type Result struct {
	Rows [][]any
	Tag  string
	Err  error
}

type Handler func(sql string, args []any) Result

type Pool struct {
	// answers statements. When nil, every statement succeeds with no rows.
	Handler Handler

	// error caused by Begin. nil means success.
	BeginErr error

	// error caused by Commit. nil means success.
	CommitErr error

	mu         sync.Mutex
	statements []Statement
	txs        []*Tx
}

var _ pool.Pool = &Pool{}

func New(h Handler) *Pool {
	return &Pool{Handler: h}
}

// all statements sent to the pool, including ones in transactions.
func (p *Pool) Statements() []Statement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Statement{}, p.statements...)
}

// transactions begun.
func (p *Pool) Txs() []*Tx {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Tx{}, p.txs...)
}

func (p *Pool) handle(sql string, args []any) Result {
	p.mu.Lock()
	p.statements = append(p.statements, Statement{SQL: sql, Args: args})
	h := p.Handler
	p.mu.Unlock()

	if h == nil {
		return Result{}
	}
	return h(sql, args)
}

func (p *Pool) Begin(ctx context.Context) (pool.Tx, error) {
	return p.BeginTx(ctx, pgx.TxOptions{})
}

func (p *Pool) BeginTx(_ context.Context, opts pgx.TxOptions) (pool.Tx, error) {
	if p.BeginErr != nil {
		return nil, p.BeginErr
	}
	tx := &Tx{pool: p, Options: opts}
	p.mu.Lock()
	p.txs = append(p.txs, tx)
	p.mu.Unlock()
	return tx, nil
}

func (p *Pool) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r := p.handle(sql, args)
	return pgconn.CommandTag(r.Tag), r.Err
}

func (p *Pool) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r := p.handle(sql, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return &Rows{rows: r.Rows, tag: r.Tag}, nil
}

func (p *Pool) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r := p.handle(sql, args)
	return &Row{rows: r.Rows, err: r.Err}
}

func (p *Pool) Ping(context.Context) error { return nil }

func (p *Pool) Close() {}

type Tx struct {
	pool    *Pool
	Options pgx.TxOptions

	mu         sync.Mutex
	statements []Statement
	committed  bool
	rolledBack bool
}

var _ pool.Tx = &Tx{}

func (tx *Tx) Statements() []Statement {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return append([]Statement{}, tx.statements...)
}

func (tx *Tx) Committed() bool {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return tx.committed
}

func (tx *Tx) RolledBack() bool {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return tx.rolledBack
}

func (tx *Tx) record(sql string, args []any) Result {
	tx.mu.Lock()
	tx.statements = append(tx.statements, Statement{SQL: sql, Args: args})
	tx.mu.Unlock()
	return tx.pool.handle(sql, args)
}

func (tx *Tx) Begin(ctx context.Context) (pool.Tx, error) {
	return tx.pool.Begin(ctx)
}

func (tx *Tx) Commit(context.Context) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.committed || tx.rolledBack {
		return pgx.ErrTxClosed
	}
	if tx.pool.CommitErr != nil {
		tx.rolledBack = true
		return tx.pool.CommitErr
	}
	tx.committed = true
	return nil
}

func (tx *Tx) Rollback(context.Context) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.committed || tx.rolledBack {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	return nil
}

func (tx *Tx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r := tx.record(sql, args)
	return pgconn.CommandTag(r.Tag), r.Err
}

func (tx *Tx) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r := tx.record(sql, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return &Rows{rows: r.Rows, tag: r.Tag}, nil
}

func (tx *Tx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r := tx.record(sql, args)
	return &Row{rows: r.Rows, err: r.Err}
}

type Row struct {
	rows [][]any
	err  error
}

func (r *Row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(r.rows) == 0 {
		return pgx.ErrNoRows
	}
	return assign(r.rows[0], dest)
}

type Rows struct {
	rows   [][]any
	tag    string
	cursor int
	err    error
	closed bool
}

var _ pgx.Rows = &Rows{}

func (r *Rows) Close()                                         { r.closed = true }
func (r *Rows) Err() error                                     { return r.err }
func (r *Rows) CommandTag() pgconn.CommandTag                  { return pgconn.CommandTag(r.tag) }
func (r *Rows) FieldDescriptions() []pgproto3.FieldDescription { return nil }

func (r *Rows) Next() bool {
	if r.closed || r.err != nil || len(r.rows) <= r.cursor {
		r.closed = true
		return false
	}
	r.cursor += 1
	return true
}

func (r *Rows) current() []any {
	if r.cursor == 0 || len(r.rows) < r.cursor {
		return nil
	}
	return r.rows[r.cursor-1]
}

func (r *Rows) Scan(dest ...any) error {
	if err := assign(r.current(), dest); err != nil {
		r.err = err
		return err
	}
	return nil
}

func (r *Rows) Values() ([]any, error) {
	return append([]any{}, r.current()...), nil
}

func (r *Rows) RawValues() [][]byte {
	return nil
}

type setter interface {
	Set(src interface{}) error
}

func assign(row []any, dest []any) error {
	if len(row) != len(dest) {
		return fmt.Errorf("fake: %d values for %d destinations", len(row), len(dest))
	}
	for i, d := range dest {
		if d == nil {
			continue
		}
		if s, ok := d.(setter); ok {
			if err := s.Set(row[i]); err != nil {
				return err
			}
			continue
		}

		dv := reflect.ValueOf(d)
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("fake: destination #%d is not pointer", i)
		}
		elem := dv.Elem()
		if row[i] == nil {
			elem.Set(reflect.Zero(elem.Type()))
			continue
		}
		v := reflect.ValueOf(row[i])
		if !v.Type().ConvertibleTo(elem.Type()) {
			return fmt.Errorf("fake: cannot assign %T to %s", row[i], elem.Type())
		}
		elem.Set(v.Convert(elem.Type()))
	}
	return nil
}
