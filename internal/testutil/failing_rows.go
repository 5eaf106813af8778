package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"strings"

	"github.com/alexanderramin/tably/internal/db"
)

// FailRowsDBTX passes every call to DBTX except queries containing Match.
// Those return Rows one by one and then fail iteration with Err, the way a
// driver error surfaces halfway through a result set.
type FailRowsDBTX struct {
	db.DBTX
	Match   string
	Columns []string
	Rows    [][]driver.Value
	Err     error
}

func (f *FailRowsDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if !strings.Contains(query, f.Match) {
		return f.DBTX.QueryContext(ctx, query, args...)
	}
	conn := sql.OpenDB(&failingConnector{columns: f.Columns, rows: f.Rows, err: f.Err})
	return conn.QueryContext(ctx, query)
}

type failingConnector struct {
	columns []string
	rows    [][]driver.Value
	err     error
}

func (c *failingConnector) Connect(context.Context) (driver.Conn, error) {
	return &failingConn{c: c}, nil
}

func (c *failingConnector) Driver() driver.Driver { return failingDriver{c: c} }

type failingDriver struct{ c *failingConnector }

func (d failingDriver) Open(string) (driver.Conn, error) { return &failingConn{c: d.c}, nil }

type failingConn struct{ c *failingConnector }

func (fc *failingConn) Prepare(string) (driver.Stmt, error) { return &failingStmt{c: fc.c}, nil }
func (fc *failingConn) Close() error                        { return nil }
func (fc *failingConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

type failingStmt struct{ c *failingConnector }

func (s *failingStmt) Close() error  { return nil }
func (s *failingStmt) NumInput() int { return -1 }

func (s *failingStmt) Exec([]driver.Value) (driver.Result, error) { return nil, driver.ErrSkip }

func (s *failingStmt) Query([]driver.Value) (driver.Rows, error) {
	return &failingRows{c: s.c}, nil
}

type failingRows struct {
	c    *failingConnector
	next int
}

func (r *failingRows) Columns() []string { return r.c.columns }
func (r *failingRows) Close() error      { return nil }

func (r *failingRows) Next(dest []driver.Value) error {
	if r.next < len(r.c.rows) {
		copy(dest, r.c.rows[r.next])
		r.next++
		return nil
	}
	if r.c.err == nil {
		return io.EOF
	}
	return r.c.err
}
