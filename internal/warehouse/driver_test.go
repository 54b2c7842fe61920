// Copyright (c) 2026 Snowq
// Licensed under the MIT License. See LICENSE file in the project root for details.

package warehouse

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
	"testing"
)

// fakeDriver serves canned results keyed by query text so executor and
// inspector logic can be tested without a live warehouse.
type fakeDriver struct {
	mu      sync.Mutex
	results map[string]fakeResult
}

type fakeResult struct {
	columns []string
	rows    [][]driver.Value
	err     error
}

var testDriver = &fakeDriver{results: map[string]fakeResult{}}

func init() {
	sql.Register("warehousetest", testDriver)
}

func (d *fakeDriver) set(query string, r fakeResult) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.results[query] = r
}

func (d *fakeDriver) Open(string) (driver.Conn, error) { return &fakeConn{d: d}, nil }

type fakeConn struct{ d *fakeDriver }

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}
func (c *fakeConn) Close() error              { return nil }
func (c *fakeConn) Begin() (driver.Tx, error) { return nil, errors.New("transactions not supported") }

func (c *fakeConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.d.mu.Lock()
	r, ok := c.d.results[query]
	c.d.mu.Unlock()
	if !ok {
		return nil, errors.New("unexpected query: " + query)
	}
	if r.err != nil {
		return nil, r.err
	}
	return &fakeRows{result: r}, nil
}

type fakeRows struct {
	result fakeResult
	idx    int
}

func (r *fakeRows) Columns() []string { return r.result.columns }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.result.rows) {
		return io.EOF
	}
	copy(dest, r.result.rows[r.idx])
	r.idx++
	return nil
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("warehousetest", "test")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
