package mocks

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync/atomic"
)

// errStatementsUnsupported is returned for any statement sent to a TxDB
// connection. Stores used with a TxDB must ignore the transaction handle.
var errStatementsUnsupported = errors.New("mocks: TxDB connections do not execute statements")

// TxDB is a *sql.DB whose transactions begin, commit and roll back without a
// database. It lets services that call store.RunInTransaction run against the
// in-memory mock stores, whose WithTx ignores the handle.
type TxDB struct {
	*sql.DB

	Begins    atomic.Int64
	Commits   atomic.Int64
	Rollbacks atomic.Int64
}

// NewTxDB opens a TxDB. Close it when the test ends.
func NewTxDB() *TxDB {
	d := &TxDB{}
	d.DB = sql.OpenDB(txConnector{db: d})
	return d
}

type txConnector struct {
	db *TxDB
}

func (c txConnector) Connect(context.Context) (driver.Conn, error) {
	return txConn(c), nil
}

func (c txConnector) Driver() driver.Driver {
	return txDriver{db: c.db}
}

type txDriver struct {
	db *TxDB
}

func (d txDriver) Open(string) (driver.Conn, error) {
	return txConn(d), nil
}

type txConn struct {
	db *TxDB
}

func (c txConn) Prepare(string) (driver.Stmt, error) {
	return nil, errStatementsUnsupported
}

func (c txConn) Close() error {
	return nil
}

func (c txConn) Begin() (driver.Tx, error) {
	c.db.Begins.Add(1)
	return txHandle(c), nil
}

type txHandle struct {
	db *TxDB
}

func (t txHandle) Commit() error {
	t.db.Commits.Add(1)
	return nil
}

func (t txHandle) Rollback() error {
	t.db.Rollbacks.Add(1)
	return nil
}
