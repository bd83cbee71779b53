// Package store defines the persistence interfaces used by the services,
// the DBTX abstraction shared by *sql.DB and *sql.Tx, transaction handling,
// and the sentinel errors every store implementation returns.
package store
