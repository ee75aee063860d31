//go:build cgo
// +build cgo

package vsearch

import (
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"
)

func connect(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("sqlite3", dsn)
}
