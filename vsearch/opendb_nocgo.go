//go:build !cgo
// +build !cgo

package vsearch

import (
	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite"
)

func connect(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("sqlite", dsn)
}
