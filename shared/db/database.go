package db

import (
	"database/sql"
)

// Database owns the lifecycle of the process-wide connection pool.
// Connect is called once at start-up and Close at shutdown; DB hands the pool to repositories.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
