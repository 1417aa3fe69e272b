package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

const sqliteStations = `
	CREATE TABLE IF NOT EXISTS stations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		address TEXT NOT NULL DEFAULT '',
		lat TEXT NOT NULL DEFAULT '',
		lon TEXT NOT NULL DEFAULT ''
	);
`
const sqliteTenants = `
	CREATE TABLE IF NOT EXISTS tenants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		address TEXT NOT NULL UNIQUE,
		price INTEGER NOT NULL DEFAULT 0,
		floor TEXT NOT NULL DEFAULT '',
		station_name TEXT NOT NULL DEFAULT '',
		detail_url TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		shikikin INTEGER NOT NULL DEFAULT 0,
		reikin INTEGER NOT NULL DEFAULT 0,
		hoshokin INTEGER NOT NULL DEFAULT 0,
		kaiyakukin INTEGER NOT NULL DEFAULT 0
	);
`
const sqlitePosts = `
	CREATE TABLE IF NOT EXISTS posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(50) NOT NULL,
		body VARCHAR(300) NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
`

const postgresStations = `
	CREATE TABLE IF NOT EXISTS stations (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		address TEXT NOT NULL DEFAULT '',
		lat TEXT NOT NULL DEFAULT '',
		lon TEXT NOT NULL DEFAULT ''
	);
`
const postgresTenants = `
	CREATE TABLE IF NOT EXISTS tenants (
		id BIGSERIAL PRIMARY KEY,
		address TEXT NOT NULL UNIQUE,
		price BIGINT NOT NULL DEFAULT 0,
		floor TEXT NOT NULL DEFAULT '',
		station_name TEXT NOT NULL DEFAULT '',
		detail_url TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		shikikin BIGINT NOT NULL DEFAULT 0,
		reikin BIGINT NOT NULL DEFAULT 0,
		hoshokin BIGINT NOT NULL DEFAULT 0,
		kaiyakukin BIGINT NOT NULL DEFAULT 0
	);
`
const postgresPosts = `
	CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(50) NOT NULL,
		body VARCHAR(300) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
`

var bootQueries = map[string][]string{
	DriverSQLite:   {sqliteStations, sqliteTenants, sqlitePosts},
	DriverPostgres: {postgresStations, postgresTenants, postgresPosts},
}

type Settings struct {
	Driver string
	DSN    string
}

// DB wraps a connection pool together with the SQL dialect it speaks.
type DB struct {
	*sql.DB
	driver string
}

// NewDB opens the database and creates the application tables.
func NewDB(ctx context.Context, settings Settings) (*DB, error) {
	driver := settings.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	queries, ok := bootQueries[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sql.Open(driver, settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// a single writer avoids "database is locked" under concurrent requests
		conn.SetMaxOpenConns(1)
	}

	for _, query := range queries {
		if _, err := conn.ExecContext(ctx, query); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return &DB{DB: conn, driver: driver}, nil
}

// Wrap adopts an existing connection, e.g. a sqlmock one, without running
// the schema bootstrap.
func Wrap(conn *sql.DB, driver string) *DB {
	return &DB{DB: conn, driver: driver}
}

// Rebind rewrites '?' placeholders into the form expected by the driver.
func (db *DB) Rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
