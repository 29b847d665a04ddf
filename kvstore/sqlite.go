package kvstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver, no CGO required
)

const createTableStmt = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// SQLiteRepo is a Repo backed by a single-table SQLite database.
type SQLiteRepo struct {
	conn *sql.DB
}

var _ Repo = (*SQLiteRepo)(nil)

// NewSQLite opens (creating if necessary) the database at path and ensures
// the kv table exists. WAL journaling keeps concurrent readers cheap.
func NewSQLite(path string) (*SQLiteRepo, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("[NewSQLite] failed to create storage directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("[NewSQLite] failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("[NewSQLite] failed to ping database: %w", err)
	}

	if _, err := conn.Exec(createTableStmt); err != nil {
		return nil, fmt.Errorf("[NewSQLite] failed to create kv table: %w", err)
	}

	return &SQLiteRepo{conn: conn}, nil
}

func (r *SQLiteRepo) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := r.conn.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("[SQLiteRepo Get] %w", err)
	}
	return value, true, nil
}

func (r *SQLiteRepo) Set(key string, value []byte) error {
	_, err := r.conn.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("[SQLiteRepo Set] %w", err)
	}
	return nil
}

func (r *SQLiteRepo) Delete(key string) error {
	if _, err := r.conn.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("[SQLiteRepo Delete] %w", err)
	}
	return nil
}

func (r *SQLiteRepo) Close() error {
	return r.conn.Close()
}
