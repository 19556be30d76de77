package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	verrors "github.com/mwantia/vshell/data/errors"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps every snapshot slot as a single row.
// The dbPath can be ":memory:" for an in-memory database or a file path.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// An in-memory database only lives as long as its single connection
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	store := &SQLiteStore{
		db: db,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// initSchema creates the database schema.
func (ss *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS vshell_snapshots (
		slot TEXT PRIMARY KEY,
		content BLOB NOT NULL,
		size INTEGER NOT NULL CHECK(size >= 0),
		modify_time INTEGER NOT NULL
	);
	`

	_, err := ss.db.Exec(schema)
	return err
}

// Returns the identifier name defined for this store
func (*SQLiteStore) Name() string {
	return "sqlite"
}

func (ss *SQLiteStore) Open(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	return ss.db.PingContext(ctx)
}

func (ss *SQLiteStore) Close(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	return ss.db.Close()
}

func (ss *SQLiteStore) Write(ctx context.Context, slot string, content []byte) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vshell_snapshots (slot, content, size, modify_time)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			content = excluded.content,
			size = excluded.size,
			modify_time = excluded.modify_time`,
		slot, content, len(content), time.Now().Unix())
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (ss *SQLiteStore) Read(ctx context.Context, slot string) ([]byte, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	var content []byte
	err := ss.db.QueryRowContext(ctx,
		"SELECT content FROM vshell_snapshots WHERE slot = ?",
		slot).Scan(&content)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, verrors.SnapshotNotExist(nil, slot)
	}
	if err != nil {
		return nil, err
	}
	return content, nil
}
