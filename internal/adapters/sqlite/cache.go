package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	_ "modernc.org/sqlite"

	"shoebox/internal/domain"
	"shoebox/internal/ports"
)

// The in-memory layer in front of the database lets repeated scans of the
// same folders skip SQLite entirely.
const (
	memorySize = 4096
	memoryTTL  = 15 * time.Minute
)

// Cache implements ports.MetadataCache with a SQLite table keyed by
// (path, size, mtime) so any file change invalidates the entry.
type Cache struct {
	db     *sql.DB
	memory *expirable.LRU[string, domain.Derivation]
	dbPath string
}

// Ensure Cache implements MetadataCache
var _ ports.MetadataCache = (*Cache)(nil)

// NewCache opens the cache database at dbPath, creating it if needed
func NewCache(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS derivations (
			path TEXT NOT NULL,
			size INTEGER NOT NULL,
			mtime INTEGER NOT NULL,
			label TEXT NOT NULL,
			taken_at INTEGER,
			modified_at INTEGER,
			cached_at INTEGER NOT NULL,
			PRIMARY KEY (path, size, mtime)
		);
		CREATE INDEX IF NOT EXISTS idx_derivations_cached_at ON derivations(cached_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup cache database: %w", err)
	}

	return &Cache{
		db:     db,
		memory: expirable.NewLRU[string, domain.Derivation](memorySize, nil, memoryTTL),
		dbPath: dbPath,
	}, nil
}

// DefaultPath returns the cache location under the XDG data directory
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "shoebox", "cache.db")
}

// Lookup returns the cached derivation, or nil on a miss
func (c *Cache) Lookup(path string, size int64, modTime time.Time) (*domain.Derivation, error) {
	mtime := modTime.Unix()
	key := memoryKey(path, size, mtime)
	if d, ok := c.memory.Get(key); ok {
		return &d, nil
	}

	var (
		label      string
		takenAt    sql.NullInt64
		modifiedAt sql.NullInt64
	)
	err := c.db.QueryRow(`
		SELECT label, taken_at, modified_at
		FROM derivations WHERE path = ? AND size = ? AND mtime = ?
	`, path, size, mtime).Scan(&label, &takenAt, &modifiedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	d := domain.Derivation{
		Label:      label,
		TakenAt:    timeColumn(takenAt),
		ModifiedAt: timeColumn(modifiedAt),
	}
	c.memory.Add(key, d)
	return &d, nil
}

// Store saves a derivation for the given file signature
func (c *Cache) Store(path string, size int64, modTime time.Time, d domain.Derivation) error {
	mtime := modTime.Unix()
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO derivations
			(path, size, mtime, label, taken_at, modified_at, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, path, size, mtime, d.Label, columnTime(d.TakenAt), columnTime(d.ModifiedAt), time.Now().Unix())
	if err != nil {
		return err
	}

	c.memory.Add(memoryKey(path, size, mtime), d)
	return nil
}

// Prune deletes entries cached before the cutoff
func (c *Cache) Prune(olderThan time.Time) (int64, error) {
	res, err := c.db.Exec(`DELETE FROM derivations WHERE cached_at < ?`, olderThan.Unix())
	if err != nil {
		return 0, err
	}
	c.memory.Purge()
	return res.RowsAffected()
}

// Clear drops every cached entry
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM derivations`); err != nil {
		return err
	}
	c.memory.Purge()
	return nil
}

// Close closes the database connection
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func memoryKey(path string, size, mtime int64) string {
	return fmt.Sprintf("%s|%d|%d", path, size, mtime)
}

// Times are stored as nanoseconds so a cached derivation round-trips
// exactly; NULL marks an absent date.
func columnTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixNano()
}

func timeColumn(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(0, v.Int64).UTC()
	return &t
}
