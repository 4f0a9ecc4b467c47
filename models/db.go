package models

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

var (
	memDB    *sql.DB      // In-memory cache for fast reads
	diskDB   *sql.DB      // Persistent storage
	diskPath string       // Empty when the catalog is not persisted
	dbMu     sync.RWMutex // Protect concurrent access during writes
	stopSync chan struct{}
)

// catalogTables in dependency order for copying between databases.
var catalogTables = []string{"stores", "products", "price_history"}

// InitDB opens the disk database at path plus an in-memory read cache,
// migrates both and loads existing rows into memory. An empty path keeps
// everything in memory.
func InitDB(path string) error {
	var err error
	diskPath = path

	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return serr.Wrap(err, "failed to create database directory")
			}
		}
	}

	diskDB, err = sql.Open("duckdb", path)
	if err != nil {
		return serr.Wrap(err, "failed to open disk database")
	}

	// DuckDB's go driver uses an empty DSN for in-memory databases
	memDB, err = sql.Open("duckdb", "")
	if err != nil {
		return serr.Wrap(err, "failed to open memory database")
	}

	if err := migrateBoth(); err != nil {
		return serr.Wrap(err, "failed to migrate databases")
	}

	if err := syncDiskToMemory(); err != nil {
		return serr.Wrap(err, "failed to sync data to memory")
	}

	stopSync = make(chan struct{})
	go startSyncWorker(stopSync)

	return nil
}

// CloseDB closes both database connections
func CloseDB() {
	if stopSync != nil {
		close(stopSync)
		stopSync = nil
	}
	if memDB != nil {
		memDB.Close()
		memDB = nil
	}
	if diskDB != nil {
		diskDB.Close()
		diskDB = nil
	}
}

// Ping reports whether both databases answer.
func Ping() error {
	dbMu.RLock()
	defer dbMu.RUnlock()

	if memDB == nil || diskDB == nil {
		return serr.New("database not initialized")
	}
	if err := diskDB.Ping(); err != nil {
		return serr.Wrap(err, "disk database unreachable")
	}
	return memDB.Ping()
}

func migrateBoth() error {
	if err := migrateDB(diskDB); err != nil {
		return serr.Wrap(err, "disk migration failed")
	}
	if err := migrateDB(memDB); err != nil {
		return serr.Wrap(err, "memory migration failed")
	}
	return nil
}

// syncDiskToMemory loads all data from disk into memory cache
func syncDiskToMemory() error {
	if diskPath == "" {
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ATTACH '%s' AS disk_db (READ_ONLY);\n", strings.ReplaceAll(diskPath, "'", "''"))
	for _, table := range catalogTables {
		fmt.Fprintf(&sb, "INSERT OR IGNORE INTO %s SELECT * FROM disk_db.%s;\n", table, table)
	}
	sb.WriteString("DETACH disk_db;")

	if _, err := memDB.Exec(sb.String()); err != nil {
		// The disk file is already open by this process, so ATTACH may be refused
		logger.Debug("ATTACH unavailable, copying tables row by row", "reason", err.Error())
		return manualSync()
	}

	logger.Info("Synced disk catalog to memory cache")
	return nil
}

// manualSync copies every catalog table from disk to memory
func manualSync() error {
	for _, table := range catalogTables {
		if err := copyTable(table); err != nil {
			return err
		}
	}
	return nil
}

func copyTable(table string) error {
	rows, err := diskDB.Query("SELECT * FROM " + table)
	if err != nil {
		return serr.Wrap(err, "failed to read from disk", "table", table)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return serr.Wrap(err, "failed to read columns", "table", table)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	stmt, err := memDB.Prepare("INSERT OR IGNORE INTO " + table + " VALUES (" + placeholders + ")")
	if err != nil {
		return serr.Wrap(err, "failed to prepare insert", "table", table)
	}
	defer stmt.Close()

	values := make([]any, len(cols))
	valuePtrs := make([]any, len(cols))
	for i := range values {
		valuePtrs[i] = &values[i]
	}

	copied := 0
	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			logger.LogErr(err, "failed to scan row", "table", table)
			continue
		}
		if _, err := stmt.Exec(values...); err != nil {
			logger.LogErr(err, "failed to insert into memory", "table", table)
			continue
		}
		copied++
	}
	logger.Debug("Copied table to memory", "table", table, "rows", copied)
	return rows.Err()
}

// WriteThrough writes to both databases ensuring consistency
func WriteThrough(query string, args ...any) error {
	dbMu.Lock()
	defer dbMu.Unlock()

	// Disk first for durability
	if _, err := diskDB.Exec(query, args...); err != nil {
		return serr.Wrap(err, "failed to write to disk")
	}

	if _, err := memDB.Exec(query, args...); err != nil {
		// Disk write succeeded; resync later
		logger.LogErr(err, "failed to update memory cache")
		markCacheDirty()
	}
	return nil
}

// ReadFromCache performs fast reads from memory
func ReadFromCache(query string, args ...any) (*sql.Rows, error) {
	dbMu.RLock()
	defer dbMu.RUnlock()

	rows, err := memDB.Query(query, args...)
	if err != nil {
		logger.LogErr(err, "cache read failed, falling back to disk")
		return diskDB.Query(query, args...)
	}
	return rows, nil
}

// QueryRowFromCache performs single row query from cache
func QueryRowFromCache(query string, args ...any) *sql.Row {
	dbMu.RLock()
	defer dbMu.RUnlock()

	return memDB.QueryRow(query, args...)
}

// DualTx is a transaction spanning both databases.
type DualTx struct {
	diskTx    *sql.Tx
	memTx     *sql.Tx
	committed bool // Commit unlocks the mutex; Rollback must not unlock again
}

// BeginDualTx starts a transaction on both databases
func BeginDualTx() (*DualTx, error) {
	dbMu.Lock()

	diskTx, err := diskDB.Begin()
	if err != nil {
		dbMu.Unlock()
		return nil, serr.Wrap(err, "failed to begin disk transaction")
	}

	memTx, err := memDB.Begin()
	if err != nil {
		diskTx.Rollback()
		dbMu.Unlock()
		return nil, serr.Wrap(err, "failed to begin memory transaction")
	}

	return &DualTx{diskTx: diskTx, memTx: memTx}, nil
}

// Exec executes query on both transactions
func (dt *DualTx) Exec(query string, args ...any) error {
	if _, err := dt.diskTx.Exec(query, args...); err != nil {
		return err
	}
	if _, err := dt.memTx.Exec(query, args...); err != nil {
		logger.LogErr(err, "memory tx exec failed")
		markCacheDirty()
	}
	return nil
}

// Commit commits both transactions
func (dt *DualTx) Commit() error {
	defer func() {
		dt.committed = true
		dbMu.Unlock()
	}()

	if err := dt.diskTx.Commit(); err != nil {
		dt.memTx.Rollback()
		return serr.Wrap(err, "failed to commit disk transaction")
	}

	if err := dt.memTx.Commit(); err != nil {
		logger.LogErr(err, "failed to commit memory transaction")
		markCacheDirty()
	}
	return nil
}

// Rollback rolls back both transactions
func (dt *DualTx) Rollback() error {
	if dt.committed {
		return nil
	}
	defer dbMu.Unlock()

	dt.diskTx.Rollback()
	dt.memTx.Rollback()
	dt.committed = true
	return nil
}

// Cache management
var (
	cacheDirty bool
	cacheMu    sync.Mutex
)

func markCacheDirty() {
	cacheMu.Lock()
	cacheDirty = true
	cacheMu.Unlock()
}

func isCacheDirty() bool {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	return cacheDirty
}

// startSyncWorker periodically rebuilds the memory cache when a write
// reached disk but not memory.
func startSyncWorker(stop <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !isCacheDirty() {
				continue
			}
			logger.Info("Cache marked dirty, resyncing...")
			if err := resyncCache(); err != nil {
				logger.LogErr(err, "failed to resync cache")
				continue
			}
			cacheMu.Lock()
			cacheDirty = false
			cacheMu.Unlock()
		}
	}
}

// resyncCache rebuilds the memory cache from disk
func resyncCache() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if diskPath == "" {
		return nil // memory is the only copy
	}

	for i := len(catalogTables) - 1; i >= 0; i-- {
		_, _ = memDB.Exec("DELETE FROM " + catalogTables[i])
	}
	return manualSync()
}
