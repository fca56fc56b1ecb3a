package facetstore

import (
	"fmt"
	"os"
	"sync"

	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/schema"
)

// Global store instance for main logic.
var (
	globalStore *Store
	initOnce    sync.Once
	closeOnce   sync.Once
)

// InitStore initializes the global facet store. Safe to call multiple times;
// only the first call takes effect.
func InitStore(backend schema.StoreBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		store, err := NewStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize facet store: %w", err)
			return
		}
		globalStore = store
	})
	return initErr
}

// Global returns the initialized store, or nil when InitStore has not run
// (callers treat nil as "no persistence").
func Global() contract.FacetStore {
	if globalStore == nil {
		return nil
	}
	return globalStore
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		if globalStore != nil {
			_ = globalStore.Close()
		}
	})
}

// ClearStore removes persisted facet state for the specified backend. For
// SQLite this deletes the database file; for server backends it deletes the
// stored row through a temporary connection.
func ClearStore(backend schema.StoreBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		store, err := NewStore(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.Clear()

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}
