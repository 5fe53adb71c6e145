package dataset

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/temurag74-ship-it/CA-AirBoard-Dashboard/domain/program"
)

// Loader reads the source table. Satisfied by excel.TableReader.
type Loader interface {
	ReadTable() (program.Table, error)
}

// Store owns the raw table for the process lifetime. Loading happens at
// most once: concurrent first hits share a single read via singleflight,
// and a successful load is cached until shutdown. A failed load is not
// cached, so the next request retries.
//
// The cached table is shared read-only across sessions and must never be
// mutated after load.
type Store struct {
	loader Loader
	group  singleflight.Group

	mu       sync.RWMutex
	table    program.Table
	loaded   bool
	loadedAt time.Time
}

// NewStore creates a store around the given loader.
func NewStore(loader Loader) *Store {
	return &Store{loader: loader}
}

// Table returns the cached table, loading it on first access.
func (s *Store) Table(ctx context.Context) (program.Table, error) {
	s.mu.RLock()
	if s.loaded {
		table := s.table
		s.mu.RUnlock()
		return table, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.group.Do("table", func() (interface{}, error) {
		// Re-check under the write path: another caller may have won the
		// singleflight round before us.
		s.mu.RLock()
		if s.loaded {
			table := s.table
			s.mu.RUnlock()
			return table, nil
		}
		s.mu.RUnlock()

		start := time.Now()
		table, err := s.loader.ReadTable()
		if err != nil {
			log.Printf("[Store] Load failed: %v", err)
			return nil, err
		}

		s.mu.Lock()
		s.table = table
		s.loaded = true
		s.loadedAt = time.Now()
		s.mu.Unlock()

		log.Printf("[Store] Loaded %d records in %.2fms", len(table),
			float64(time.Since(start).Nanoseconds())/1e6)
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(program.Table), nil
}

// Status reports whether the table is loaded, its row count, and when the
// load completed.
func (s *Store) Status() (loaded bool, rows int, loadedAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded, len(s.table), s.loadedAt
}
