package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ceaplens/ceaplens/schema"
)

// snapshotMemo caches the most recent derived snapshot keyed by a signature
// of the filter state and dataset. A single entry suffices: consumers rebuild
// on every filter change and only the latest state is ever re-read. Safe
// because snapshots are treated as immutable once returned.
type snapshotMemo struct {
	mu   sync.Mutex
	key  string
	snap *schema.Snapshot
}

var derivedMemo snapshotMemo

// get returns the cached snapshot for the key, or nil on miss.
func (m *snapshotMemo) get(key string) *schema.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.key == key {
		return m.snap
	}
	return nil
}

// set stores the snapshot under the key, evicting the previous entry.
func (m *snapshotMemo) set(key string, snap *schema.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.key = key
	m.snap = snap
}

// snapshotKey builds a signature covering everything the derived snapshot
// depends on: the canonical facet selections, the search query (it changes
// the filtered list), and a dataset fingerprint so a refetched dataset never
// serves stale aggregates.
func snapshotKey(fs *FilterState, deputyCount int, baseline *schema.Snapshot) string {
	sel, _ := json.Marshal(fs.Selections())
	lastUpdated := ""
	if baseline != nil {
		lastUpdated = baseline.Meta.LastUpdated
	}
	key := fmt.Sprintf("%s:%s:%d:%s", sel, fs.Search(), deputyCount, lastUpdated)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// DerivedSnapshot runs the full filter, recompute and aggregation pipeline,
// memoizing the result for the most recent filter state. The returned
// snapshot must never be mutated.
func DerivedSnapshot(deputies []schema.Deputy, fs *FilterState, baseline *schema.Snapshot) *schema.Snapshot {
	key := snapshotKey(fs, len(deputies), baseline)
	if snap := derivedMemo.get(key); snap != nil {
		return snap
	}

	filtered := ApplyFilters(deputies, fs, TrackedYears(baseline))
	recomputed := RecomputeScalars(filtered, fs)
	snap := BuildSnapshot(recomputed, fs, baseline)

	derivedMemo.set(key, snap)
	return snap
}
