// Package statcache is a rebuildable, bbolt-backed acceleration structure
// for hashing working-tree files: it remembers each file's size and
// modification time alongside the content hash computed for it last time,
// so a repeated status/stage/commit over an unchanged file can skip
// re-hashing its bytes. It never affects correctness — a cache miss or a
// stale/missing database simply falls back to hashing the file directly —
// and nothing in the core object model (C1-C3) depends on it existing.
//
// Adapted from the teacher's internal/store bbolt key-value wrapper
// (single bucket, hex-encoded digests) and its reference-counted shared-DB
// manager, repurposed here for one bucket of path -> cached-stat records
// instead of the teacher's key/blake3/sha256/git cross-reference buckets.
package statcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.etcd.io/bbolt"

	"github.com/snapfs-vcs/snapfs/internal/hashid"
	"github.com/snapfs-vcs/snapfs/internal/tree"
)

var bucketStats = []byte("stats")

// Entry is a cached observation of a file's content hash as of a specific
// size and modification time.
type Entry struct {
	Size    int64         `json:"size"`
	ModTime int64         `json:"mod_time_unix_nano"`
	HashId  hashid.HashId `json:"hashid"`
}

// DB is a handle onto a repository's stat cache.
type DB struct {
	bolt *bbolt.DB
}

// Open opens (creating if necessary) the stat cache at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("statcache: mkdir: %w", err)
	}
	db, err := bbolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, fmt.Errorf("statcache: open %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketStats)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("statcache: create bucket: %w", err)
	}
	return &DB{bolt: db}, nil
}

// Close releases the underlying bbolt handle.
func (db *DB) Close() error { return db.bolt.Close() }

// Lookup returns the cached entry for path, matching it against the
// file's current size and modification time so a changed-but-same-size
// file (or a clock rollback) is treated as a miss.
func (db *DB) Lookup(path string, size, modTime int64) (hashid.HashId, bool) {
	var entry Entry
	found := false
	_ = db.bolt.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketStats).Get([]byte(path))
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil
		}
		found = entry.Size == size && entry.ModTime == modTime
		return nil
	})
	if !found {
		return "", false
	}
	return entry.HashId, true
}

// Store records the content hash observed for path at a given size and
// modification time, overwriting any prior entry.
func (db *DB) Store(path string, size, modTime int64, id hashid.HashId) error {
	data, err := json.Marshal(Entry{Size: size, ModTime: modTime, HashId: id})
	if err != nil {
		return fmt.Errorf("statcache: encode entry: %w", err)
	}
	return db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketStats).Put([]byte(path), data)
	})
}

// ContentHash resolves a FileEntry's content hash the way tree.FileEntry's
// own ContentHash does, but consults the cache first for a working-copy
// entry (one with a Path and no already-known HashId), and records what it
// computes for next time.
func (db *DB) ContentHash(fe tree.FileEntry) (hashid.HashId, error) {
	if fe.IsBlob && fe.HashId != "" {
		return fe.HashId, nil
	}
	if fe.Path == "" {
		return fe.ContentHash() // surfaces the same error tree.FileEntry would
	}

	info, err := os.Stat(fe.Path)
	if err != nil {
		return "", fmt.Errorf("statcache: stat %s: %w", fe.Path, err)
	}
	if id, ok := db.Lookup(fe.Path, info.Size(), info.ModTime().UnixNano()); ok {
		return id, nil
	}

	id, err := hashid.HashFile(fe.Path)
	if err != nil {
		return "", err
	}
	if err := db.Store(fe.Path, info.Size(), info.ModTime().UnixNano(), id); err != nil {
		return "", fmt.Errorf("statcache: store entry: %w", err)
	}
	return id, nil
}

// manager shares one *DB per stat-cache path across callers in-process, so
// repeated repo.Open calls against the same repository don't each take an
// independent bbolt file lock (bbolt allows only one writer per file).
type manager struct {
	mu   sync.Mutex
	path string
	db   *DB
	refs int
}

var (
	sharedMu sync.Mutex
	shared   *manager
)

// Shared returns a reference-counted DB for the stat cache at path. Call
// Close on the returned handle when done; the underlying bbolt database
// closes once the last reference is released.
func Shared(path string) (*Handle, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil || shared.path != path {
		if shared != nil {
			_ = shared.db.Close()
		}
		db, err := Open(path)
		if err != nil {
			return nil, err
		}
		shared = &manager{path: path, db: db}
	}
	shared.refs++
	return &Handle{DB: shared.db, m: shared}, nil
}

// Handle is a reference-counted stat-cache handle obtained from Shared.
type Handle struct {
	*DB
	m *manager
}

// Close decrements the reference count, closing the underlying database
// once no handle remains.
func (h *Handle) Close() error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	h.m.refs--
	if h.m.refs <= 0 {
		err := h.m.db.Close()
		if shared == h.m {
			shared = nil
		}
		return err
	}
	return nil
}
