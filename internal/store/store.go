// Package store implements the content-addressed object store (C3): a
// "blobs/" directory holding all three object kinds — file blob, tree,
// commit — under their hash fan-out path, written once, read-only
// thereafter, and deduplicated by content hash.
//
// On-disk object bytes are transparently zstd-compressed (grounded on the
// teacher's internal/objects zstd blob framing); hashing always happens
// over the uncompressed canonical bytes, so compression never affects a
// HashId or the store's deduplication guarantees.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/snapfs-vcs/snapfs/internal/canon"
	"github.com/snapfs-vcs/snapfs/internal/hashid"
	"github.com/snapfs-vcs/snapfs/internal/tree"
)

// ErrObjectNotFound is returned when a referenced object is absent from
// the store (§7 ObjectNotFound).
var ErrObjectNotFound = errors.New("store: object not found")

// pathParts/pathLen mirror the teacher's FileCAS two-level fan-out.
const (
	pathParts = 1
	pathLen   = 2
)

// Store is a handle onto a blobs/ directory. It carries no other state;
// per §5, a Store has no internal locking and assumes a single writer.
type Store struct {
	root string
}

// Open returns a Store handle rooted at dir without touching the
// filesystem; the directory is created lazily on first write (writeIfAbsent
// creates any missing fan-out directories as needed).
func Open(dir string) (*Store, error) {
	return &Store{root: dir}, nil
}

// Root returns the blobs/ directory path.
func (s *Store) Root() string { return s.root }

// PathFor returns the on-disk path for a HashId.
func (s *Store) PathFor(id hashid.HashId) string {
	return filepath.Join(s.root, hashid.ToRelPath(id, pathParts, pathLen))
}

// Has reports whether an object with the given hash is already stored.
func (s *Store) Has(id hashid.HashId) (bool, error) {
	_, err := os.Stat(s.PathFor(id))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("store: stat %s: %w", id, err)
}

// PutBytesAsBlob hashes data, and if no object with that hash already
// exists, writes it (compressed, read-only, atomically via temp+rename).
// Re-putting identical content is a no-op beyond the existence check (P2).
func (s *Store) PutBytesAsBlob(data []byte) (hashid.HashId, error) {
	id := hashid.HashBytes(data)
	if err := s.writeIfAbsent(id, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}); err != nil {
		return "", err
	}
	return id, nil
}

// PutFileAsBlob streams a working-copy file's content into the store
// keyed by its content hash, without loading the whole file into memory.
func (s *Store) PutFileAsBlob(srcPath string) (hashid.HashId, error) {
	id, err := hashid.HashFile(srcPath)
	if err != nil {
		return "", err
	}

	err = s.writeIfAbsent(id, func(w io.Writer) error {
		src, err := os.Open(srcPath)
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// writeIfAbsent writes an object's compressed bytes through fill, using a
// temp-file-then-rename so readers never observe a partial write, then
// marks the final file read-only (§5).
func (s *Store) writeIfAbsent(id hashid.HashId, fill func(io.Writer) error) error {
	if has, err := s.Has(id); err != nil {
		return err
	} else if has {
		return nil
	}

	path := s.PathFor(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("store: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	zw, err := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("store: zstd writer: %w", err)
	}
	if err := fill(zw); err != nil {
		zw.Close()
		return fmt.Errorf("store: write object: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("store: close zstd writer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("store: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("store: rename into place: %w", err)
	}
	cleanup = false

	if err := os.Chmod(path, 0o444); err != nil {
		return fmt.Errorf("store: chmod read-only: %w", err)
	}
	return nil
}

// GetBlobBytes reads and decompresses the raw bytes stored under a hash.
func (s *Store) GetBlobBytes(id hashid.HashId) ([]byte, error) {
	path := s.PathFor(id)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
		}
		return nil, fmt.Errorf("store: open %s: %w", id, err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("store: zstd reader for %s: %w", id, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", id, err)
	}
	return data, nil
}

// PutTree recursively writes a tree's child subtrees and file entries into
// the store, then writes the tree's own {directories, files} mapping.
func (s *Store) PutTree(t *tree.Tree) (hashid.HashId, error) {
	if t == nil {
		t = tree.New()
	}

	dirs := map[string]any{}
	for _, name := range t.SortedDirNames() {
		childId, err := s.PutTree(t.Directories[name])
		if err != nil {
			return "", fmt.Errorf("store: put tree %q: %w", name, err)
		}
		dirs[name] = string(childId)
	}

	files := map[string]any{}
	for _, name := range t.SortedFileNames() {
		fe := t.Files[name]
		fileId, err := s.putFileEntry(fe)
		if err != nil {
			return "", fmt.Errorf("store: put file %q: %w", name, err)
		}
		files[name] = string(fileId)
	}

	data, err := canon.Encode(map[string]any{
		"directories": dirs,
		"files":       files,
	})
	if err != nil {
		return "", fmt.Errorf("store: encode tree: %w", err)
	}
	return s.PutBytesAsBlob(data)
}

func (s *Store) putFileEntry(fe tree.FileEntry) (hashid.HashId, error) {
	if fe.IsBlob && fe.HashId != "" {
		if has, err := s.Has(fe.HashId); err != nil {
			return "", err
		} else if has {
			return fe.HashId, nil
		}
	}
	return s.PutFileAsBlob(fe.Path)
}

// GetTree loads a tree by hash, recursively resolving its subtrees. An
// empty hash resolves to the empty tree without touching the store (I5).
func (s *Store) GetTree(id hashid.HashId) (*tree.Tree, error) {
	if id == "" {
		return tree.New(), nil
	}

	data, err := s.GetBlobBytes(id)
	if err != nil {
		return nil, err
	}
	dict, err := canon.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("store: decode tree %s: %w", id, err)
	}
	dirHashes, err := canon.StringMap(dict, "directories")
	if err != nil {
		return nil, fmt.Errorf("store: tree %s: %w", id, err)
	}
	fileHashes, err := canon.StringMap(dict, "files")
	if err != nil {
		return nil, fmt.Errorf("store: tree %s: %w", id, err)
	}

	result := tree.New()
	for name, childHex := range dirHashes {
		child, err := s.GetTree(hashid.HashId(childHex))
		if err != nil {
			return nil, fmt.Errorf("store: tree %s: subtree %q: %w", id, name, err)
		}
		result.SetDir(name, child)
	}
	for name, fileHex := range fileHashes {
		fileId := hashid.HashId(fileHex)
		result.Set(name, tree.FileEntry{
			Path:     "",
			IsBlob:   true,
			BlobPath: s.PathFor(fileId),
			HashId:   fileId,
		})
	}
	return result, nil
}

// PutCommit serializes and stores a commit object.
func (s *Store) PutCommit(c tree.Commit) (hashid.HashId, error) {
	data, err := canon.Encode(c.ToDict())
	if err != nil {
		return "", fmt.Errorf("store: encode commit: %w", err)
	}
	return s.PutBytesAsBlob(data)
}

// GetCommit loads a commit object by hash.
func (s *Store) GetCommit(id hashid.HashId) (tree.Commit, error) {
	data, err := s.GetBlobBytes(id)
	if err != nil {
		return tree.Commit{}, err
	}
	dict, err := canon.Decode(data)
	if err != nil {
		return tree.Commit{}, fmt.Errorf("store: decode commit %s: %w", id, err)
	}
	c, err := tree.CommitFromDict(dict)
	if err != nil {
		return tree.Commit{}, fmt.Errorf("store: commit %s: %w", id, err)
	}
	return c, nil
}
