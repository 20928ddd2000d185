package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// DefaultRecentLimit bounds the recents list when no limit is configured.
const DefaultRecentLimit = 10

// recentsFile is the on-disk form of the recents list.
type recentsFile struct {
	Names     []string  `json:"names"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Recents tracks recently previewed templates, most recent first.
type Recents struct {
	path  string
	limit int
}

// RecentsPath returns the default location of the recents file.
func RecentsPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "vista", "recent.json")
}

// NewRecents returns a recents list stored at path.
func NewRecents(path string, limit int) *Recents {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return &Recents{path: path, limit: limit}
}

// Load returns the stored names. A missing or unreadable file yields nil.
func (r *Recents) Load() []string {
	// Acquire shared (read) lock - blocks if exclusive lock is held
	fileLock := flock.New(r.path + ".lock")
	if err := fileLock.RLock(); err != nil {
		return nil
	}
	defer fileLock.Unlock()

	return r.read()
}

// Add moves name to the front of the list and persists it.
func (r *Recents) Add(name string) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return nil, err
	}

	// Acquire exclusive lock - blocks until lock is available
	fileLock := flock.New(r.path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return nil, err
	}
	defer fileLock.Unlock()

	names := []string{name}
	for _, n := range r.read() {
		if n != name && len(names) < r.limit {
			names = append(names, n)
		}
	}

	data, err := json.Marshal(recentsFile{Names: names, UpdatedAt: time.Now()})
	if err != nil {
		return nil, err
	}

	// Write atomically: write to temp file then rename
	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return nil, err
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return nil, err
	}
	return names, nil
}

// read parses the file; callers hold the lock.
func (r *Recents) read() []string {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}
	var f recentsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	if len(f.Names) > r.limit {
		f.Names = f.Names[:r.limit]
	}
	return f.Names
}
