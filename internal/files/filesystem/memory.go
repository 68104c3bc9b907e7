package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystem in memory for testing.
// Paths use forward slashes; relative paths resolve against the root.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry // absolute path -> entry
	root    string
	tempSeq int
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))
	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.entries[root] = newDirEntry(root)
	return mfs
}

func newDirEntry(p string) *memoryEntry {
	return &memoryEntry{info: &memoryFileInfo{
		name:    path.Base(p),
		mode:    0755 | fs.ModeDir,
		modTime: time.Now(),
		isDir:   true,
	}}
}

// resolve converts p to a clean absolute path within the virtual filesystem.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(p string, content string) {
	if err := mfs.WriteFile(p, []byte(content)); err != nil {
		panic(err)
	}
}

// ensureDirectoriesExist creates directory entries for all parent directories.
// Callers hold mu.
func (mfs *MemoryFileSystem) ensureDirectoriesExist(absPath string) {
	dir := path.Dir(absPath)
	if dir == absPath {
		return
	}
	if _, exists := mfs.entries[dir]; exists {
		return
	}
	mfs.entries[dir] = newDirEntry(dir)
	mfs.ensureDirectoriesExist(dir)
}

func (mfs *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	abs := mfs.resolve(p)
	entry, ok := mfs.entries[abs]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	if entry.info.isDir {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fmt.Errorf("is a directory")}
	}
	out := make([]byte, len(entry.content))
	copy(out, entry.content)
	return out, nil
}

func (mfs *MemoryFileSystem) WriteFile(p string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.resolve(p)
	if entry, ok := mfs.entries[abs]; ok && entry.info.isDir {
		return &fs.PathError{Op: "write", Path: p, Err: fmt.Errorf("is a directory")}
	}
	content := make([]byte, len(data))
	copy(content, data)
	mfs.entries[abs] = &memoryEntry{
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
	}
	mfs.ensureDirectoriesExist(abs)
	return nil
}

func (mfs *MemoryFileSystem) MkdirTemp(dir, pattern string) (string, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	base := mfs.root
	if dir != "" {
		base = mfs.resolve(dir)
	}
	for {
		mfs.tempSeq++
		seq := fmt.Sprintf("%d", mfs.tempSeq)
		name := pattern + seq
		if i := strings.LastIndex(pattern, "*"); i >= 0 {
			name = pattern[:i] + seq + pattern[i+1:]
		}
		abs := path.Join(base, name)
		if _, exists := mfs.entries[abs]; exists {
			continue
		}
		mfs.entries[abs] = newDirEntry(abs)
		mfs.ensureDirectoriesExist(abs)
		return abs, nil
	}
}

func (mfs *MemoryFileSystem) RemoveAll(p string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.resolve(p)
	for entryPath := range mfs.entries {
		if entryPath == abs || strings.HasPrefix(entryPath, abs+"/") {
			delete(mfs.entries, entryPath)
		}
	}
	return nil
}

func (mfs *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, ok := mfs.entries[mfs.resolve(p)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return entry.info, nil
}

// Files returns the paths of all regular files, sorted.
func (mfs *MemoryFileSystem) Files() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var files []string
	for p, entry := range mfs.entries {
		if !entry.info.isDir {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files
}
