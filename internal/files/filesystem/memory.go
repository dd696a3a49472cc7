package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
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

type memoryFile struct {
	content []byte
	info    *memoryFileInfo
	readErr error
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths use forward slashes; relative paths resolve against the root.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile // absolute path -> entry
	root  string
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.files[root] = newDirEntry(root)
	return mfs
}

// Root returns the virtual root directory.
func (mfs *MemoryFileSystem) Root() string {
	return mfs.root
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	absPath := mfs.resolve(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[absPath] = &memoryFile{
		content: []byte(content),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}
	mfs.ensureDirectoriesExist(absPath)
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	absPath := mfs.resolve(dirPath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if _, exists := mfs.files[absPath]; !exists {
		mfs.files[absPath] = newDirEntry(absPath)
	}
	mfs.ensureDirectoriesExist(absPath)
}

// FailReads makes every read of filePath return err. Used to exercise per-file
// error handling.
func (mfs *MemoryFileSystem) FailReads(filePath string, err error) {
	absPath := mfs.resolve(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if f, ok := mfs.files[absPath]; ok {
		f.readErr = err
	}
}

func newDirEntry(absPath string) *memoryFile {
	return &memoryFile{
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

// ensureDirectoriesExist creates directory entries for all parent directories.
// Callers hold mfs.mu.
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == filePath {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.files[dir] = newDirEntry(dir)
	mfs.ensureDirectoriesExist(dir)
}

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

func (mfs *MemoryFileSystem) lookup(p string) (*memoryFile, string, error) {
	absPath := mfs.resolve(p)
	mfs.mu.RLock()
	f, ok := mfs.files[absPath]
	mfs.mu.RUnlock()
	if !ok {
		return nil, absPath, fmt.Errorf("%s: %w", p, fs.ErrNotExist)
	}
	return f, absPath, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]DirEntry, error) {
	dir, absPath, err := mfs.lookup(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	if !dir.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dirPath)
	}
	if dir.readErr != nil {
		return nil, fmt.Errorf("failed to read directory: %w", dir.readErr)
	}

	mfs.mu.RLock()
	var entries []DirEntry
	for p, f := range mfs.files {
		if p != absPath && path.Dir(p) == absPath {
			entries = append(entries, fs.FileInfoToDirEntry(f.info))
		}
	}
	mfs.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// ReadPrefix implements FileSystemProvider.ReadPrefix
func (mfs *MemoryFileSystem) ReadPrefix(filePath string, limit int) ([]byte, bool, error) {
	content, err := mfs.ReadFile(filePath)
	if err != nil {
		return nil, false, err
	}
	if limit < 0 {
		limit = 0
	}
	if len(content) > limit {
		return content[:limit], true, nil
	}
	return content, false, nil
}

// ReadFile implements FileSystemProvider.ReadFile.
// The returned slice is a copy.
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	f, _, err := mfs.lookup(filePath)
	if err != nil {
		return nil, fmt.Errorf("file not found: %w", err)
	}
	if f.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	if f.readErr != nil {
		return nil, f.readErr
	}
	return append([]byte(nil), f.content...), nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	f, _, err := mfs.lookup(statPath)
	if err != nil {
		return nil, fmt.Errorf("path not found: %w", err)
	}
	return f.info, nil
}

// Files returns every regular file path, sorted.
func (mfs *MemoryFileSystem) Files() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	var out []string
	for p, f := range mfs.files {
		if !f.info.IsDir() {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
