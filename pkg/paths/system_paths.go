package paths

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/pathfinder/pkg/domain"
)

const fileScheme = "file://"

// FindFileCallback resolves a file name the search paths could not.
// It returns "" when it has no answer.
type FindFileCallback func(file string) string

// FindFileURICallback resolves a URI with a scheme other than file://.
// It returns "" when it has no answer.
type FindFileURICallback func(uri string) string

type memoKey struct {
	file  string
	local bool
}

// SystemPaths resolves file names against search paths, suffixes and callbacks.
// Safe for concurrent use.
type SystemPaths struct {
	mu          sync.RWMutex
	filePathEnv string
	filePaths   []string
	suffixes    []string
	fileCBs     []FindFileCallback
	uriCBs      []FindFileURICallback
	workingDir  string
	memoEnabled bool
	memo        map[memoKey]string
	// memoGen advances whenever the memo is reset so lookups that began
	// before a mutation cannot store their result afterwards.
	memoGen uint64

	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// New creates a resolver. Without options it reads DefaultFilePathEnv,
// searches the process working directory and does not memoise lookups.
func New(opts ...Option) *SystemPaths {
	s := &SystemPaths{
		filePathEnv: DefaultFilePathEnv,
		memo:        make(map[memoKey]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// PathDelimiter returns the separator used in path list strings.
func PathDelimiter() string {
	return string(filepath.ListSeparator)
}

// NormalizeDirectory converts separators to the host form and cleans dir.
// An empty input stays empty.
func NormalizeDirectory(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return ""
	}
	return filepath.Clean(filepath.FromSlash(dir))
}

func normalizeSuffix(suffix string) string {
	s := filepath.FromSlash(strings.TrimSpace(suffix))
	s = strings.Trim(s, string(os.PathSeparator))
	if s == "" {
		return ""
	}
	return filepath.Clean(s)
}

// FilePathEnv returns the environment variable read for search paths.
func (s *SystemPaths) FilePathEnv() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filePathEnv
}

// SetFilePathEnv changes the environment variable read for search paths.
func (s *SystemPaths) SetFilePathEnv(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filePathEnv = name
	s.resetMemoLocked()
}

// FilePaths returns the environment paths followed by the added paths, without duplicates.
func (s *SystemPaths) FilePaths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filePathsLocked()
}

func (s *SystemPaths) filePathsLocked() []string {
	var out []string
	if s.filePathEnv != "" {
		for _, p := range filepath.SplitList(os.Getenv(s.filePathEnv)) {
			if p = NormalizeDirectory(p); p != "" && !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	for _, p := range s.filePaths {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// AddFilePaths appends every entry of a PathDelimiter-separated list.
func (s *SystemPaths) AddFilePaths(list string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addFilePathsLocked(list)
	s.resetMemoLocked()
}

func (s *SystemPaths) addFilePathsLocked(list string) {
	for _, p := range filepath.SplitList(list) {
		if p = NormalizeDirectory(p); p != "" && !slices.Contains(s.filePaths, p) {
			s.filePaths = append(s.filePaths, p)
		}
	}
}

// ClearFilePaths forgets every added path. Environment paths are unaffected.
func (s *SystemPaths) ClearFilePaths() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filePaths = nil
	s.resetMemoLocked()
}

// AddSearchPathSuffix registers a sub-directory tried under every search path.
func (s *SystemPaths) AddSearchPathSuffix(suffix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addSuffixLocked(suffix)
	s.resetMemoLocked()
}

func (s *SystemPaths) addSuffixLocked(suffix string) {
	if n := normalizeSuffix(suffix); n != "" && !slices.Contains(s.suffixes, n) {
		s.suffixes = append(s.suffixes, n)
	}
}

// SearchPathSuffixes returns the registered suffixes in registration order.
func (s *SystemPaths) SearchPathSuffixes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.suffixes)
}

// AddFindFileCallback registers a fallback consulted after all search paths.
func (s *SystemPaths) AddFindFileCallback(cb FindFileCallback) {
	if cb == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fileCBs = append(s.fileCBs, cb)
	s.resetMemoLocked()
}

// AddFindFileURICallback registers a resolver for non-file URIs.
func (s *SystemPaths) AddFindFileURICallback(cb FindFileURICallback) {
	if cb == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uriCBs = append(s.uriCBs, cb)
	s.resetMemoLocked()
}

// ClearMemo drops every memoised lookup.
func (s *SystemPaths) ClearMemo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetMemoLocked()
}

func (s *SystemPaths) resetMemoLocked() {
	clear(s.memo)
	s.memoGen++
}

// FindFile resolves file. When searchLocalPath is true the working directory
// is tried before the search paths.
func (s *SystemPaths) FindFile(file string, searchLocalPath bool) (string, error) {
	return s.FindFileContext(context.Background(), file, searchLocalPath)
}

// FindFileContext is FindFile with a context passed to lifecycle hooks.
func (s *SystemPaths) FindFileContext(ctx context.Context, file string, searchLocalPath bool) (string, error) {
	start := time.Now()

	name := strings.TrimPrefix(file, fileScheme)
	if name == "" {
		s.emit(ctx, file, "", domain.SourceNone, start)
		return "", domain.ErrEmptyPath
	}

	key := memoKey{file: name, local: searchLocalPath}
	p, gen, ok := s.memoized(key)
	if ok {
		s.emit(ctx, file, p, domain.SourceMemo, start)
		return p, nil
	}

	p, src := s.resolve(name, searchLocalPath)
	s.emit(ctx, file, p, src, start)
	if p == "" {
		s.logger.Warn("Could not resolve file", "file", file)
		return "", fmt.Errorf("%s: %w", file, domain.ErrFileNotFound)
	}

	s.remember(key, p, gen)
	return p, nil
}

func (s *SystemPaths) resolve(name string, searchLocalPath bool) (string, domain.LookupSource) {
	local := filepath.FromSlash(name)

	if filepath.IsAbs(local) {
		if exists(local) {
			return local, domain.SourceAbsolute
		}
	} else {
		if searchLocalPath {
			if p := filepath.Join(s.cwd(), local); exists(p) {
				return p, domain.SourceLocal
			}
		}

		s.mu.RLock()
		dirs := s.filePathsLocked()
		suffixes := slices.Clone(s.suffixes)
		s.mu.RUnlock()

		for _, dir := range dirs {
			if p := filepath.Join(dir, local); exists(p) {
				return p, domain.SourceSearchPath
			}
			for _, suffix := range suffixes {
				if p := filepath.Join(dir, suffix, local); exists(p) {
					return p, domain.SourceSuffix
				}
			}
		}
	}

	s.mu.RLock()
	cbs := slices.Clone(s.fileCBs)
	s.mu.RUnlock()

	for _, cb := range cbs {
		if p := cb(name); p != "" && exists(p) {
			return p, domain.SourceCallback
		}
	}
	return "", domain.SourceNone
}

// FindFileURI resolves a URI. file:// URIs, and names without a scheme, are
// looked up with local search enabled; other schemes go to URI callbacks.
func (s *SystemPaths) FindFileURI(uri string) (string, error) {
	return s.FindFileURIContext(context.Background(), uri)
}

// FindFileURIContext is FindFileURI with a context passed to lifecycle hooks.
func (s *SystemPaths) FindFileURIContext(ctx context.Context, uri string) (string, error) {
	if strings.HasPrefix(uri, fileScheme) || !strings.Contains(uri, "://") {
		return s.FindFileContext(ctx, uri, true)
	}

	start := time.Now()
	s.mu.RLock()
	cbs := slices.Clone(s.uriCBs)
	s.mu.RUnlock()

	for _, cb := range cbs {
		if p := cb(uri); p != "" {
			s.emit(ctx, uri, p, domain.SourceURICallback, start)
			return p, nil
		}
	}

	s.emit(ctx, uri, "", domain.SourceNone, start)
	s.logger.Warn("Could not resolve URI", "uri", uri)
	return "", fmt.Errorf("%s: %w", uri, domain.ErrFileNotFound)
}

// FindFilePath returns the directory that contains file.
// If the resolved path is itself a directory, it is returned unchanged.
func (s *SystemPaths) FindFilePath(file string) (string, error) {
	return s.FindFilePathContext(context.Background(), file)
}

// FindFilePathContext is FindFilePath with a context passed to lifecycle hooks.
func (s *SystemPaths) FindFilePathContext(ctx context.Context, file string) (string, error) {
	p, err := s.FindFileContext(ctx, file, true)
	if err != nil {
		return "", err
	}
	if isDir(p) {
		return p, nil
	}
	return filepath.Dir(p), nil
}

// LocateLocalFile returns the first dir/file that exists.
func LocateLocalFile(file string, dirs []string) (string, error) {
	if file == "" {
		return "", domain.ErrEmptyPath
	}
	for _, dir := range dirs {
		if p := filepath.Join(NormalizeDirectory(dir), filepath.FromSlash(file)); exists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s: %w", file, domain.ErrFileNotFound)
}

// LogPath returns the directory for log files: LogPathEnv if set, otherwise
// ".pathfinder" under the user's home directory, falling back to TmpPath.
func LogPath() string {
	if p := os.Getenv(LogPathEnv); p != "" {
		return NormalizeDirectory(p)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(TmpPath(), ".pathfinder")
	}
	return filepath.Join(home, ".pathfinder")
}

// TmpPath returns the system temporary directory.
func TmpPath() string {
	return os.TempDir()
}

func (s *SystemPaths) cwd() string {
	s.mu.RLock()
	dir := s.workingDir
	s.mu.RUnlock()
	if dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// memoized reports the memoised path for key along with the memo generation
// observed, which remember needs to discard results of outdated lookups.
func (s *SystemPaths) memoized(key memoKey) (string, uint64, bool) {
	s.mu.RLock()
	enabled := s.memoEnabled
	gen := s.memoGen
	p, ok := s.memo[key]
	s.mu.RUnlock()
	if !enabled || !ok {
		return "", gen, false
	}
	if !exists(p) {
		s.mu.Lock()
		if s.memoGen == gen {
			delete(s.memo, key)
		}
		s.mu.Unlock()
		return "", gen, false
	}
	return p, gen, true
}

func (s *SystemPaths) remember(key memoKey, p string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memoEnabled && s.memoGen == gen {
		s.memo[key] = p
	}
}

func (s *SystemPaths) emit(ctx context.Context, file, p string, src domain.LookupSource, start time.Time) {
	if s.hooks.OnLookup == nil {
		return
	}
	s.hooks.OnLookup(ctx, &domain.LookupEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventLookup},
		File:      file,
		Path:      p,
		Found:     p != "",
		Source:    src,
		Duration:  time.Since(start),
	})
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
