package pathfinder

import (
	"sync"

	"github.com/aretw0/pathfinder/pkg/clock"
	"github.com/aretw0/pathfinder/pkg/digest"
	"github.com/aretw0/pathfinder/pkg/paths"
)

var defaultFinder = sync.OnceValue(func() *Finder {
	return build()
})

// Default returns the process-wide Finder used by the package-level functions.
func Default() *Finder {
	return defaultFinder()
}

// SystemPaths returns the process-wide resolver.
func SystemPaths() *paths.SystemPaths {
	return Default().Paths()
}

// AddSearchPathSuffix adds a suffix to the process-wide resolver.
func AddSearchPathSuffix(suffix string) {
	SystemPaths().AddSearchPathSuffix(suffix)
}

// FindFile searches for file in the working directory and the process-wide
// search paths, returning the full path of the first match.
func FindFile(file string) (string, error) {
	return SystemPaths().FindFile(file, true)
}

// SearchFile is FindFile with control over the working-directory lookup.
func SearchFile(file string, searchLocalPath bool) (string, error) {
	return SystemPaths().FindFile(file, searchLocalPath)
}

// FindFileLocal searches for file with control over the working-directory lookup.
//
// Deprecated: use SearchFile.
func FindFileLocal(file string, searchLocalPath bool) (string, error) {
	return SearchFile(file, searchLocalPath)
}

// FindFilePath returns the directory that contains file.
func FindFilePath(file string) (string, error) {
	return SystemPaths().FindFilePath(file)
}

// SHA1 returns the 40-character hex SHA1 digest of buf.
func SHA1[T ~[]byte | ~string](buf T) string {
	return digest.SHA1(buf)
}

// SystemTimeISO returns the current wall time as YYYY-MM-DDTHH:MM:SS.NNNNNNNNN.
func SystemTimeISO() string {
	return clock.SystemTimeISO()
}
