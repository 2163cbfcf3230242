package lib

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/denormal/go-gitignore"
)

// defaultIgnorePatterns are always excluded when adding a directory of
// files to a package: VCS metadata, any package root nested inside the
// source tree, and the ignore file itself.
var defaultIgnorePatterns = []string{
	".git/**",
	PackageDirName + "/**",
	IgnoreFilename,
}

var (
	// ignoreCache stores compiled matchers keyed by the canonical
	// absolute path of a source directory, so the .packratignore file
	// is parsed once per directory. Access is serialized; the gitignore
	// library is not safe for concurrent use.
	ignoreCache = make(map[string]gitignore.GitIgnore)
	ignoreMutex = &sync.Mutex{}
)

// IsPathIgnored reports whether path, relative to baseDir, should be
// excluded from a recursive add.
func IsPathIgnored(baseDir, path string) bool {
	ignoreMutex.Lock()
	defer ignoreMutex.Unlock()

	// Both arguments to filepath.Rel must use the same canonical form.
	canonicalBase, err := filepath.EvalSymlinks(baseDir)
	if err != nil {
		canonicalBase = baseDir
	}

	matcher, found := ignoreCache[canonicalBase]
	if !found {
		matcher = loadIgnoreMatcher(canonicalBase)
		ignoreCache[canonicalBase] = matcher
	}

	canonicalPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		canonicalPath = path
	}

	relativePath, err := filepath.Rel(canonicalBase, canonicalPath)
	if err != nil {
		// If the relative path cannot be determined, it is safest not
		// to ignore.
		return false
	}

	// The gitignore library expects forward-slash separators.
	match := matcher.Match(filepath.ToSlash(relativePath))
	if match == nil {
		match = matcher.Match(canonicalPath)
	}
	if match == nil {
		return false
	}
	return match.Ignore()
}

// loadIgnoreMatcher combines the default patterns with the directory's
// .packratignore file, if present, and compiles them into a matcher.
func loadIgnoreMatcher(baseDir string) gitignore.GitIgnore {
	rawPatterns := make([]string, len(defaultIgnorePatterns))
	copy(rawPatterns, defaultIgnorePatterns)

	if content, err := os.ReadFile(filepath.Join(baseDir, IgnoreFilename)); err == nil {
		rawPatterns = append(rawPatterns, strings.Split(string(content), "\n")...)
	}

	var finalPatterns []string
	for _, p := range rawPatterns {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		trimmed = strings.ReplaceAll(trimmed, "\\", "/")
		// Directory patterns (trailing slash) become glob patterns.
		if strings.HasSuffix(trimmed, "/") && !strings.HasSuffix(trimmed, "**/") {
			trimmed += "**"
		}
		finalPatterns = append(finalPatterns, trimmed)
	}

	matcher := gitignore.New(
		strings.NewReader(strings.Join(finalPatterns, "\n")),
		baseDir,
		func(err gitignore.Error) bool { return false },
	)
	if matcher == nil {
		// Fall back to a matcher that ignores nothing.
		return gitignore.New(strings.NewReader(""), "", nil)
	}
	return matcher
}

// ResetIgnoreState clears the ignore cache. This is used for testing.
func ResetIgnoreState() {
	ignoreMutex.Lock()
	defer ignoreMutex.Unlock()
	ignoreCache = make(map[string]gitignore.GitIgnore)
}
