package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/resterr/internal/errors"
	"github.com/toyz/resterr/internal/utils"
)

// DirectoryScanner handles directory scanning for Go packages
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner(fileProcessor *utils.FileProcessor) *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: fileProcessor,
	}
}

// isRecursive reports whether a pattern uses the Go-style "/..." suffix
func isRecursive(pattern string) bool {
	return pattern == "..." || strings.HasSuffix(pattern, "/...")
}

// baseDirectory strips the "/..." suffix from a pattern
func baseDirectory(pattern string) string {
	if !isRecursive(pattern) {
		return pattern
	}
	base := strings.TrimSuffix(strings.TrimSuffix(pattern, "..."), "/")
	if base == "" {
		return "."
	}
	return base
}

// BaseDirectories returns the directories named by the patterns
func BaseDirectories(patterns []string) []string {
	bases := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		bases = append(bases, baseDirectory(pattern))
	}
	return bases
}

// ScanDirectories returns the package directories matched by the patterns.
// "dir/..." scans recursively, a plain directory is taken as a single
// package. Every directory is reported once, in pattern order.
func (s *DirectoryScanner) ScanDirectories(patterns []string) ([]string, error) {
	var packageDirs []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		base := baseDirectory(pattern)
		cleanPath, err := filepath.Abs(base)
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve", base, err)
		}

		info, err := os.Stat(cleanPath)
		if err != nil {
			return nil, errors.WrapFileSystemError("stat", base, err).
				WithSuggestion("check that the directory exists")
		}
		if !info.IsDir() {
			return nil, errors.WrapFileSystemError("scan", base, fmt.Errorf("not a directory"))
		}

		var dirs []string
		if isRecursive(pattern) {
			dirs, err = s.fileProcessor.ScanDirectoriesWithGoFiles([]string{cleanPath})
			if err != nil {
				return nil, errors.WrapFileSystemError("scan", base, err)
			}
		} else {
			hasGoFiles, err := s.fileProcessor.HasGoFiles(cleanPath)
			if err != nil {
				return nil, errors.WrapFileSystemError("scan", base, err)
			}
			if hasGoFiles {
				dirs = []string{cleanPath}
			}
		}

		for _, dir := range dirs {
			if !seen[dir] {
				seen[dir] = true
				packageDirs = append(packageDirs, dir)
			}
		}
	}

	return packageDirs, nil
}
