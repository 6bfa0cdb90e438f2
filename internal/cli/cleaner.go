package cli

import (
	"os"

	"github.com/toyz/resterr/internal/errors"
	"github.com/toyz/resterr/internal/utils"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner(fileProcessor *utils.FileProcessor) *Cleaner {
	return &Cleaner{
		fileProcessor: fileProcessor,
	}
}

// CleanGeneratedFiles removes generated files matched by the patterns and
// returns their paths. Only files carrying the resterr header are removed.
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	var removedFiles []string

	for _, pattern := range patterns {
		var (
			removed []string
			err     error
		)
		if isRecursive(pattern) {
			removed, err = c.fileProcessor.CleanDirectories([]string{baseDirectory(pattern)})
		} else {
			removed, err = c.cleanSingleDirectory(pattern)
		}
		removedFiles = append(removedFiles, removed...)
		if err != nil {
			return removedFiles, errors.WrapFileSystemError("clean", pattern, err)
		}
	}

	return removedFiles, nil
}

// cleanSingleDirectory cleans a directory without descending into it
func (c *Cleaner) cleanSingleDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	return c.fileProcessor.RemoveGenerated(dir, entries)
}
