package utils

import (
	"bufio"
	"fmt"
	"go/ast"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GeneratedHeader is the first line of every generated file.
const GeneratedHeader = "// Code generated by resterr. DO NOT EDIT."

// DefaultOutputPrefix names generated files.
const DefaultOutputPrefix = "autogen_"

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct {
	fileReader   *FileReader
	outputPrefix string
	skipDirs     map[string]bool
}

// NewFileProcessor creates a file processor with its own FileReader
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileReader:   NewFileReader(),
		outputPrefix: DefaultOutputPrefix,
		skipDirs: map[string]bool{
			"vendor":       true,
			"node_modules": true,
			"testdata":     true,
		},
	}
}

// SetOutputPrefix changes the prefix that marks generated files
func (fp *FileProcessor) SetOutputPrefix(prefix string) {
	if prefix != "" {
		fp.outputPrefix = prefix
	}
}

// OutputPrefix returns the prefix that marks generated files
func (fp *FileProcessor) OutputPrefix() string {
	return fp.outputPrefix
}

// Exclude adds directory names that are never scanned
func (fp *FileProcessor) Exclude(names ...string) {
	for _, name := range names {
		fp.skipDirs[name] = true
	}
}

// FileReader returns the reader shared by all parsed files
func (fp *FileProcessor) FileReader() *FileReader {
	return fp.fileReader
}

// IsOutputName reports whether a file name looks like generator output
func (fp *FileProcessor) IsOutputName(name string) bool {
	return strings.HasPrefix(name, fp.outputPrefix) && strings.HasSuffix(name, ".go")
}

// isSourceName accepts .go files that are neither tests nor generator output
func (fp *FileProcessor) isSourceName(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasPrefix(name, fp.outputPrefix)
}

// skipDir rejects hidden directories and the configured exclusions
func (fp *FileProcessor) skipDir(name string) bool {
	return (strings.HasPrefix(name, ".") && name != "." && name != "..") || fp.skipDirs[name]
}

// walk visits every directory below root that is not skipped
func (fp *FileProcessor) walk(root string, visit func(dir string, entries []os.DirEntry) error) error {
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && fp.skipDir(entry.Name()) {
			return filepath.SkipDir
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		return visit(path, entries)
	})
}

// ScanDirectoriesWithGoFiles returns every package directory below rootDirs,
// each at most once
func (fp *FileProcessor) ScanDirectoriesWithGoFiles(rootDirs []string) ([]string, error) {
	var packageDirs []string
	seen := make(map[string]bool)

	for _, root := range rootDirs {
		err := fp.walk(root, func(dir string, entries []os.DirEntry) error {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if seen[abs] || !fp.hasSource(entries) {
				return nil
			}
			seen[abs] = true
			packageDirs = append(packageDirs, dir)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}
	}
	return packageDirs, nil
}

// HasGoFiles checks if a directory contains source files resterr would parse
func (fp *FileProcessor) HasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	return fp.hasSource(entries), nil
}

func (fp *FileProcessor) hasSource(entries []os.DirEntry) bool {
	for _, entry := range entries {
		if !entry.IsDir() && fp.isSourceName(entry.Name()) {
			return true
		}
	}
	return false
}

// SourceFile is a parsed Go file of a package
type SourceFile struct {
	Path string
	AST  *ast.File
}

// ParseDirectoryFiles parses all Go files in a directory, sorted by path
func (fp *FileProcessor) ParseDirectoryFiles(dirPath string) ([]SourceFile, string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read directory %s: %w", dirPath, err)
	}

	var files []SourceFile
	var packageName string

	for _, entry := range entries {
		if entry.IsDir() || !fp.isSourceName(entry.Name()) {
			continue
		}
		filePath := filepath.Join(dirPath, entry.Name())

		file, err := fp.fileReader.ParseGoFile(filePath)
		if err != nil {
			return nil, "", err
		}

		if packageName == "" {
			packageName = file.Name.Name
		} else if file.Name.Name != packageName {
			return nil, "", fmt.Errorf("multiple packages found in directory: %s and %s", packageName, file.Name.Name)
		}

		files = append(files, SourceFile{Path: filePath, AST: file})
	}

	if len(files) == 0 {
		return nil, "", fmt.Errorf("no Go files found in directory %s", dirPath)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, packageName, nil
}

// IsGeneratedFile reports whether path carries the resterr header
func IsGeneratedFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == GeneratedHeader, nil
	}
	return false, scanner.Err()
}

// RemoveGenerated deletes the generator output among entries of dir.
// Files with the output prefix but without the resterr header are left alone.
func (fp *FileProcessor) RemoveGenerated(dir string, entries []os.DirEntry) ([]string, error) {
	var removed []string
	for _, entry := range entries {
		if entry.IsDir() || !fp.IsOutputName(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if generated, err := IsGeneratedFile(path); err != nil || !generated {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

// CleanDirectories removes generated files below the given directories
func (fp *FileProcessor) CleanDirectories(baseDirs []string) ([]string, error) {
	var removed []string
	for _, baseDir := range baseDirs {
		if _, err := os.Stat(baseDir); os.IsNotExist(err) {
			continue
		}
		err := fp.walk(baseDir, func(dir string, entries []os.DirEntry) error {
			files, err := fp.RemoveGenerated(dir, entries)
			removed = append(removed, files...)
			return err
		})
		if err != nil {
			return removed, fmt.Errorf("failed to clean directory %s: %w", baseDir, err)
		}
	}
	return removed, nil
}
