package utils

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
)

// FileReader parses Go files into a shared token.FileSet so positions from
// different files of one package can be compared.
type FileReader struct {
	fileSet *token.FileSet
}

// NewFileReader creates a new FileReader
func NewFileReader() *FileReader {
	return &FileReader{fileSet: token.NewFileSet()}
}

// ParseGoFile parses a Go source file with comments
func (fr *FileReader) ParseGoFile(filePath string) (*ast.File, error) {
	cleanPath := filepath.Clean(filePath)
	file, err := parser.ParseFile(fr.fileSet, cleanPath, nil, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go file %s: %w", filepath.Base(cleanPath), err)
	}
	return file, nil
}

// ParseGoSource parses Go source code from a string
func (fr *FileReader) ParseGoSource(filename, source string) (*ast.File, error) {
	file, err := parser.ParseFile(fr.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go source: %w", err)
	}
	return file, nil
}

// ReadFile reads a file and returns its contents as a string
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	content, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filepath.Base(filePath), err)
	}
	return string(content), nil
}

// FileSet returns the token.FileSet used by this reader
func (fr *FileReader) FileSet() *token.FileSet {
	return fr.fileSet
}
