package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// Module is the part of a go.mod file the generator cares about
type Module struct {
	Path      string
	GoVersion string
	// Requires maps each required module path to its version
	Requires map[string]string
	// Replaces maps each replaced module path to its replacement path
	Replaces map[string]string
}

// DependsOn reports whether the module is modulePath or requires it
func (m *Module) DependsOn(modulePath string) bool {
	if m.Path == modulePath {
		return true
	}
	_, ok := m.Requires[modulePath]
	return ok
}

// GoModParser reads go.mod files
type GoModParser struct {
	fileReader *FileReader
}

// NewGoModParser creates a new go.mod parser
func NewGoModParser(fileReader *FileReader) *GoModParser {
	return &GoModParser{fileReader: fileReader}
}

// Load parses goModPath into a Module
func (p *GoModParser) Load(goModPath string) (*Module, error) {
	goModPath = filepath.Clean(goModPath)
	if filepath.Base(goModPath) != "go.mod" {
		return nil, fmt.Errorf("%s is not a go.mod file", goModPath)
	}

	content, err := p.fileReader.ReadFile(goModPath)
	if err != nil {
		return nil, err
	}
	file, err := modfile.Parse(goModPath, []byte(content), nil)
	if err != nil {
		return nil, err
	}
	if file.Module == nil {
		return nil, fmt.Errorf("%s has no module declaration", goModPath)
	}

	module := &Module{
		Path:     file.Module.Mod.Path,
		Requires: make(map[string]string, len(file.Require)),
		Replaces: make(map[string]string, len(file.Replace)),
	}
	if file.Go != nil {
		module.GoVersion = file.Go.Version
	}
	for _, req := range file.Require {
		module.Requires[req.Mod.Path] = req.Mod.Version
	}
	for _, rep := range file.Replace {
		module.Replaces[rep.Old.Path] = rep.New.Path
	}
	return module, nil
}

// FindGoModFile walks up from startDir to the nearest go.mod
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "go.mod")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod found above %s", startDir)
		}
		dir = parent
	}
}
