package templates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toyz/resterr/internal/models"
)

// ImportManager handles import generation and deduplication
type ImportManager struct {
	standardImports map[string]bool
	packageImports  map[string]string // path -> alias, "" when none
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		standardImports: make(map[string]bool),
		packageImports:  make(map[string]string),
	}
}

// AddImport adds an import without alias
func (im *ImportManager) AddImport(importPath string) {
	im.AddPackageImport("", importPath)
}

// AddPackageImport adds an import, keeping its alias
func (im *ImportManager) AddPackageImport(alias, path string) {
	if path == "" {
		return
	}
	if isStandard(path) && alias == "" {
		im.standardImports[path] = true
		return
	}
	im.packageImports[path] = alias
}

// AddModelImports adds every import of a generation plan
func (im *ImportManager) AddModelImports(imports []models.Import) {
	for _, imp := range imports {
		im.AddPackageImport(imp.Alias, imp.Path)
	}
}

// isStandard reports whether path belongs to the standard library
func isStandard(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}

// GenerateImports generates the import section: standard library first,
// then everything else, each group sorted by path.
func (im *ImportManager) GenerateImports() string {
	var std []string
	for imp := range im.standardImports {
		std = append(std, fmt.Sprintf("%q", imp))
	}
	sort.Strings(std)

	paths := make([]string, 0, len(im.packageImports))
	for path := range im.packageImports {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var other []string
	for _, path := range paths {
		if alias := im.packageImports[path]; alias != "" {
			other = append(other, fmt.Sprintf("%s %q", alias, path))
		} else {
			other = append(other, fmt.Sprintf("%q", path))
		}
	}

	switch total := len(std) + len(other); total {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("import %s\n", append(std, other...)[0])
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, imp := range std {
		result.WriteString("\t" + imp + "\n")
	}
	if len(std) > 0 && len(other) > 0 {
		result.WriteString("\n")
	}
	for _, imp := range other {
		result.WriteString("\t" + imp + "\n")
	}
	result.WriteString(")\n")

	return result.String()
}
