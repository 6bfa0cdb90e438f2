package generator

import (
	"fmt"
	"go/ast"
	"go/parser"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/toyz/resterr/internal/annotations"
	"github.com/toyz/resterr/internal/errors"
	"github.com/toyz/resterr/internal/models"
)

const (
	// RestImportPath is the runtime package generated code depends on.
	RestImportPath = "github.com/toyz/resterr/pkg/rest"
	// OpenAPIImportPath provides the schema type returned by ErrorSchema.
	OpenAPIImportPath = "github.com/getkin/kin-openapi/openapi3"

	netHTTPImportPath = "net/http"
)

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// importName guesses the package name of an import path the way goimports does
func importName(importPath string) string {
	base := path.Base(importPath)
	if majorVersion.MatchString(base) {
		if parent := path.Dir(importPath); parent != "." {
			base = path.Base(parent)
		}
	}
	if i := strings.Index(base, ".v"); i > 0 && majorVersion.MatchString(base[i+1:]) {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	return strings.ReplaceAll(base, "-", "_")
}

// boundName is the identifier an import is referenced by
func boundName(imp models.Import) string {
	if imp.Alias != "" {
		return imp.Alias
	}
	return importName(imp.Path)
}

// selectorBases returns the identifiers used as X in X.Sel within expr
func selectorBases(expr string) []string {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil
	}
	seen := make(map[string]bool)
	var bases []string
	ast.Inspect(node, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if ident, ok := sel.X.(*ast.Ident); ok && !seen[ident.Name] {
			seen[ident.Name] = true
			bases = append(bases, ident.Name)
		}
		return true
	})
	return bases
}

// httpShadowed reports whether the declaring file binds "http" to something
// other than net/http.
func httpShadowed(imports []models.Import) bool {
	for _, imp := range imports {
		if boundName(imp) == "http" && imp.Path != netHTTPImportPath {
			return true
		}
	}
	return false
}

// selectImports computes the imports of the generated file: the runtime
// packages it always uses plus the source imports its status expressions
// reference. An unbound "http" selector resolves to net/http.
func selectImports(desc *models.EnumDescriptor, entries []models.StatusEntry) ([]models.Import, error) {
	reserved := map[string]string{
		"rest":     RestImportPath,
		"openapi3": OpenAPIImportPath,
	}
	if len(desc.Variants) > 0 {
		reserved["errors"] = "errors"
		reserved["fmt"] = "fmt"
	}

	selected := make(map[models.Import]bool)
	for _, importPath := range reserved {
		selected[models.Import{Path: importPath}] = true
	}

	bound := make(map[string]models.Import, len(desc.Imports))
	for _, imp := range desc.Imports {
		if imp.Alias == "." {
			continue
		}
		bound[boundName(imp)] = imp
	}

	for _, entry := range entries {
		for _, base := range selectorBases(entry.Expr.Text) {
			imp, ok := bound[base]
			if !ok {
				if base == "http" {
					selected[models.Import{Path: netHTTPImportPath}] = true
				}
				// anything else is a package-level identifier of the enum's own package
				continue
			}
			if want, clash := reserved[base]; clash {
				if want == imp.Path {
					continue
				}
				return nil, importConflict(desc.Name, entry, base, imp)
			}
			if imp.Alias == importName(imp.Path) {
				imp.Alias = ""
			}
			selected[imp] = true
		}
	}

	imports := make([]models.Import, 0, len(selected))
	for imp := range selected {
		imports = append(imports, imp)
	}
	sort.Slice(imports, func(i, j int) bool { return imports[i].Path < imports[j].Path })
	return imports, nil
}

func importConflict(enum string, entry models.StatusEntry, name string, imp models.Import) error {
	return errors.GenerateError(fmt.Sprintf("status expression of %s.%s uses %q, which the generated file needs for another package", enum, entry.Variant, name)).
		WithLocation(entry.Expr.Loc).
		WithContext("import", imp.Path).
		WithSuggestion(fmt.Sprintf("import %q under a different name", imp.Path))
}

// defaultedStatus rewrites the implicit internal_error status when the file
// binds "http" to another package.
func defaultedStatus(desc *models.EnumDescriptor, expr annotations.Expression) annotations.Expression {
	if !httpShadowed(desc.Imports) {
		return expr
	}
	return annotations.Expression{Text: "500", Loc: expr.Loc}
}
