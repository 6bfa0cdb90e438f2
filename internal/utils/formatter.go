package utils

import (
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"os"

	"golang.org/x/tools/imports"
)

var importOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true, // never resolve or drop imports
}

// FormatGoCode formats generated source and sorts its import block
func FormatGoCode(filename string, source []byte) ([]byte, error) {
	formatted, err := imports.Process(filename, source, importOptions)
	if err == nil {
		return formatted, nil
	}
	fallback, fmtErr := format.Source(source)
	if fmtErr != nil {
		if parseErr := ValidateGoCode(string(source)); parseErr != nil {
			return source, fmt.Errorf("invalid Go syntax: %w", parseErr)
		}
		return source, fmtErr
	}
	return fallback, nil
}

// FormatAndWriteGoFile formats Go code and writes it to a file
func FormatAndWriteGoFile(filename string, code string) error {
	formatted, err := FormatGoCode(filename, []byte(code))
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", filename, err)
	}
	return os.WriteFile(filename, formatted, 0o644)
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}
