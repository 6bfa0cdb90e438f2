package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const runtimeGoMod = `module example.com/shop

go 1.25

require github.com/toyz/resterr v0.1.0
`

const shopSource = `package shop

import "net/http"

//rest::error internal_error
type (
	ShopError interface {
		error
	}

	//rest::variant status_code = http.StatusNotFound
	NotFoundError struct{}
)

func (NotFoundError) Error() string { return "not found" }
`

const orderSource = `package shop

//rest::error
type (
	OrderError interface {
		error
	}

	MissingError struct{}
)

func (MissingError) Error() string { return "missing" }
`

// writeTree creates files below a temporary directory and returns it
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func generatedFile(pkg string) string {
	return "// Code generated by resterr. DO NOT EDIT.\n\npackage " + pkg + "\n"
}
