package cli

import (
	"path/filepath"

	"github.com/toyz/resterr/internal/errors"
	"github.com/toyz/resterr/internal/utils"
)

// RuntimeModule provides the rest package imported by generated code
const RuntimeModule = "github.com/toyz/resterr"

// ModuleInfo describes the module that owns the scanned directories
type ModuleInfo struct {
	Path      string
	GoModPath string
	// UsesRuntime is false when generated code would not compile because
	// the module neither is nor requires RuntimeModule.
	UsesRuntime bool
	// RuntimeVersion is the required RuntimeModule version, if any
	RuntimeVersion string
	// LocalRuntime is set when a replace directive points RuntimeModule elsewhere
	LocalRuntime bool
}

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	goMod *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver(fileReader *utils.FileReader) *ModuleResolver {
	return &ModuleResolver{
		goMod: utils.NewGoModParser(fileReader),
	}
}

// Resolve finds the go.mod governing dir and reads it
func (r *ModuleResolver) Resolve(dir string) (ModuleInfo, error) {
	goModPath, err := r.goMod.FindGoModFile(dir)
	if err != nil {
		return ModuleInfo{}, errors.WrapFileSystemError("find", filepath.Join(dir, "go.mod"), err).
			WithSuggestion("run resterr inside a Go module")
	}

	module, err := r.goMod.Load(goModPath)
	if err != nil {
		return ModuleInfo{}, errors.WrapFileSystemError("parse", goModPath, err)
	}

	return ModuleInfo{
		Path:           module.Path,
		GoModPath:      goModPath,
		UsesRuntime:    module.DependsOn(RuntimeModule),
		RuntimeVersion: module.Requires[RuntimeModule],
		LocalRuntime:   module.Replaces[RuntimeModule] != "",
	}, nil
}
