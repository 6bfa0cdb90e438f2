package cli

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/resterr/internal/errors"
	"github.com/toyz/resterr/internal/utils"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up next to the nearest go.mod
const ConfigFileName = ".resterr.yaml"

// Config holds the CLI configuration
type Config struct {
	Directories []string
	Verbose     bool
	Quiet       bool
	Clean       bool
	DryRun      bool
	// ConfigPath is an explicit configuration file; it must exist.
	ConfigPath string
}

// FileConfig is the content of .resterr.yaml
type FileConfig struct {
	OutputPrefix    string   `yaml:"output_prefix"`
	InternalMessage string   `yaml:"internal_message"`
	Exclude         []string `yaml:"exclude"`
}

// Validate checks values that would produce unusable output
func (f FileConfig) Validate() error {
	if strings.ContainsAny(f.OutputPrefix, `/\`) {
		return stderrors.New("output_prefix must be a file name prefix, not a path")
	}
	if strings.HasSuffix(f.OutputPrefix, "_test") {
		return stderrors.New("output_prefix would produce test files")
	}
	for _, dir := range f.Exclude {
		if dir == "" || strings.ContainsAny(dir, `/\`) {
			return stderrors.New("exclude entries must be plain directory names")
		}
	}
	return nil
}

// LoadFileConfig reads a configuration file. Unknown keys are rejected.
func LoadFileConfig(path string) (FileConfig, error) {
	var fileConfig FileConfig

	content, err := os.ReadFile(path)
	if err != nil {
		return fileConfig, errors.WrapConfigurationError(path, "read", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fileConfig); err != nil && !stderrors.Is(err, io.EOF) {
		return fileConfig, errors.WrapConfigurationError(path, "parse", err).
			WithSuggestion("supported keys are output_prefix, internal_message and exclude")
	}
	if err := fileConfig.Validate(); err != nil {
		return fileConfig, errors.WrapConfigurationError(path, "validate", err)
	}
	return fileConfig, nil
}

// ResolveFileConfig finds and loads the configuration for a run. The
// returned path is empty when no file was found, which is not an error.
func ResolveFileConfig(config Config) (FileConfig, string, error) {
	if config.ConfigPath != "" {
		fileConfig, err := LoadFileConfig(config.ConfigPath)
		return fileConfig, config.ConfigPath, err
	}

	start := "."
	if bases := BaseDirectories(config.Directories); len(bases) > 0 {
		start = bases[0]
	}
	goMod, err := utils.NewGoModParser(utils.NewFileReader()).FindGoModFile(start)
	if err != nil {
		return FileConfig{}, "", nil
	}

	path := filepath.Join(filepath.Dir(goMod), ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return FileConfig{}, "", nil
	}
	fileConfig, err := LoadFileConfig(path)
	return fileConfig, path, err
}
