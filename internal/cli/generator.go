package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/toyz/resterr/internal/errors"
	"github.com/toyz/resterr/internal/generator"
	"github.com/toyz/resterr/internal/models"
	"github.com/toyz/resterr/internal/parser"
	"github.com/toyz/resterr/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	fileProcessor  *utils.FileProcessor
	scanner        *DirectoryScanner
	cleaner        *Cleaner
	moduleResolver *ModuleResolver
	parser         parser.EnumParser
	codeGenerator  generator.CodeGenerator
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a CLI generator. A nil diagnostics system prints at
// info level.
func NewGenerator(verbose bool, diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	g := &Generator{
		reporter:    NewDiagnosticReporter(verbose),
		diagnostics: diagnostics,
	}
	g.configure(FileConfig{})
	return g
}

// Reporter returns the reporter used for failed enums
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// configure rebuilds the pipeline for a configuration file
func (g *Generator) configure(fileConfig FileConfig) {
	g.fileProcessor = utils.NewFileProcessor()
	g.fileProcessor.SetOutputPrefix(fileConfig.OutputPrefix)
	g.fileProcessor.Exclude(fileConfig.Exclude...)

	g.scanner = NewDirectoryScanner(g.fileProcessor)
	g.cleaner = NewCleaner(g.fileProcessor)
	g.moduleResolver = NewModuleResolver(g.fileProcessor.FileReader())
	g.parser = parser.NewParserWithProcessor(g.fileProcessor)
	g.codeGenerator = generator.NewGeneratorWithOptions(generator.Options{
		OutputPrefix:    g.fileProcessor.OutputPrefix(),
		InternalMessage: fileConfig.InternalMessage,
	})
}

// Run executes the complete generation process. Enums are independent: files
// of the enums that succeed are written even when others fail, and the
// returned error then holds every diagnostic.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{}

	fileConfig, configPath, err := ResolveFileConfig(config)
	if err != nil {
		g.reporter.ReportError(err)
		return err
	}
	if configPath != "" {
		g.diagnostics.Verbose("Using configuration %s", configPath)
	}
	g.configure(fileConfig)

	if config.Clean {
		return g.clean(config.Directories)
	}

	g.checkModule(config.Directories)

	g.diagnostics.Debug("Scanning directories: %v", config.Directories)
	packageDirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		g.reporter.ReportError(err)
		return err
	}
	if len(packageDirs) == 0 {
		err := errors.Newf(errors.FileSystemErrorCode, "no Go packages found in %s", strings.Join(config.Directories, ", ")).
			WithSuggestion("use the './...' pattern to scan subdirectories")
		g.reporter.ReportError(err)
		return err
	}
	g.summary.PackagesProcessed = len(packageDirs)

	g.diagnostics.PhaseHeader("Generating")
	g.diagnostics.Indent()
	errs := errors.NewMultipleErrors()
	for _, dir := range packageDirs {
		g.processPackage(dir, config.DryRun, errs)
	}
	g.diagnostics.Unindent()
	g.summary.EnumsFailed = g.summary.EnumsFound - g.summary.EnumsGenerated

	g.diagnostics.Summary("Summary", g.summary.Stats())
	g.diagnostics.Verbose("Finished in %s", time.Since(startTime).Round(time.Millisecond))

	if !errs.IsEmpty() {
		g.reporter.ReportError(errs)
		return errs
	}
	g.diagnostics.GenerationComplete()
	return nil
}

// processPackage parses one package and writes the files of its enums
func (g *Generator) processPackage(dir string, dryRun bool, errs *errors.MultipleErrors) {
	g.diagnostics.Debug("Parsing %s", dir)
	metadata, err := g.parser.ParseDirectory(dir)
	if err != nil {
		errs.Add(errors.Wrap(errors.SyntaxErrorCode, fmt.Sprintf("failed to parse package %s", dir), err))
		return
	}
	g.summary.EnumsFound += len(metadata.Enums) + len(metadata.Errs)

	files, err := g.codeGenerator.GeneratePackage(metadata)
	errs.Add(err)

	for _, file := range files {
		if err := g.write(file, dryRun); err != nil {
			errs.Add(err)
			continue
		}
		g.summary.EnumsGenerated++
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.FilePath)
	}
}

func (g *Generator) write(file *models.GeneratedFile, dryRun bool) error {
	display := relativePath(file.FilePath)
	if dryRun {
		g.diagnostics.PhaseProgress("%s -> %s (dry run)", file.Enum, display)
		g.diagnostics.Debug("\n%s", file.Content)
		return nil
	}

	if err := utils.FormatAndWriteGoFile(file.FilePath, file.Content); err != nil {
		return errors.WrapFileSystemError("write", file.FilePath, err).
			WithContext("enum", file.Enum)
	}
	g.diagnostics.PhaseItem("%s -> %s", file.Enum, display)
	return nil
}

// checkModule warns when generated code could not import the runtime package
func (g *Generator) checkModule(directories []string) {
	start := "."
	if bases := BaseDirectories(directories); len(bases) > 0 {
		start = bases[0]
	}

	module, err := g.moduleResolver.Resolve(start)
	if err != nil {
		g.reporter.ReportWarning(err.Error(), "generated files import "+RuntimeModule+"/pkg/rest")
		return
	}
	g.diagnostics.Verbose("Module %s (%s)", module.Path, module.GoModPath)
	switch {
	case module.LocalRuntime:
		g.diagnostics.Verbose("Runtime %s is replaced locally", RuntimeModule)
	case module.RuntimeVersion != "":
		g.diagnostics.Verbose("Runtime %s %s", RuntimeModule, module.RuntimeVersion)
	}
	if !module.UsesRuntime {
		g.reporter.ReportWarning(
			fmt.Sprintf("module %s does not require %s", module.Path, RuntimeModule),
			"run: go get "+RuntimeModule,
		)
	}
}

func (g *Generator) clean(directories []string) error {
	g.diagnostics.PhaseHeader("Cleaning")
	removed, err := g.cleaner.CleanGeneratedFiles(directories)
	g.summary.RemovedFiles = removed

	g.diagnostics.Indent()
	for _, path := range removed {
		g.diagnostics.PhaseItem("removed %s", relativePath(path))
	}
	g.diagnostics.Unindent()

	if err != nil {
		g.reporter.ReportError(err)
		return err
	}
	g.diagnostics.Success("Removed %d generated files", len(removed))
	return nil
}

// relativePath shortens path for display when it is below the working directory
func relativePath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
