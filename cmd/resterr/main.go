package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toyz/resterr/internal/cli"
	"github.com/toyz/resterr/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("resterr", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		verboseFlag = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flags.Bool("quiet", false, "Only show errors")
		cleanFlag   = flags.Bool("clean", false, "Delete generated files from the specified directories")
		configFlag  = flags.String("config", "", "Configuration file (defaults to "+cli.ConfigFileName+" next to go.mod)")
		dryRunFlag  = flags.Bool("dry-run", false, "Report the files that would be generated without writing them")
		helpFlag    = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: resterr [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "REST Error Enum Code Generator\n")
		fmt.Fprintf(stderr, "Scans Go packages for //rest::error declarations and generates status codes,\n")
		fmt.Fprintf(stderr, "HTTP responses, JSON serialization, OpenAPI schemas and cause-chain formatting.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  directory-paths    One or more package directories\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  resterr ./...                  # Generate for every package recursively\n")
		fmt.Fprintf(stderr, "  resterr ./internal/api         # Generate for a single package\n")
		fmt.Fprintf(stderr, "  resterr --dry-run ./...        # Show what would be generated\n")
		fmt.Fprintf(stderr, "  resterr --clean ./...          # Delete generated files\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if *helpFlag {
		flags.Usage()
		return 0
	}

	directories := flags.Args()
	if len(directories) == 0 {
		fmt.Fprintf(stderr, "Error: At least one directory path is required\n\n")
		flags.Usage()
		return 1
	}
	if *quietFlag && *verboseFlag {
		fmt.Fprintf(stderr, "Error: -quiet and -verbose cannot be combined\n")
		return 1
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	diagnostics.SetWriters(stdout, stderr)

	config := cli.Config{
		Directories: directories,
		Verbose:     *verboseFlag,
		Quiet:       *quietFlag,
		Clean:       *cleanFlag,
		DryRun:      *dryRunFlag,
		ConfigPath:  *configFlag,
	}

	diagnostics.Header("Generating error enums")
	if *verboseFlag {
		diagnostics.PhaseHeader("Configuration")
		diagnostics.Indent()
		diagnostics.PhaseProgress("Target directories: %s", strings.Join(directories, ", "))
		if *configFlag != "" {
			diagnostics.PhaseProgress("Configuration file: %s", *configFlag)
		}
		if *dryRunFlag {
			diagnostics.PhaseProgress("Dry run: enabled")
		}
		diagnostics.Unindent()
	}

	generator := cli.NewGenerator(*verboseFlag, diagnostics)
	generator.Reporter().SetWriter(stderr)
	if err := generator.Run(config); err != nil {
		return 1
	}

	if *verboseFlag {
		summary := generator.GetSummary()
		for _, file := range summary.GeneratedFiles {
			diagnostics.Verbose("Generated %s", file)
		}
	}
	return 0
}
