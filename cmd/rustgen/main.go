// Command rustgen generates Rust client crates from OpenAPI 3.x documents.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/algorandfoundation/rustgen"
	"github.com/algorandfoundation/rustgen/generator"
	"github.com/algorandfoundation/rustgen/internal/mcpserver"
	"github.com/algorandfoundation/rustgen/oaserrors"
	"github.com/algorandfoundation/rustgen/parser"
)

// Exit codes reported by the generate and parse commands.
const (
	exitOK              = 0
	exitFileNotFound    = 1
	exitInvalidDocument = 2
	exitGenerateFailed  = 3
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("rustgen v%s\n", rustgen.Version())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		if err := handleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCodeFor(err))
		}
	case "parse":
		if err := handleParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCodeFor(err))
		}
	case "mcp":
		if err := mcpserver.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// exitCodeFor maps an error onto the documented exit codes: missing input
// files, invalid documents, and everything else.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, fs.ErrNotExist):
		return exitFileNotFound
	case errors.Is(err, oaserrors.ErrDocument),
		errors.Is(err, oaserrors.ErrReference),
		errors.Is(err, oaserrors.ErrSchemaCollision):
		return exitInvalidDocument
	default:
		return exitGenerateFailed
	}
}

// generateFlags contains flags for the generate command
type generateFlags struct {
	outputDir   string
	packageName string
	description string
	templateDir string
	verbose     bool
}

func setupGenerateFlags() (*flag.FlagSet, *generateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &generateFlags{}

	fs.StringVar(&flags.outputDir, "output", "", "directory to write the generated crate into (required)")
	fs.StringVar(&flags.packageName, "package", "", "crate name (defaults to one derived from the document title)")
	fs.StringVar(&flags.description, "description", "", "crate description override")
	fs.StringVar(&flags.templateDir, "templates", "", "directory of custom templates mirroring the embedded layout")
	fs.BoolVar(&flags.verbose, "verbose", false, "log progress to stderr")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: rustgen generate [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Generate a Rust client crate from an OpenAPI 3.x document.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  rustgen generate --output algod_client openapi.yaml\n")
		_, _ = fmt.Fprintf(output, "  rustgen generate --output client --package algod_client --verbose openapi.json\n")
	}

	return fs, flags
}

func handleGenerate(args []string) error {
	fs, flags := setupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path")
	}
	if flags.outputDir == "" {
		fs.Usage()
		return fmt.Errorf("generate command requires --output")
	}

	specPath := fs.Arg(0)

	result, err := generator.GenerateWithOptions(specPath,
		generator.WithPackageName(flags.packageName),
		generator.WithDescription(flags.description),
		generator.WithTemplateDir(flags.templateDir),
		generator.WithLogger(cliLogger(flags.verbose)),
	)
	if err != nil {
		return fmt.Errorf("generating crate: %w", err)
	}

	if err := withBackup(flags.outputDir, func() error {
		return generator.WriteFiles(result, flags.outputDir)
	}); err != nil {
		return fmt.Errorf("writing crate: %w", err)
	}

	fmt.Printf("Generated crate %s\n", result.PackageName)
	fmt.Printf("  Output: %s\n", flags.outputDir)
	fmt.Printf("  Files: %d\n", len(result.Files))
	fmt.Printf("  Models: %d\n", len(result.GeneratedTypes))
	fmt.Printf("  Operations: %d\n", len(result.GeneratedOperations))
	fmt.Printf("  Load Time: %v\n", result.LoadTime)
	fmt.Printf("  Generate Time: %v\n", result.GenerateTime)
	printWarnings(result.Warnings)
	return nil
}

// withBackup moves an existing output directory aside, runs write, and
// restores the previous contents if writing fails.
func withBackup(outputDir string, write func() error) error {
	info, err := os.Stat(outputDir)
	if os.IsNotExist(err) {
		return write()
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", outputDir)
	}

	backup, err := os.MkdirTemp(filepath.Dir(outputDir), ".rustgen-backup-")
	if err != nil {
		return err
	}
	previous := filepath.Join(backup, filepath.Base(outputDir))
	if err := os.Rename(outputDir, previous); err != nil {
		_ = os.RemoveAll(backup)
		return err
	}

	if err := write(); err != nil {
		_ = os.RemoveAll(outputDir)
		if restoreErr := os.Rename(previous, outputDir); restoreErr != nil {
			return fmt.Errorf("%w (restoring previous output failed: %v, backup kept at %s)", err, restoreErr, previous)
		}
		_ = os.RemoveAll(backup)
		return err
	}
	_ = os.RemoveAll(backup)
	return nil
}

// parseFlags contains flags for the parse command
type parseFlags struct {
	verbose bool
}

func setupParseFlags() (*flag.FlagSet, *parseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &parseFlags{}

	fs.BoolVar(&flags.verbose, "verbose", false, "log progress to stderr")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: rustgen parse [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Parse an OpenAPI 3.x document and print its structure.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  rustgen parse openapi.yaml\n")
	}

	return fs, flags
}

func handleParse(args []string) error {
	fs, flags := setupParseFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path")
	}

	specPath := fs.Arg(0)

	p := parser.New()
	p.Logger = cliLogger(flags.verbose)
	spec, err := p.Parse(specPath)
	if err != nil {
		return fmt.Errorf("parsing file: %w", err)
	}

	fmt.Printf("OpenAPI Document\n")
	fmt.Printf("================\n\n")
	fmt.Printf("rustgen version: %s\n", rustgen.Version())
	fmt.Printf("Specification: %s\n", specPath)
	fmt.Printf("Title: %s\n", spec.Title())
	fmt.Printf("Version: %s\n", spec.Version())
	fmt.Printf("Operations: %d\n", len(spec.Operations))
	fmt.Printf("Schemas: %d\n", len(spec.Schemas))
	fmt.Printf("Msgpack Operations: %v\n\n", spec.HasMsgpackOperations)

	if len(spec.Operations) > 0 {
		fmt.Printf("Operations:\n")
		for _, op := range spec.Operations {
			msgpack := ""
			if op.SupportsMsgpack {
				msgpack = " [msgpack]"
			}
			fmt.Printf("  %-6s %s -> %s%s\n", op.Method, op.Path, op.RustFunctionName, msgpack)
		}
		fmt.Println()
	}
	if names := spec.SchemaNames(); len(names) > 0 {
		fmt.Printf("Schemas:\n")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
	}
	printWarnings(spec.Warnings)
	return nil
}

func printWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Printf("Warnings:\n")
	for _, warning := range warnings {
		fmt.Printf("  - %s\n", warning)
	}
}

// cliLogger returns a stderr debug logger when verbose, a silent one otherwise.
func cliLogger(verbose bool) parser.Logger {
	if !verbose {
		return parser.NopLogger{}
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return parser.NewSlogAdapter(slog.New(handler))
}

func printUsage() {
	fmt.Printf("rustgen v%s - Rust client crate generator for OpenAPI 3.x\n\n", rustgen.Version())
	fmt.Printf("Usage: rustgen <command> [flags] [arguments]\n\n")
	fmt.Printf("Commands:\n")
	fmt.Printf("  generate  Generate a Rust client crate from an OpenAPI document\n")
	fmt.Printf("  parse     Parse an OpenAPI document and print its structure\n")
	fmt.Printf("  mcp       Run as an MCP server over stdio\n")
	fmt.Printf("  version   Print version information\n")
	fmt.Printf("  help      Show this help message\n\n")
	fmt.Printf("Run 'rustgen <command> --help' for command-specific flags.\n")
}
