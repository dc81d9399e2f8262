package generator

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/algorandfoundation/rustgen/internal/naming"
	"github.com/algorandfoundation/rustgen/parser"
)

// GeneratedFile is a single crate file produced by the generator, with its
// path relative to the crate root.
type GeneratedFile struct {
	Path    string
	Content string
}

// GenerateResult holds everything a generation run produced.
type GenerateResult struct {
	// Files are the generated crate files in deterministic order.
	Files []GeneratedFile
	// PackageName is the crate name written to Cargo.toml.
	PackageName string
	// GeneratedTypes are the Rust struct names of all generated models.
	GeneratedTypes []string
	// GeneratedOperations are the Rust function names of all endpoints.
	GeneratedOperations []string
	// LoadTime is how long parsing the document took, zero when generating
	// from an already parsed specification.
	LoadTime time.Duration
	// GenerateTime is how long rendering took.
	GenerateTime time.Duration
	// Warnings carries the parser warnings through to callers.
	Warnings []string
}

// GetFile returns the generated file at the given relative path.
func (r *GenerateResult) GetFile(filePath string) (*GeneratedFile, bool) {
	for i := range r.Files {
		if r.Files[i].Path == filePath {
			return &r.Files[i], true
		}
	}
	return nil, false
}

// Generator renders a parsed OpenAPI specification into a Rust client crate.
// The zero value is usable and renders with the embedded templates.
type Generator struct {
	// PackageName overrides the crate name derived from the spec title.
	PackageName string
	// CustomDescription overrides the spec description in Cargo.toml and
	// the crate docs.
	CustomDescription string
	// TemplateDir renders from a directory of templates instead of the
	// embedded set. The directory must mirror the embedded layout.
	TemplateDir string
	// Logger receives progress events. Defaults to NopLogger.
	Logger parser.Logger
}

// New returns a Generator with the given options applied.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Option configures a Generator.
type Option func(*Generator)

// WithPackageName sets the crate name.
func WithPackageName(name string) Option {
	return func(g *Generator) { g.PackageName = name }
}

// WithDescription overrides the crate description.
func WithDescription(description string) Option {
	return func(g *Generator) { g.CustomDescription = description }
}

// WithTemplateDir renders from the given directory instead of the embedded
// templates.
func WithTemplateDir(dir string) Option {
	return func(g *Generator) { g.TemplateDir = dir }
}

// WithLogger sets the progress logger.
func WithLogger(logger parser.Logger) Option {
	return func(g *Generator) { g.Logger = logger }
}

// GenerateWithOptions parses the document at filePath and renders it with a
// Generator built from opts.
func GenerateWithOptions(filePath string, opts ...Option) (*GenerateResult, error) {
	return New(opts...).Generate(filePath)
}

// Generate parses the document at filePath and renders the crate.
func (g *Generator) Generate(filePath string) (*GenerateResult, error) {
	start := time.Now()
	p := parser.New()
	p.Logger = g.logger()
	spec, err := p.Parse(filePath)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)

	result, err := g.GenerateParsed(spec)
	if err != nil {
		return nil, err
	}
	result.LoadTime = loadTime
	return result, nil
}

// GenerateParsed renders an already parsed specification.
func (g *Generator) GenerateParsed(spec *parser.ParsedSpec) (*GenerateResult, error) {
	start := time.Now()
	engine, err := g.engine()
	if err != nil {
		return nil, err
	}

	packageName := g.PackageName
	if packageName == "" {
		packageName = defaultPackageName(spec)
	}
	enums := CollectParameterEnums(spec.Operations)

	base := &templateData{
		Spec:              spec,
		PackageName:       packageName,
		CustomDescription: g.CustomDescription,
		Description:       g.description(spec),
		ParameterEnums:    enums,
	}

	result := &GenerateResult{
		PackageName: packageName,
		Warnings:    spec.Warnings,
	}

	if err := g.renderBase(engine, base, result); err != nil {
		return nil, err
	}
	if err := g.renderModels(engine, base, spec, result); err != nil {
		return nil, err
	}
	if err := g.renderAPIs(engine, base, spec, result); err != nil {
		return nil, err
	}

	result.GenerateTime = time.Since(start)
	g.logger().Info("generated crate",
		"package", packageName,
		"files", len(result.Files),
		"models", len(result.GeneratedTypes),
		"operations", len(result.GeneratedOperations),
	)
	return result, nil
}

// templateData is the root context passed to every template. Operation and
// Schema are set only for the per-endpoint and per-model templates.
type templateData struct {
	Spec              *parser.ParsedSpec
	PackageName       string
	CustomDescription string
	Description       string
	ParameterEnums    []ParameterEnum
	Operation         *parser.Operation
	Schema            *parser.Schema
}

func (g *Generator) renderBase(engine *Engine, base *templateData, result *GenerateResult) error {
	for _, file := range []struct {
		tmpl string
		path string
	}{
		{tmplCargo, "Cargo.toml"},
		{tmplReadme, "README.md"},
		{tmplLib, "src/lib.rs"},
	} {
		if err := renderTo(engine, file.tmpl, file.path, base, result); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) renderModels(engine *Engine, base *templateData, spec *parser.ParsedSpec, result *GenerateResult) error {
	if err := renderTo(engine, tmplModelsMod, "src/models/mod.rs", base, result); err != nil {
		return err
	}
	for _, name := range spec.SchemaNames() {
		schema := spec.Schemas[name]
		data := *base
		data.Schema = schema
		target := path.Join("src/models", schema.RustFileName+".rs")
		if err := renderTo(engine, tmplModel, target, &data, result); err != nil {
			return err
		}
		result.GeneratedTypes = append(result.GeneratedTypes, schema.RustStructName)
	}
	return nil
}

func (g *Generator) renderAPIs(engine *Engine, base *templateData, spec *parser.ParsedSpec, result *GenerateResult) error {
	if err := renderTo(engine, tmplAPIsMod, "src/apis/mod.rs", base, result); err != nil {
		return err
	}
	if len(base.ParameterEnums) > 0 {
		if err := renderTo(engine, tmplParameterEnums, "src/apis/parameter_enums.rs", base, result); err != nil {
			return err
		}
	}
	for _, op := range spec.Operations {
		data := *base
		data.Operation = op
		target := path.Join("src/apis", op.RustFunctionName+".rs")
		if err := renderTo(engine, tmplEndpoint, target, &data, result); err != nil {
			return err
		}
		result.GeneratedOperations = append(result.GeneratedOperations, op.RustFunctionName)
	}
	return renderTo(engine, tmplClient, "src/apis/client.rs", base, result)
}

func renderTo(engine *Engine, tmpl, target string, data *templateData, result *GenerateResult) error {
	content, err := engine.Render(tmpl, data)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", target, err)
	}
	result.Files = append(result.Files, GeneratedFile{Path: target, Content: content})
	return nil
}

func (g *Generator) engine() (*Engine, error) {
	if g.TemplateDir != "" {
		return NewEngineFromDir(g.TemplateDir)
	}
	return NewEngine()
}

func (g *Generator) logger() parser.Logger {
	if g.Logger == nil {
		return parser.NopLogger{}
	}
	return g.Logger
}

func (g *Generator) description(spec *parser.ParsedSpec) string {
	if g.CustomDescription != "" {
		return g.CustomDescription
	}
	return spec.Description()
}

// defaultPackageName derives a crate name from the spec title, for example
// "Algod REST API." becomes "algod_client".
func defaultPackageName(spec *parser.ParsedSpec) string {
	client := DetectClientType(spec.Title())
	return naming.ToSnakeCase(strings.ToLower(client)) + "_client"
}
