package generator

import (
	"bytes"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/algorandfoundation/rustgen/oaserrors"
)

// Engine renders the Rust source templates. Templates are addressed by
// their path relative to the template root, such as models/model.rs.tmpl.
//
// The default template set is compiled into the binary; NewEngineFromDir
// loads an alternative set from disk, which is how callers customize the
// generated code without rebuilding.
type Engine struct {
	templates *template.Template
}

// NewEngine creates an engine over the embedded template set.
func NewEngine() (*Engine, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	return newEngineFS(sub)
}

// NewEngineFromDir creates an engine over .tmpl files under dir, laid out
// the same way as the embedded set.
func NewEngineFromDir(dir string) (*Engine, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, &oaserrors.TemplateNotFoundError{Name: dir, Cause: err}
	}
	return newEngineFS(os.DirFS(dir))
}

// newEngineFS parses every .tmpl file in fsys, naming each template by its
// full relative path so models/mod.rs.tmpl and apis/mod.rs.tmpl coexist.
func newEngineFS(fsys fs.FS) (*Engine, error) {
	root := template.New("rustgen").Funcs(templateFuncs())

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		_, err = root.New(path).Parse(string(data))
		return err
	})
	if err != nil {
		return nil, &oaserrors.RenderError{Template: "template set", Message: "failed to parse templates", Cause: err}
	}
	return &Engine{templates: root}, nil
}

// Render executes the named template with data.
func (e *Engine) Render(name string, data any) (string, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return "", &oaserrors.TemplateNotFoundError{Name: name}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", &oaserrors.RenderError{Template: name, Message: err.Error(), Cause: err}
	}
	return buf.String(), nil
}
