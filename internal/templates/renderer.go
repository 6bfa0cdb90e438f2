package templates

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/toyz/resterr/internal/errors"
	"github.com/toyz/resterr/internal/models"
	"github.com/toyz/resterr/internal/utils"
)

// Renderer turns a generation plan into Go source
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses every registered template
func NewRenderer() (*Renderer, error) {
	registry := NewTemplateRegistry()
	tu := NewTemplateUtils()

	root := template.New("file").Funcs(tu.FuncMap())
	for _, name := range registry.Names() {
		var t *template.Template
		if name == root.Name() {
			t = root
		} else {
			t = root.New(name)
		}
		if _, err := t.Parse(registry.MustGet(name)); err != nil {
			return nil, errors.WrapTemplateError(name, "parse", err)
		}
	}

	return &Renderer{tmpl: root}, nil
}

// MustNewRenderer is NewRenderer for the built-in templates, which always parse
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// fileData is the view rendered by the file template
type fileData struct {
	Header      string
	Package     string
	Imports     string
	Enum        string
	Title       string
	StatusTable string
	CodesVar    string
	CodesFunc   string
	SchemaFunc  string
	Converter   string
	Synthetic   *variantData
	Variants    []variantData
}

// variantData joins the per-variant output of every behavior
type variantData struct {
	models.VariantImpl
	Enum        string
	Code        string
	Status      string
	Message     string
	Chain       string
	StatusTable string
	CodesVar    string
	SchemaFunc  string
}

// Render renders impl as unformatted Go source
func (r *Renderer) Render(impl *models.Implementation) (string, error) {
	data, err := r.buildData(impl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "file", data); err != nil {
		return "", errors.WrapTemplateError("file", "execute", err)
	}
	return buf.String(), nil
}

func (r *Renderer) buildData(impl *models.Implementation) (*fileData, error) {
	n := len(impl.Variants)
	if len(impl.Status.Entries) != n || len(impl.Serialization.Variants) != n || len(impl.Chain.Variants) != n {
		return nil, errors.GenerateError(fmt.Sprintf("incomplete implementation of %s: every behavior must cover all %d variants", impl.Enum, n))
	}

	imports := NewImportManager()
	imports.AddModelImports(impl.Imports)

	data := &fileData{
		Header:      utils.GeneratedHeader,
		Package:     impl.PackageName,
		Imports:     imports.GenerateImports(),
		Enum:        impl.Enum,
		Title:       impl.Schema.Title,
		StatusTable: impl.Status.Table,
		CodesVar:    impl.Schema.CodesVar,
		CodesFunc:   impl.Schema.CodesFunc,
		SchemaFunc:  impl.Schema.Func,
		Converter:   impl.Converter,
	}

	for i, v := range impl.Variants {
		message := "e.Error()"
		serialized := impl.Serialization.Variants[i]
		if serialized.Message == models.MessageFixed {
			message = impl.Serialization.FixedMessage
		}
		vd := variantData{
			VariantImpl: v,
			Enum:        impl.Enum,
			Code:        serialized.Code,
			Status:      impl.Status.Entries[i].Expr.Text,
			Message:     message,
			Chain:       impl.Chain.Variants[i].Expr,
			StatusTable: impl.Status.Table,
			CodesVar:    impl.Schema.CodesVar,
			SchemaFunc:  impl.Schema.Func,
		}
		data.Variants = append(data.Variants, vd)
		if impl.Synthetic != nil && v.Name == impl.Synthetic.Name {
			synthetic := vd
			data.Synthetic = &synthetic
		}
	}
	if impl.Synthetic != nil && data.Synthetic == nil {
		return nil, errors.GenerateError(fmt.Sprintf("synthetic variant %s is not part of %s", impl.Synthetic.Name, impl.Enum))
	}

	return data, nil
}
