package templates

import "sort"

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerFileTemplates()
	registry.registerSyntheticTemplates()
	registry.registerVariantTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Names returns the registered template names in sorted order
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// registerFileTemplates registers the file skeleton and the enum-level tables
func (tr *TemplateRegistry) registerFileTemplates() {
	tr.templates["file"] = `{{.Header}}

package {{.Package}}

{{.Imports}}
{{if .Synthetic}}{{template "synthetic" .}}{{end}}{{if .Variants}}{{template "tables" .}}{{end}}{{template "schema" .}}{{range .Variants}}{{template "variant" .}}{{end}}`

	tr.templates["tables"] = `var (
{{range .Variants}}	_ {{.Enum}} = {{.Assertion}}
{{end}})

const (
{{range $i, $v := .Variants}}	{{$v.Const}}{{if eq $i 0}} = iota{{end}}
{{end}})

// {{.StatusTable}} maps each {{.Enum}} variant to its HTTP status code.
var {{.StatusTable}} = [...]int{
{{range .Variants}}	{{.Const}}: {{.Status}},
{{end}}}

// {{.CodesVar}} maps each {{.Enum}} variant to its error_code.
var {{.CodesVar}} = [...]string{
{{range .Variants}}	{{.Const}}: {{quote .Code}},
{{end}}}

`

	tr.templates["schema"] = `// {{.CodesFunc}} returns the error codes of {{.Enum}} in declaration order.
func {{.CodesFunc}}() []string {
{{if .Variants}}	return append([]string(nil), {{.CodesVar}}[:]...)
{{else}}	return []string{}
{{end}}}

// {{.SchemaFunc}} describes the JSON body of every {{.Enum}} response.
func {{.SchemaFunc}}() *openapi3.Schema {
	return rest.ErrorSchema({{quote .Title}}{{if .Variants}}, {{.CodesVar}}[:]...{{end}})
}
`
}

// registerSyntheticTemplates registers the catch-all variant declaration
func (tr *TemplateRegistry) registerSyntheticTemplates() {
	tr.templates["synthetic"] = `{{with .Synthetic}}// {{.Name}} is the catch-all variant of {{.Enum}}. Its cause is never serialized.
type {{.Name}} struct {
	error
}

// New{{.Name}} wraps err as a {{.Name}}. A nil err is replaced by the generic message.
func New{{.Name}}(err error) {{.Name}} {
	if err == nil {
		err = errors.New({{.Message}})
	}
	return {{.Name}}{error: err}
}
{{end}}
// {{.Converter}} returns err as a {{.Enum}}, wrapping errors outside the enum in {{.Synthetic.Name}}.
func {{.Converter}}(err error) {{.Enum}} {
	if err == nil {
		return nil
	}
	var target {{.Enum}}
	if errors.As(err, &target) {
		return target
	}
	return New{{.Synthetic.Name}}(err)
}

`
}

// registerVariantTemplates registers the per-variant behavior methods
func (tr *TemplateRegistry) registerVariantTemplates() {
	tr.templates["variant"] = `
// StatusCode of {{.Name}}, a {{arityNote .Arity}}, is {{.Status}}.
func ({{.Receiver}}) StatusCode() int { return {{.StatusTable}}[{{.Const}}] }
func ({{.Receiver}}) ErrorCode() string { return {{.CodesVar}}[{{.Const}}] }
func ({{.Receiver}}) ErrorMessage() string { return {{.Message}} }
func ({{.Receiver}}) MarshalJSON() ([]byte, error) { return rest.Marshal(e) }
func ({{.Receiver}}) ErrorResponse() rest.Response { return rest.NewResponse(e.StatusCode(), e) }
func ({{.Receiver}}) ErrorSchema() *openapi3.Schema { return {{.SchemaFunc}}() }
func ({{.Receiver}}) Format(s fmt.State, verb rune) { rest.Format(s, verb, e.Error(), {{.Chain}}) }
{{if .Unwrap}}func ({{.Receiver}}) Unwrap() error { return e.error }
{{end}}`
}
