package generator

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/toyz/resterr/internal/annotations"
	"github.com/toyz/resterr/internal/errors"
	"github.com/toyz/resterr/internal/models"
	"github.com/toyz/resterr/internal/templates"
	"github.com/toyz/resterr/internal/utils"
	"github.com/toyz/resterr/pkg/rest"
)

// Options tune the generated code
type Options struct {
	// OutputPrefix names generated files, utils.DefaultOutputPrefix when empty.
	OutputPrefix string
	// InternalMessage replaces rest.InternalErrorMessage for opaque variants.
	InternalMessage string
}

// Generator implements the CodeGenerator interface
type Generator struct {
	options  Options
	renderer SourceRenderer
	names    *templates.TemplateUtils
}

// NewGenerator creates a generator with default options
func NewGenerator() *Generator {
	return NewGeneratorWithOptions(Options{})
}

// NewGeneratorWithOptions creates a generator with the given options
func NewGeneratorWithOptions(options Options) *Generator {
	if options.OutputPrefix == "" {
		options.OutputPrefix = utils.DefaultOutputPrefix
	}
	return &Generator{
		options:  options,
		renderer: templates.MustNewRenderer(),
		names:    templates.NewTemplateUtils(),
	}
}

// SetRenderer swaps the rendering backend
func (g *Generator) SetRenderer(renderer SourceRenderer) {
	g.renderer = renderer
}

// GeneratePackage generates every enum of a package. Enums are independent:
// a failing enum contributes diagnostics and no file, the others are still
// generated. The returned error is a *errors.MultipleErrors.
func (g *Generator) GeneratePackage(metadata *models.PackageMetadata) ([]*models.GeneratedFile, error) {
	if metadata == nil {
		return nil, fmt.Errorf("metadata cannot be nil")
	}

	errs := errors.NewMultipleErrors()
	for _, err := range metadata.Errs {
		errs.Add(err)
	}

	outputs := utils.NewRegistry[string, string]("output file")
	declared := utils.NewRegistry[string, string]("generated identifier")
	var files []*models.GeneratedFile
	for _, enum := range metadata.Enums {
		file, err := g.Generate(enum)
		if err != nil {
			errs.Add(err)
			continue
		}
		if other, ok := outputs.Get(file.FilePath); ok {
			errs.Add(errors.GenerateError(fmt.Sprintf("%s and %s would both be generated into %s", other, enum.Name, file.FilePath)).
				WithLocation(enum.Loc))
			continue
		}
		if err := redeclared(declared, enum, file.Declares); err != nil {
			errs.Add(err)
			continue
		}

		_ = outputs.Register(file.FilePath, enum.Name)
		for _, name := range file.Declares {
			_ = declared.Register(name, enum.Name)
		}
		files = append(files, file)
	}

	return files, errs.ErrorOrNil()
}

// redeclared reports the first identifier another enum of the package
// already generates.
func redeclared(declared *utils.Registry[string, string], enum *models.EnumDescriptor, names []string) error {
	for _, name := range names {
		if other, ok := declared.Get(name); ok {
			return errors.GenerateError(fmt.Sprintf("%s and %s would both declare %s", other, enum.Name, name)).
				WithLocation(enum.Loc).
				WithContext("enum", enum.Name).
				WithSuggestion("rename one of the enums or variants")
		}
	}
	return nil
}

// Generate runs the transformer, the five behavior passes and the renderer
// for one enum. Nothing is returned unless every step succeeds.
func (g *Generator) Generate(desc *models.EnumDescriptor) (*models.GeneratedFile, error) {
	if desc == nil {
		return nil, errors.NotAnEnum("<nil>", errors.SourceLocation{}, "no declaration")
	}
	enum, err := Transform(desc, desc.Args)
	if err != nil {
		return nil, err
	}

	impl, err := g.BuildImplementation(enum)
	if err != nil {
		return nil, err
	}

	source, err := g.renderer.Render(impl)
	if err != nil {
		return nil, errors.WrapGenerateError(enum.Name, err)
	}
	formatted, err := utils.FormatGoCode(impl.FilePath, []byte(source))
	if err != nil {
		return nil, errors.WrapGenerateError(enum.Name, err).
			WithLocation(enum.Loc).
			WithSuggestion("check that every status_code expression is a valid Go expression")
	}

	return &models.GeneratedFile{
		Enum:        enum.Name,
		PackageName: impl.PackageName,
		FilePath:    impl.FilePath,
		Content:     string(formatted),
		Declares:    declarations(impl),
	}, nil
}

// declarations lists the package-level identifiers rendered for impl
func declarations(impl *models.Implementation) []string {
	names := []string{impl.Schema.CodesFunc, impl.Schema.Func}
	if len(impl.Variants) > 0 {
		names = append(names, impl.Status.Table, impl.Schema.CodesVar)
	}
	for _, v := range impl.Variants {
		names = append(names, v.Const)
	}
	if impl.Synthetic != nil {
		names = append(names, impl.Synthetic.Name, "New"+impl.Synthetic.Name, impl.Converter)
	}
	return names
}

// OutputPath is the file the enum's code is generated into, next to the
// declaring file.
func (g *Generator) OutputPath(desc *models.EnumDescriptor) string {
	dir := desc.PackagePath
	if desc.FilePath != "" {
		dir = filepath.Dir(desc.FilePath)
	}
	return filepath.Join(dir, g.options.OutputPrefix+g.names.ToSnakeCase(desc.Name)+".go")
}

// BuildImplementation derives the five behaviors of a finalized enum.
// The status pass runs first and fails on the first variant without a
// valid annotation.
func (g *Generator) BuildImplementation(desc *models.EnumDescriptor) (*models.Implementation, error) {
	if !desc.IsEnum() {
		return nil, errors.NotAnEnum(desc.Name, desc.Loc, desc.NonEnum)
	}

	prefix := g.names.Unexport(desc.Name)
	variants := g.variantImpls(desc, prefix)

	status, err := g.statusMapping(desc, variants, prefix)
	if err != nil {
		return nil, err
	}
	if err := checkNames(desc, variants, status.Table, prefix+"Codes"); err != nil {
		return nil, err
	}

	imports, err := selectImports(desc, status.Entries)
	if err != nil {
		return nil, err
	}

	impl := &models.Implementation{
		Enum:          desc.Name,
		PackageName:   desc.PackageName,
		FilePath:      g.OutputPath(desc),
		Variants:      variants,
		Status:        status,
		Response:      responseConversion(),
		Serialization: g.serialization(desc),
		Schema:        schema(desc, prefix),
		Chain:         chainFormatting(desc),
		Imports:       imports,
	}
	for i := range variants {
		if variants[i].Synthetic {
			impl.Synthetic = &variants[i]
			impl.Converter = "To" + desc.Name
		}
	}
	return impl, nil
}

func (g *Generator) variantImpls(desc *models.EnumDescriptor, prefix string) []models.VariantImpl {
	impls := make([]models.VariantImpl, 0, len(desc.Variants))
	for _, v := range desc.Variants {
		impl := models.VariantImpl{
			Name:      v.Name,
			Const:     prefix + v.Name,
			Receiver:  "e " + v.Name,
			Assertion: v.Name + "{}",
			Arity:     v.Arity,
			Opaque:    v.Opaque,
			Synthetic: v.Synthetic,
			Unwrap:    v.Transparent && !v.HasUnwrap,
		}
		if v.PointerReceiver {
			impl.Receiver = "e *" + v.Name
			impl.Assertion = "(*" + v.Name + ")(nil)"
		}
		impls = append(impls, impl)
	}
	return impls
}

// statusMapping is the status pass: every variant needs exactly one
// annotation with a status_code.
func (g *Generator) statusMapping(desc *models.EnumDescriptor, variants []models.VariantImpl, prefix string) (models.StatusMapping, error) {
	mapping := models.StatusMapping{Table: prefix + "Status"}
	for i, v := range desc.Variants {
		expr, err := g.statusOf(desc, v)
		if err != nil {
			return models.StatusMapping{}, err
		}
		mapping.Entries = append(mapping.Entries, models.StatusEntry{
			Variant: v.Name,
			Index:   i,
			Const:   variants[i].Const,
			Expr:    expr,
		})
	}
	return mapping, nil
}

func (g *Generator) statusOf(desc *models.EnumDescriptor, v models.VariantDescriptor) (annotations.Expression, error) {
	if v.Synthetic {
		if v.StatusCode == nil {
			return annotations.Expression{}, errors.GenerateError(fmt.Sprintf("synthetic variant %s has no status code", v.Name))
		}
		if desc.Args.WantsInternalError() && desc.Args.InternalError.Defaulted {
			return defaultedStatus(desc, *v.StatusCode), nil
		}
		return *v.StatusCode, nil
	}

	switch len(v.Annotations) {
	case 0:
		return annotations.Expression{}, errors.MissingAnnotationOnVariant(desc.Name, v.Name, v.Loc)
	case 1:
	default:
		return annotations.Expression{}, errors.DuplicateAnnotation(v.Name, v.Annotations[1].Loc).
			WithContext("enum", desc.Name)
	}

	parsed, err := annotations.ParseVariantArgs(v.Annotations[0])
	if err != nil {
		if diag, ok := err.(*errors.BaseError); ok {
			diag.Message = fmt.Sprintf("variant '%s' of '%s': %s", v.Name, desc.Name, diag.Message)
			return annotations.Expression{}, diag.
				WithContext("enum", desc.Name).
				WithContext("variant", v.Name)
		}
		return annotations.Expression{}, err
	}
	return parsed.StatusCode, nil
}

// checkNames rejects variants whose discriminant constant would collide
// with a generated table.
func checkNames(desc *models.EnumDescriptor, variants []models.VariantImpl, tables ...string) error {
	for i, v := range variants {
		for _, table := range tables {
			if v.Const == table {
				return errors.GenerateError(fmt.Sprintf("variant %s of %s collides with the generated identifier %s", v.Name, desc.Name, table)).
					WithLocation(desc.Variants[i].Loc).
					WithSuggestion("rename the variant")
			}
		}
	}
	return nil
}

func responseConversion() models.ResponseConversion {
	return models.ResponseConversion{ContentType: rest.ContentType}
}

// serialization is the serializer pass; the Opaque marker alone decides
// whether a variant's display text reaches the wire.
func (g *Generator) serialization(desc *models.EnumDescriptor) models.Serialization {
	fixed := "rest.InternalErrorMessage"
	if g.options.InternalMessage != "" {
		fixed = strconv.Quote(g.options.InternalMessage)
	}

	s := models.Serialization{
		CodeField:    rest.CodeField,
		MessageField: rest.MessageField,
		FixedMessage: fixed,
	}
	for _, v := range desc.Variants {
		source := models.MessageDisplay
		if v.Opaque {
			source = models.MessageFixed
		}
		s.Variants = append(s.Variants, models.SerializedVariant{
			Variant: v.Name,
			Code:    v.Tag(),
			Message: source,
		})
	}
	return s
}

func schema(desc *models.EnumDescriptor, prefix string) models.Schema {
	s := models.Schema{
		Title:     desc.Name,
		Func:      desc.Name + "Schema",
		CodesFunc: desc.Name + "Codes",
		CodesVar:  prefix + "Codes",
		Required:  []string{rest.CodeField, rest.MessageField},
	}
	seen := make(map[string]bool, len(desc.Variants))
	for _, v := range desc.Variants {
		if tag := v.Tag(); !seen[tag] {
			seen[tag] = true
			s.Codes = append(s.Codes, tag)
		}
	}
	return s
}

// chainFormatting starts a transparent variant's chain below the error it
// wraps, since its display text already is that error's text.
func chainFormatting(desc *models.EnumDescriptor) models.ChainFormatting {
	var c models.ChainFormatting
	for _, v := range desc.Variants {
		expr := "errors.Unwrap(e)"
		if v.Transparent {
			expr = "errors.Unwrap(e.error)"
		}
		c.Variants = append(c.Variants, models.ChainStart{Variant: v.Name, Expr: expr})
	}
	return c
}
