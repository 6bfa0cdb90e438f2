package parser

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"

	"github.com/toyz/resterr/internal/annotations"
	"github.com/toyz/resterr/internal/errors"
	"github.com/toyz/resterr/internal/models"
	"github.com/toyz/resterr/internal/utils"
)

// Parser implements the EnumParser interface
type Parser struct {
	fileProcessor *utils.FileProcessor
}

// NewParser creates a new enum parser
func NewParser() *Parser {
	return NewParserWithProcessor(utils.NewFileProcessor())
}

// NewParserWithProcessor creates a parser that reads files through fp
func NewParserWithProcessor(fp *utils.FileProcessor) *Parser {
	return &Parser{fileProcessor: fp}
}

// ParseSource parses source code from a string
func (p *Parser) ParseSource(filename, source string) (*models.PackageMetadata, error) {
	file, err := p.fileProcessor.FileReader().ParseGoSource(filename, source)
	if err != nil {
		return nil, err
	}

	metadata := &models.PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: "./",
	}
	p.extract([]utils.SourceFile{{Path: filename, AST: file}}, metadata)
	return metadata, nil
}

// ParseDirectory parses the non-generated, non-test Go files of one package
func (p *Parser) ParseDirectory(path string) (*models.PackageMetadata, error) {
	files, packageName, err := p.fileProcessor.ParseDirectoryFiles(path)
	if err != nil {
		return nil, err
	}

	metadata := &models.PackageMetadata{
		PackageName: packageName,
		PackagePath: path,
	}
	p.extract(files, metadata)
	return metadata, nil
}

// packageScan holds what the front-end needs to know about the whole package
type packageScan struct {
	fset  *token.FileSet
	types *utils.Registry[string, errors.SourceLocation]

	// pointerReceivers records, per type, whether Error() has a pointer receiver.
	pointerReceivers map[string]bool
	unwrappers       map[string]bool
}

func (p *Parser) extract(files []utils.SourceFile, metadata *models.PackageMetadata) {
	scan := &packageScan{
		fset:             p.fileProcessor.FileReader().FileSet(),
		pointerReceivers: make(map[string]bool),
		unwrappers:       make(map[string]bool),
		types:            utils.NewRegistry[string, errors.SourceLocation]("type"),
	}

	// First pass: declared types and Error methods across the package
	for _, f := range files {
		scan.collect(f.AST)
	}

	// Second pass: annotated declarations
	for _, f := range files {
		imports := fileImports(f.AST)
		for _, decl := range f.AST.Decls {
			enum, err := scan.describe(decl, f.Path, metadata)
			if err != nil {
				metadata.Errs = append(metadata.Errs, err)
				continue
			}
			if enum == nil {
				continue
			}
			enum.Imports = imports
			metadata.Enums = append(metadata.Enums, enum)
		}
	}
}

func (s *packageScan) collect(file *ast.File) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				// a redeclared type is a compile error; keep the first location
				_ = s.types.Register(ts.Name.Name, s.location(ts.Name.Pos()))
			}
		case *ast.FuncDecl:
			if name, pointer, ok := methodReceiver(d, "Error", "string"); ok {
				s.pointerReceivers[name] = pointer
			}
			if name, _, ok := methodReceiver(d, "Unwrap", "error"); ok {
				s.unwrappers[name] = true
			}
		}
	}
}

// methodReceiver matches func (T|*T) <method>() <result> and returns T
// and whether the receiver is a pointer.
func methodReceiver(fn *ast.FuncDecl, method, result string) (string, bool, bool) {
	if fn.Recv == nil || len(fn.Recv.List) != 1 || fn.Name.Name != method {
		return "", false, false
	}
	if fn.Type.Params.NumFields() != 0 || fn.Type.Results.NumFields() != 1 {
		return "", false, false
	}
	if ident, ok := fn.Type.Results.List[0].Type.(*ast.Ident); !ok || ident.Name != result {
		return "", false, false
	}

	recv := fn.Recv.List[0].Type
	pointer := false
	if star, ok := recv.(*ast.StarExpr); ok {
		recv = star.X
		pointer = true
	}
	ident, ok := recv.(*ast.Ident)
	if !ok {
		return "", false, false
	}
	return ident.Name, pointer, true
}

func fileImports(file *ast.File) []models.Import {
	var imports []models.Import
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := models.Import{Path: path}
		if spec.Name != nil {
			if spec.Name.Name == "_" {
				continue
			}
			imp.Alias = spec.Name.Name
		}
		imports = append(imports, imp)
	}
	return imports
}

func (s *packageScan) location(pos token.Pos) errors.SourceLocation {
	position := s.fset.Position(pos)
	return errors.SourceLocation{
		File:   position.Filename,
		Line:   position.Line,
		Column: position.Column,
	}
}

// annotationsIn returns the rest:: annotations of a comment group
func (s *packageScan) annotationsIn(doc *ast.CommentGroup) ([]annotations.RawAnnotation, error) {
	if doc == nil {
		return nil, nil
	}
	var found []annotations.RawAnnotation
	for _, comment := range doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}
		loc := s.location(comment.Pos())
		raw, ok := annotations.Extract(comment.Text, loc)
		if !ok {
			return nil, errors.Syntax(fmt.Sprintf("unknown annotation %q", comment.Text), loc).
				WithSuggestions("use //rest::error on the type declaration", "use //rest::variant on each variant")
		}
		found = append(found, raw)
	}
	return found, nil
}

func ofType(raws []annotations.RawAnnotation, t annotations.AnnotationType) []annotations.RawAnnotation {
	var out []annotations.RawAnnotation
	for _, raw := range raws {
		if raw.Type == t {
			out = append(out, raw)
		}
	}
	return out
}

// describe builds the descriptor of an annotated declaration. It returns nil
// when the declaration carries no //rest::error annotation.
func (s *packageScan) describe(decl ast.Decl, filePath string, metadata *models.PackageMetadata) (*models.EnumDescriptor, error) {
	var doc *ast.CommentGroup
	switch d := decl.(type) {
	case *ast.GenDecl:
		doc = d.Doc
	case *ast.FuncDecl:
		doc = d.Doc
	}
	raws, err := s.annotationsIn(doc)
	if err != nil {
		return nil, err
	}
	markers := ofType(raws, annotations.ErrorAnnotation)
	if len(markers) == 0 {
		return nil, nil
	}
	if len(markers) > 1 {
		return nil, errors.Syntax("more than one //rest::error annotation", markers[1].Loc)
	}
	marker := markers[0]

	args, err := annotations.ParseTypeArgs(marker)
	if err != nil {
		return nil, err
	}

	enum := &models.EnumDescriptor{
		PackageName: metadata.PackageName,
		PackagePath: metadata.PackagePath,
		FilePath:    filePath,
		Loc:         marker.Loc,
		Annotation:  marker,
		Args:        args,
	}

	gen, ok := decl.(*ast.GenDecl)
	if !ok {
		fn := decl.(*ast.FuncDecl)
		enum.Name = fn.Name.Name
		enum.NonEnum = "annotation is attached to a function"
		return enum, nil
	}
	if gen.Tok != token.TYPE {
		enum.Name = declName(gen)
		enum.NonEnum = fmt.Sprintf("annotation is attached to a %s declaration", gen.Tok)
		return enum, nil
	}

	if len(gen.Specs) == 0 {
		enum.Name = "type"
		enum.NonEnum = "the declaration is empty"
		return enum, nil
	}
	head := gen.Specs[0].(*ast.TypeSpec)
	enum.Name = head.Name.Name
	if head.TypeParams != nil {
		enum.NonEnum = "generic types cannot be error enums"
		return enum, nil
	}
	if _, ok := head.Type.(*ast.InterfaceType); !ok {
		enum.NonEnum = fmt.Sprintf("the first type of the declaration must be an interface, found %s", kindOf(head.Type))
		return enum, nil
	}

	for _, spec := range gen.Specs[1:] {
		variant, err := s.variant(enum.Name, spec.(*ast.TypeSpec))
		if err != nil {
			return nil, err
		}
		enum.Variants = append(enum.Variants, variant)
	}

	if args.WantsInternalError() {
		if err := s.types.Register(models.InternalErrorVariant, marker.Loc); err != nil {
			existing, _ := s.types.Get(models.InternalErrorVariant)
			return nil, errors.DuplicateVariant(models.InternalErrorVariant, args.InternalError.Loc, existing).
				WithContext("enum", enum.Name)
		}
	}

	return enum, nil
}

func (s *packageScan) variant(enum string, spec *ast.TypeSpec) (models.VariantDescriptor, error) {
	name := spec.Name.Name
	loc := s.location(spec.Name.Pos())

	raws, err := s.annotationsIn(spec.Doc)
	if err != nil {
		return models.VariantDescriptor{}, err
	}
	if markers := ofType(raws, annotations.ErrorAnnotation); len(markers) > 0 {
		return models.VariantDescriptor{}, errors.InvalidVariant(enum, name, markers[0].Loc, "//rest::error belongs on the type declaration, not on a variant")
	}

	if spec.TypeParams != nil {
		return models.VariantDescriptor{}, errors.InvalidVariant(enum, name, loc, "variants cannot be generic")
	}
	if spec.Assign.IsValid() {
		return models.VariantDescriptor{}, errors.InvalidVariant(enum, name, loc, "variants cannot be type aliases")
	}
	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return models.VariantDescriptor{}, errors.InvalidVariant(enum, name, loc, fmt.Sprintf("expected a struct type, found %s", kindOf(spec.Type)))
	}

	arity := arityOf(st)
	return models.VariantDescriptor{
		Name:            name,
		Arity:           arity,
		Annotations:     ofType(raws, annotations.VariantAnnotationType),
		Loc:             loc,
		PointerReceiver: s.pointerReceivers[name],
		HasUnwrap:       s.unwrappers[name],
		Transparent:     isTransparent(arity),
	}, nil
}

func arityOf(st *ast.StructType) models.Arity {
	var fields []models.Field
	embedded := 0
	for _, field := range st.Fields.List {
		typ := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			fields = append(fields, models.Field{Type: typ, Embedded: true})
			embedded++
			continue
		}
		for _, ident := range field.Names {
			fields = append(fields, models.Field{Name: ident.Name, Type: typ})
		}
	}

	switch {
	case len(fields) == 0:
		return models.Arity{Kind: models.ArityUnit}
	case embedded == len(fields):
		return models.Arity{Kind: models.ArityPositional, Fields: fields}
	default:
		return models.Arity{Kind: models.ArityNamed, Fields: fields}
	}
}

// isTransparent matches struct{ error }
func isTransparent(arity models.Arity) bool {
	return arity.Kind == models.ArityPositional &&
		arity.Count() == 1 &&
		arity.Fields[0].Type == "error"
}

func declName(gen *ast.GenDecl) string {
	if len(gen.Specs) == 0 {
		return gen.Tok.String()
	}
	switch spec := gen.Specs[0].(type) {
	case *ast.ValueSpec:
		return spec.Names[0].Name
	case *ast.ImportSpec:
		return spec.Path.Value
	}
	return gen.Tok.String()
}

func kindOf(expr ast.Expr) string {
	switch expr.(type) {
	case *ast.StructType:
		return "a struct"
	case *ast.InterfaceType:
		return "an interface"
	case *ast.FuncType:
		return "a function type"
	case *ast.MapType:
		return "a map type"
	case *ast.ArrayType:
		return "a slice or array type"
	case *ast.ChanType:
		return "a channel type"
	default:
		return "the named type " + types.ExprString(expr)
	}
}
