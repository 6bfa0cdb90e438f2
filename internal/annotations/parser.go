package annotations

import (
	stderrors "errors"
	"fmt"
	"go/parser"
	"go/token"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/resterr/internal/errors"
)

// Extract recognizes an annotation comment. text is the full comment
// including the leading "//" and loc is the position of the "//".
func Extract(text string, loc SourceLocation) (RawAnnotation, bool) {
	if !strings.HasPrefix(text, "//") {
		return RawAnnotation{}, false
	}
	offset := 2
	body := text[2:]
	trimmed := strings.TrimLeft(body, " \t")
	offset += len(body) - len(trimmed)
	if !strings.HasPrefix(trimmed, Prefix) {
		return RawAnnotation{}, false
	}
	offset += len(Prefix)
	rest := trimmed[len(Prefix):]

	word := rest
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		word = rest[:i]
	}
	annotationType, err := ParseAnnotationType(word)
	if err != nil {
		return RawAnnotation{}, false
	}
	offset += len(word)
	args := rest[len(word):]
	lead := len(args) - len(strings.TrimLeft(args, " \t"))
	offset += lead

	argsLoc := loc
	if argsLoc.Column > 0 {
		argsLoc.Column += offset
	}
	return RawAnnotation{
		Type:    annotationType,
		Args:    strings.TrimRight(args[lead:], " \t\r"),
		Loc:     loc,
		ArgsLoc: argsLoc,
	}, true
}

// IsAnnotation reports whether a comment is any rest:: annotation, known or not.
func IsAnnotation(text string) bool {
	body := strings.TrimLeft(strings.TrimPrefix(text, "//"), " \t")
	return strings.HasPrefix(text, "//") && strings.HasPrefix(body, Prefix)
}

// ParseTypeArgs parses the arguments of a //rest::error annotation.
// Parsing is total and has no side effects.
func ParseTypeArgs(raw RawAnnotation) (*AnnotationArguments, error) {
	args := &AnnotationArguments{Loc: raw.Loc}
	if strings.TrimSpace(raw.Args) == "" {
		return args, nil
	}

	tree, err := typeArgsParser.ParseString(raw.ArgsLoc.File, raw.Args)
	if err != nil {
		return nil, syntaxFromParticiple(err, raw)
	}

	seen := make(map[string]bool)
	for _, key := range tree.Keys {
		keyLoc := locate(raw, key.Pos)
		spec, ok := ErrorSchema.Keys[key.Name]
		if !ok {
			return nil, errors.UnsupportedAttributeKey(key.Name, keyLoc, ErrorSchema.KeyNames()...)
		}
		if seen[key.Name] {
			return nil, errors.Syntax(fmt.Sprintf("duplicate key '%s'", key.Name), keyLoc)
		}
		seen[key.Name] = true

		switch spec.Name {
		case InternalErrorKey:
			req := &InternalErrorRequest{Loc: keyLoc}
			if !key.Parens {
				req.StatusCode = Expression{Text: DefaultInternalStatus.Text, Loc: keyLoc}
				req.Defaulted = true
			} else {
				variant, err := bindPairs(raw, key.Pairs, keyLoc)
				if err != nil {
					return nil, err
				}
				req.StatusCode = variant.StatusCode
			}
			args.InternalError = req
		}
	}
	return args, nil
}

// ParseVariantArgs parses the arguments of a //rest::variant annotation.
func ParseVariantArgs(raw RawAnnotation) (*VariantAnnotation, error) {
	if strings.TrimSpace(raw.Args) == "" {
		return nil, errors.MissingRequiredKey(StatusKey, raw.Loc)
	}
	tree, err := variantArgsParser.ParseString(raw.ArgsLoc.File, raw.Args)
	if err != nil {
		return nil, syntaxFromParticiple(err, raw)
	}
	annotation, err := bindPairs(raw, tree.Pairs, raw.Loc)
	if err != nil {
		return nil, err
	}
	annotation.Loc = raw.Loc
	return annotation, nil
}

// bindPairs validates a pair list against VariantSchema.
func bindPairs(raw RawAnnotation, pairs []*pair, owner SourceLocation) (*VariantAnnotation, error) {
	result := &VariantAnnotation{Loc: owner}
	found := false
	for _, p := range pairs {
		keyLoc := locate(raw, p.Pos)
		if _, ok := VariantSchema.Keys[p.Key]; !ok {
			return nil, errors.UnsupportedAttributeKey(p.Key, keyLoc, VariantSchema.KeyNames()...)
		}
		if found {
			return nil, errors.Syntax(fmt.Sprintf("duplicate key '%s'", p.Key), keyLoc)
		}
		if p.Value == nil {
			return nil, errors.Syntax(fmt.Sprintf("'%s' requires a value", p.Key), keyLoc).
				WithSuggestion(fmt.Sprintf("write '%s = <expression>'", p.Key))
		}
		expr, err := expressionText(raw, p.Value)
		if err != nil {
			return nil, err
		}
		result.StatusCode = expr
		found = true
	}
	if !found {
		return nil, errors.MissingRequiredKey(StatusKey, owner)
	}
	return result, nil
}

// expressionText slices the verbatim expression out of the annotation and
// checks that it is a Go expression.
func expressionText(raw RawAnnotation, e *expression) (Expression, error) {
	loc := locate(raw, e.Pos)
	end := e.EndPos.Offset
	if end <= e.Pos.Offset || end > len(raw.Args) {
		end = len(raw.Args)
	}
	text := strings.TrimSpace(raw.Args[e.Pos.Offset:end])
	fset := token.NewFileSet()
	node, err := parser.ParseExprFrom(fset, "", text, 0)
	if err != nil {
		return Expression{}, errors.Syntax(fmt.Sprintf("invalid status expression %q", text), loc).
			WithCause(err).
			WithSuggestion("status_code takes a Go expression such as http.StatusNotFound or 404")
	}
	// the parser drops comments, so anything outside the node is one
	file := fset.File(node.Pos())
	if file.Offset(node.Pos()) != 0 || file.Offset(node.End()) != len(text) {
		return Expression{}, errors.Syntax(fmt.Sprintf("status expression %q contains a comment", text), loc).
			WithSuggestion("move the comment to its own line above the annotation")
	}
	return Expression{Text: text, Loc: loc}, nil
}

// locate translates a position inside the argument text to a source location.
func locate(raw RawAnnotation, pos lexer.Position) SourceLocation {
	loc := raw.ArgsLoc
	if loc.Column > 0 && pos.Column > 0 {
		loc.Column += pos.Column - 1
	}
	return loc
}

func syntaxFromParticiple(err error, raw RawAnnotation) error {
	var perr participle.Error
	if stderrors.As(err, &perr) {
		return errors.Syntax(perr.Message(), locate(raw, perr.Position())).
			WithContext("annotation", raw.Type.String()).
			WithSuggestion(strings.Join(SchemaFor(raw.Type).Examples, " | "))
	}
	return errors.Syntax(err.Error(), raw.ArgsLoc)
}
