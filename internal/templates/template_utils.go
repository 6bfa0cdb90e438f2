package templates

import (
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/toyz/resterr/internal/models"
)

// TemplateUtils provides common utilities for template generation
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// Unexport lowers the leading capital or acronym of an identifier:
// EndpointError becomes endpointError, APIError becomes apiError.
func (tu *TemplateUtils) Unexport(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n > 1 && n < len(runes) && unicode.IsLower(runes[n]):
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// ToSnakeCase converts an identifier to snake_case, keeping acronyms together
func (tu *TemplateUtils) ToSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// QuoteString wraps a string in quotes for code generation
func (tu *TemplateUtils) QuoteString(s string) string {
	return strconv.Quote(s)
}

// ArityNote describes the field shape of a variant for generated comments
func (tu *TemplateUtils) ArityNote(arity models.Arity) string {
	switch arity.Kind {
	case models.ArityUnit:
		return "unit variant"
	case models.ArityPositional:
		return "positional variant with " + plural(arity.Count(), "field")
	default:
		return "named variant with " + plural(arity.Count(), "field")
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

// FuncMap exposes the utilities to templates
func (tu *TemplateUtils) FuncMap() template.FuncMap {
	return template.FuncMap{
		"quote":     tu.QuoteString,
		"unexport":  tu.Unexport,
		"snake":     tu.ToSnakeCase,
		"arityNote": tu.ArityNote,
	}
}
