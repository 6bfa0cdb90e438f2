package generator

import (
	"github.com/toyz/resterr/internal/annotations"
	"github.com/toyz/resterr/internal/errors"
	"github.com/toyz/resterr/internal/models"
)

// Transform finalizes the variant list of an enum. When args request
// internal_error, a synthetic InternalError variant is appended: one embedded
// error, opaque, carrying the requested status expression. desc is never
// modified.
func Transform(desc *models.EnumDescriptor, args *annotations.AnnotationArguments) (*models.EnumDescriptor, error) {
	if desc == nil {
		return nil, errors.NotAnEnum("<nil>", errors.SourceLocation{}, "no declaration")
	}
	if !desc.IsEnum() {
		return nil, errors.NotAnEnum(desc.Name, desc.Loc, desc.NonEnum)
	}

	out := desc.Clone()
	if !args.WantsInternalError() {
		return out, nil
	}

	request := args.InternalError
	if existing, ok := desc.Variant(models.InternalErrorVariant); ok {
		return nil, errors.DuplicateVariant(models.InternalErrorVariant, request.Loc, existing.Loc).
			WithContext("enum", desc.Name)
	}

	status := request.StatusCode
	out.Variants = append(out.Variants, models.VariantDescriptor{
		Name: models.InternalErrorVariant,
		Arity: models.Arity{
			Kind:   models.ArityPositional,
			Fields: []models.Field{{Type: "error", Embedded: true}},
		},
		Loc:         request.Loc,
		Transparent: true,
		Opaque:      true,
		Synthetic:   true,
		StatusCode:  &status,
	})
	return out, nil
}
