package rest

import "github.com/getkin/kin-openapi/openapi3"

// ErrorSchema builds the object schema shared by every variant of an enum:
// error_code is a string restricted to codes, error_message is a free string,
// both are required.
func ErrorSchema(title string, codes ...string) *openapi3.Schema {
	enum := make([]any, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		enum = append(enum, code)
	}

	code := openapi3.NewStringSchema()
	code.Description = "Stable identifier of the error variant"
	if len(enum) > 0 {
		code.WithEnum(enum...)
	}

	message := openapi3.NewStringSchema()
	message.Description = "Human readable description of the error"

	schema := openapi3.NewObjectSchema().
		WithProperty(CodeField, code).
		WithProperty(MessageField, message).
		WithRequired([]string{CodeField, MessageField})
	schema.Title = title
	return schema
}
