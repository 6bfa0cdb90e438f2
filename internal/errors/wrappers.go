package errors

import "fmt"

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName)
}

// WrapGenerateError wraps a failure while generating code for an enum
func WrapGenerateError(enum string, cause error) *BaseError {
	return Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate '%s'", enum), cause).
		WithContext("enum", enum)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(path, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, path)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("path", path).
		WithContext("operation", operation)
}

// GenerateError creates a generation error without an underlying cause
func GenerateError(message string) *BaseError {
	return New(GenerationErrorCode, message)
}
