package parser

import (
	"github.com/toyz/resterr/internal/models"
)

// EnumParser extracts annotated error enums from Go source
type EnumParser interface {
	ParseDirectory(path string) (*models.PackageMetadata, error)
	ParseSource(filename, source string) (*models.PackageMetadata, error)
}
