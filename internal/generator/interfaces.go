package generator

import "github.com/toyz/resterr/internal/models"

// CodeGenerator turns enum descriptors into generated files
type CodeGenerator interface {
	Generate(desc *models.EnumDescriptor) (*models.GeneratedFile, error)
	GeneratePackage(metadata *models.PackageMetadata) ([]*models.GeneratedFile, error)
}

// SourceRenderer renders a generation plan as Go source
type SourceRenderer interface {
	Render(impl *models.Implementation) (string, error)
}
