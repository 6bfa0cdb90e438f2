package models

// GeneratedFile is the rendered output for one enum
type GeneratedFile struct {
	Enum        string
	PackageName string
	FilePath    string // path where the file should be written
	Content     string // formatted Go source
	// Declares lists the package-level identifiers the file introduces
	Declares []string
}
