package manifest

// FileName is the manifest file every kit directory carries at its top level.
// Its presence is what makes a directory a kit.
const FileName = "KIT.md"

// Metadata holds the descriptive fields extracted from a manifest header.
// Both fields default to empty: a kit without a header, or with a partial
// one, is still a perfectly good kit.
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}
