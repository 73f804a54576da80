package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

// writeManifest drops manifest content into a fresh temp file and returns its path.
func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Metadata
	}{
		{
			name:    "full header",
			content: "---\nname: alpha-kit\ndescription: Deploy helpers\n---\n\n# Alpha\n\nBody.\n",
			want:    Metadata{Name: "alpha-kit", Description: "Deploy helpers"},
		},
		{
			name:    "no header",
			content: "# Just markdown\n\nNo metadata at all.\n",
			want:    Metadata{},
		},
		{
			name:    "header not on first line",
			content: "\n---\nname: late\n---\n",
			want:    Metadata{},
		},
		{
			name:    "unterminated header",
			content: "---\nname: dangling\ndescription: never closed\n",
			want:    Metadata{},
		},
		{
			name:    "empty header",
			content: "---\n---\nBody.\n",
			want:    Metadata{},
		},
		{
			name:    "name only",
			content: "---\nname: solo\n---\n",
			want:    Metadata{Name: "solo"},
		},
		{
			name:    "description only",
			content: "---\ndescription: no name given\n---\n",
			want:    Metadata{Description: "no name given"},
		},
		{
			name:    "first duplicate wins",
			content: "---\nname: first\nname: second\ndescription: one\ndescription: two\n---\n",
			want:    Metadata{Name: "first", Description: "one"},
		},
		{
			name:    "values trimmed",
			content: "---\nname:    padded   \ndescription: \t tabbed \n---\n",
			want:    Metadata{Name: "padded", Description: "tabbed"},
		},
		{
			name:    "double quoted value",
			content: "---\nname: alpha\ndescription: \"desc\"\n---\n",
			want:    Metadata{Name: "alpha", Description: "desc"},
		},
		{
			name:    "single quoted value",
			content: "---\nname: 'alpha'\ndescription: fine\n---\n",
			want:    Metadata{Name: "alpha", Description: "fine"},
		},
		{
			name:    "mismatched quotes kept",
			content: "---\ndescription: \"half quoted\n---\n",
			want:    Metadata{Description: "\"half quoted"},
		},
		{
			name:    "crlf line endings",
			content: "---\r\nname: windows\r\ndescription: carriage returns\r\n---\r\nBody.\r\n",
			want:    Metadata{Name: "windows", Description: "carriage returns"},
		},
		{
			name:    "indented keys ignored",
			content: "---\nmeta:\n  name: nested\n  description: nested too\n---\n",
			want:    Metadata{},
		},
		{
			name:    "longer key not confused with name",
			content: "---\nnamespace: ops\nname: real\n---\n",
			want:    Metadata{Name: "real"},
		},
		{
			name:    "unknown keys ignored",
			content: "---\nversion: 1.2.0\nname: alpha\nauthor: someone\ndescription: kept\n---\n",
			want:    Metadata{Name: "alpha", Description: "kept"},
		},
		{
			name:    "empty value",
			content: "---\nname:\ndescription: present\n---\n",
			want:    Metadata{Description: "present"},
		},
		{
			name:    "second marker only ends header",
			content: "---\nname: alpha\n---\nname: body-text\n",
			want:    Metadata{Name: "alpha"},
		},
		{
			name:    "empty file",
			content: "",
			want:    Metadata{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)
			got, err := ParseMetadata(path)
			if err != nil {
				t.Fatalf("ParseMetadata error: %v", err)
			}
			if got.Name != tt.want.Name {
				t.Errorf("Name = %q, want %q", got.Name, tt.want.Name)
			}
			if got.Description != tt.want.Description {
				t.Errorf("Description = %q, want %q", got.Description, tt.want.Description)
			}
		})
	}
}

func TestParseMetadata_Testdata(t *testing.T) {
	got, err := ParseMetadata(testPath("valid-kit.md"))
	if err != nil {
		t.Fatalf("ParseMetadata error: %v", err)
	}
	if got.Name != "release-checklist" {
		t.Errorf("Name = %q, want %q", got.Name, "release-checklist")
	}
	if got.Description != "Walk a release from tag to announcement without missing a step" {
		t.Errorf("Description = %q", got.Description)
	}
}

func TestParseMetadata_FileNotFound(t *testing.T) {
	_, err := ParseMetadata(testPath("nonexistent.md"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestParseMetadata_ReadOnly(t *testing.T) {
	// The reader must leave the manifest untouched.
	path := writeManifest(t, "---\nname: alpha\n---\n")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseMetadata(path); err != nil {
		t.Fatalf("ParseMetadata error: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("manifest content changed during parse")
	}
}
