package manifest

import (
	"fmt"
	"os"
	"strings"
)

// headerMarker delimits the metadata header: a line containing exactly three
// hyphens as the first line of the file, closed by the next such line.
const headerMarker = "---"

// ParseMetadata reads the manifest at path and extracts its Metadata.
//
// Only an unreadable file is an error. A manifest without a header, or with
// an unterminated one, yields zero Metadata. Within the header the first
// name: and description: lines win and later duplicates are ignored; the
// header is deliberately not handed to a YAML decoder, because authors get
// away with duplicate keys, odd indentation and unknown fields, and only
// two scalar lines are ever consumed here. The full header is still checked
// as YAML by Validate, which is the authoring-time tool.
func ParseMetadata(path string) (Metadata, error) {
	data, err := readFile(path)
	if err != nil {
		return Metadata{}, err
	}
	return parseMetadata(data), nil
}

func parseMetadata(data []byte) Metadata {
	header, ok := extractHeader(data)
	if !ok {
		return Metadata{}
	}

	var meta Metadata
	var haveName, haveDesc bool
	for _, line := range header {
		switch {
		case !haveName && strings.HasPrefix(line, "name:"):
			meta.Name = headerValue(line, "name:")
			haveName = true
		case !haveDesc && strings.HasPrefix(line, "description:"):
			meta.Description = headerValue(line, "description:")
			haveDesc = true
		}
	}
	return meta
}

// extractHeader returns the lines between the opening marker, which must be
// the very first line of the file, and the closing marker. A missing or
// unterminated header reports ok=false.
func extractHeader(data []byte) (header []string, ok bool) {
	lines := strings.Split(string(data), "\n")
	if strings.TrimSuffix(lines[0], "\r") != headerMarker {
		return nil, false
	}
	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if line == headerMarker {
			return header, true
		}
		header = append(header, line)
	}
	return nil, false
}

// headerValue trims the value of a "key: value" line and strips one pair of
// matching surrounding quotes, so `description: "desc"` reads as desc.
func headerValue(line, prefix string) string {
	v := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if first == last && (first == '"' || first == '\'') {
			v = v[1 : len(v)-1]
		}
	}
	return v
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
