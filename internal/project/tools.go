package project

import "path/filepath"

// ToolName identifies a supported AI tool integration.
type ToolName string

const (
	ClaudeCode ToolName = "claude-code"
	Cursor     ToolName = "cursor"
	Copilot    ToolName = "copilot"
	OpenCode   ToolName = "opencode"
)

// AllTools returns all supported tool names.
func AllTools() []ToolName {
	return []ToolName{ClaudeCode, Cursor, Copilot, OpenCode}
}

// toolTargets maps each tool to its kit directory relative to a project root.
var toolTargets = map[ToolName]string{
	ClaudeCode: filepath.Join(".claude", "kits"),
	Cursor:     filepath.Join(".cursor", "kits"),
	Copilot:    filepath.Join(".github", "kits"),
	OpenCode:   filepath.Join(".opencode", "kits"),
}

// ParseToolName converts a string to a ToolName, returning false if invalid.
func ParseToolName(s string) (ToolName, bool) {
	t := ToolName(s)
	if _, ok := toolTargets[t]; !ok {
		return "", false
	}
	return t, true
}

// TargetDir returns the directory inside projectDir that receives kits for
// this tool.
func (t ToolName) TargetDir(projectDir string) string {
	return filepath.Join(projectDir, toolTargets[t])
}
