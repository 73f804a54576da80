// Package project reads and writes the per-project selection stored at
// .capkit/project.yaml: which AI tools receive kits and which module roots
// are selected. It also owns the registry mapping each supported tool to
// its kit target directory inside a project.
package project
