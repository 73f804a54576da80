package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// CloneSymlink recreates the symlink at src as dst, preserving the link
// target verbatim so relative targets keep pointing inside the copied tree.
// An existing entry at dst is replaced.
func CloneSymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("reading link target of %s: %w", src, err)
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replacing %s: %w", dst, err)
	}
	if err := os.Symlink(target, dst); err != nil {
		return fmt.Errorf("linking %s: %w", dst, err)
	}
	return nil
}

// IsSymlinkSupported returns true if the current platform supports native symlinks.
// On Windows this attempts a test symlink to check developer mode.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	// Try creating a temporary symlink to test support.
	tmpDir := os.TempDir()
	link := strings.TrimRight(tmpDir, `\/`) + string(os.PathSeparator) + ".capkit-symlink-test"
	defer os.Remove(link)

	if err := os.Symlink(tmpDir, link); err != nil {
		return false
	}
	return true
}
