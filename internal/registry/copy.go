package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/capkit-labs/capkit/internal/platform"
)

// copyTree recursively copies the kit tree at src into dst, overwriting
// files already present. Directories, regular files and symlinks all carry
// over; an entry the engine cannot reproduce is an error rather than a
// silent gap in the installed kit.
func copyTree(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := copyTree(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type()&os.ModeSymlink != 0:
			if err := platform.CloneSymlink(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported entry %s (%s)", srcPath, entry.Type())
		}
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, data, srcInfo.Mode()); err != nil {
		return err
	}

	// WriteFile applies the mode only on create, masked by the umask;
	// overwritten files would otherwise keep their previous bits.
	return platform.Chmod(dst, srcInfo.Mode())
}
