// Package platform provides cross-platform filesystem operations: permission
// management and symlink cloning. On Unix systems it uses chmod and native
// symlinks directly; on Windows permission changes are a no-op and symlink
// creation requires developer mode.
package platform
