package userdata

import (
	"os"

	"github.com/capkit-labs/capkit/internal/branding"
)

// Mode represents the operating mode of the CLI.
type Mode int

const (
	// ModeEndUser is for developers who installed the CLI on its own.
	// Catalog and modules live under ~/.capkit/.
	ModeEndUser Mode = iota
	// ModePlatformTeam is for developers working inside a kit repository.
	// CAPKIT_HOME is set; catalog and modules live inside that checkout.
	ModePlatformTeam
)

// DetectMode returns the current operating mode.
// If CAPKIT_HOME is set, the CLI is in platform-team mode.
// Otherwise, it's in end-user mode.
func DetectMode() Mode {
	if os.Getenv(branding.EnvVar("HOME")) != "" {
		return ModePlatformTeam
	}
	return ModeEndUser
}

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModePlatformTeam:
		return "platform-team"
	case ModeEndUser:
		return "end-user"
	default:
		return "unknown"
	}
}
