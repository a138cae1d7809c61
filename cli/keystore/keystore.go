// Package keystore provides encrypted storage for bot tokens.
package keystore

import (
	"os"
	"path/filepath"
	"runtime"
)

// Keystore defines the interface for secure token storage.
type Keystore interface {
	// Set stores a token under a profile name.
	Set(name, token string) error
	// Get retrieves a token by profile name. Returns error if not found.
	Get(name string) (string, error)
	// Delete removes a token by profile name.
	Delete(name string) error
	// List returns all stored profile names.
	List() ([]string, error)
}

// ErrTokenNotFound is returned when a requested token does not exist.
type ErrTokenNotFound struct {
	Name string
}

func (e *ErrTokenNotFound) Error() string {
	return "token not found: " + e.Name
}

// DefaultKeystorePath returns the default keystore file path.
// - macOS/Linux: ~/.concord/tokens.enc
// - Windows: %USERPROFILE%\.concord\tokens.enc
func DefaultKeystorePath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "tokens.enc"
	}

	return filepath.Join(homeDir, ".concord", "tokens.enc")
}

// NewKeystore creates a new keystore using file-based encrypted storage.
func NewKeystore() (Keystore, error) {
	return NewFileKeystore(DefaultKeystorePath())
}
