package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".aulachat"

// Paths holds resolved filesystem paths for aulachat data.
type Paths struct {
	Base   string // ~/.aulachat
	Config string // ~/.aulachat/config.yaml
	Logs   string // ~/.aulachat/logs
	Static string // ~/.aulachat/static
}

// ResolvePaths computes all standard paths from the home directory.
// If AULACHAT_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("AULACHAT_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:   base,
		Config: filepath.Join(base, "config.yaml"),
		Logs:   filepath.Join(base, "logs"),
		Static: filepath.Join(base, "static"),
	}, nil
}

// EnsureDirs creates all standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.Base, p.Logs, p.Static}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}
