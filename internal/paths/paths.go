// Package paths resolves where archief keeps its configuration and its
// catalogue database.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".archief"
	DefaultDataDirName   = ".archief-db"
	ConfigFileName       = "config.yaml"
	DefaultDatabaseName  = "archief.db"
)

// Environment variables overriding the directories.
const (
	EnvConfigDir = "ARCHIEF_CONFIG_DIR"
	EnvDataDir   = "ARCHIEF_DATA_DIR"
)

const appDirName = "archief"

// platformDir holds platform lookups so tests can replace them.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/archief (fallback ~/.config/archief)
// macOS:   ~/Library/Application Support/archief
// Windows: %APPDATA%/archief
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// DefaultDataDir returns the per-user data directory.
//
// Linux:   $XDG_DATA_HOME/archief (fallback ~/.local/share/archief)
// macOS:   ~/Library/Application Support/archief
// Windows: %APPDATA%/archief
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

func xdgDir(env, homeRel string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, appDirName), nil
}

// ResolveConfigDir returns the configuration directory. Precedence:
// flag > ARCHIEF_CONFIG_DIR > ./.archief when it exists > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	local := filepath.Join(cwd, DefaultConfigDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory. Precedence:
// flag > config.yaml value > ARCHIEF_DATA_DIR > ./.archief-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// DatabasePath returns the SQLite catalogue file for name. Absolute names
// are returned unchanged; relative names live in dataDir. An empty name
// selects DefaultDatabaseName.
func DatabasePath(dataDir, name string) string {
	if name == "" {
		name = DefaultDatabaseName
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dataDir, name)
}
