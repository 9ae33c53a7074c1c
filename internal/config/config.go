// Package config fixes the on-disk layout of the application: one config
// directory holding the env file and one credential blob per provider.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/janekbaraniewski/usagetui/internal/core"
)

// ConfigDir returns the per-user application directory. Overridable via
// USAGETUI_CONFIG_DIR so tests and sandboxed installs can relocate it.
func ConfigDir() string {
	if dir := os.Getenv("USAGETUI_CONFIG_DIR"); dir != "" {
		return dir
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "usagetui")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "usagetui")
}

// EnvFilePath is the key=value file consulted after the process
// environment during credential resolution.
func EnvFilePath() string {
	return filepath.Join(ConfigDir(), "env")
}

// CredentialPath is the JSON blob holding a saved bearer token for one
// provider.
func CredentialPath(id core.ProviderIdentity) string {
	return filepath.Join(ConfigDir(), string(id)+".json")
}

// HomePath joins segments under the user's home directory. Foreign CLI
// stores (Claude, Codex, CodexBar) live there rather than under ConfigDir.
func HomePath(segments ...string) string {
	home, _ := os.UserHomeDir()
	return filepath.Join(append([]string{home}, segments...)...)
}
