package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"github.com/janekbaraniewski/usagetui/internal/config"
)

// LoadEnvFile reads the local env file into a key/value map. A missing or
// unreadable file yields an empty map.
func LoadEnvFile() map[string]string {
	return LoadEnvFileFrom(config.EnvFilePath())
}

func LoadEnvFileFrom(path string) map[string]string {
	values, err := godotenv.Read(path)
	if err != nil {
		return map[string]string{}
	}
	return values
}

// WriteEnvFile updates the given keys in the env file, rewriting matching
// key=value lines in place and appending keys not yet present. Comments,
// blank lines, and unrelated keys are preserved verbatim.
func WriteEnvFile(updates map[string]string) error {
	return WriteEnvFileTo(config.EnvFilePath(), updates)
}

func WriteEnvFileTo(path string, updates map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating env file dir: %w", err)
	}

	var existing []string
	if data, err := os.ReadFile(path); err == nil {
		existing = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if len(existing) == 1 && existing[0] == "" {
			existing = nil
		}
	}

	seen := make(map[string]bool, len(updates))
	lines := make([]string, 0, len(existing)+len(updates))
	for _, line := range existing {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || !strings.Contains(trimmed, "=") {
			lines = append(lines, line)
			continue
		}
		key := strings.TrimSpace(trimmed[:strings.Index(trimmed, "=")])
		if value, ok := updates[key]; ok {
			lines = append(lines, key+"="+value)
			seen[key] = true
			continue
		}
		lines = append(lines, line)
	}

	// Append keys that weren't already in the file, in stable order.
	for _, key := range sortedKeys(updates) {
		if !seen[key] {
			lines = append(lines, key+"="+updates[key])
		}
	}

	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		return fmt.Errorf("writing env file: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
