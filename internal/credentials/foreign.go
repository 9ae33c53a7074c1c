package credentials

import (
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/janekbaraniewski/usagetui/internal/config"
	"github.com/janekbaraniewski/usagetui/internal/core"
)

// Foreign CLI credential stores. These files belong to other applications,
// so every read here is best-effort: any missing file, parse failure, or
// absent field degrades to "not found".

// ClaudeCLICredentialPath is ~/.claude/.credentials.json, written by the
// Claude CLI after `claude setup-token`.
func ClaudeCLICredentialPath() string {
	return config.HomePath(".claude", ".credentials.json")
}

// CodexCLIAuthPath is ~/.codex/auth.json, written by the Codex CLI on
// login.
func CodexCLIAuthPath() string {
	return config.HomePath(".codex", "auth.json")
}

// CodexBarConfigPath is ~/.codexbar/config.json, a legacy store holding a
// providers list with per-provider API keys.
func CodexBarConfigPath() string {
	return config.HomePath(".codexbar", "config.json")
}

// LoadClaudeCLIToken reads the Claude CLI OAuth token. Tokens whose expiry
// has passed are skipped so a stale CLI login doesn't shadow a fresh env
// var on the next resolution.
func LoadClaudeCLIToken(path string) (core.Credential, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Credential{}, false
	}

	oauth := gjson.GetBytes(data, "claudeAiOauth")
	token := oauth.Get("accessToken").String()
	if token == "" {
		return core.Credential{}, false
	}

	cred := core.Credential{Token: token, Source: core.SourceForeignCLI}
	if millis := oauth.Get("expiresAt"); millis.Type == gjson.Number {
		t := time.UnixMilli(millis.Int()).UTC()
		cred.ExpiresAt = &t
		if cred.Expired(time.Now()) {
			return core.Credential{}, false
		}
	}
	return cred, true
}

// LoadCodexCLIToken reads the Codex CLI access token from auth.json.
func LoadCodexCLIToken(path string) (core.Credential, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Credential{}, false
	}

	token := gjson.GetBytes(data, "tokens.access_token").String()
	if token == "" {
		return core.Credential{}, false
	}
	return core.Credential{Token: token, Source: core.SourceForeignCLI}, true
}

// LoadCodexBarToken scans the CodexBar providers list for the entry whose
// id matches the given provider and returns its apiKey.
func LoadCodexBarToken(path string, id core.ProviderIdentity) (core.Credential, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Credential{}, false
	}

	var token string
	gjson.GetBytes(data, "providers").ForEach(func(_, entry gjson.Result) bool {
		if entry.Get("id").String() != string(id) {
			return true
		}
		token = entry.Get("apiKey").String()
		return false
	})

	if token == "" {
		return core.Credential{}, false
	}
	return core.Credential{Token: token, Source: core.SourceForeignCLI}, true
}
