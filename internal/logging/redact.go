package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// secretKeyPatterns mark keys whose values are masked. Matching is
// case-insensitive on substrings, so GITHUB_TOKEN and api_key both hit.
var secretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// tokenPrefixes mark values that are credentials whatever their key.
var tokenPrefixes = []string{
	"ghp_",  // GitHub personal access token
	"gho_",  // GitHub OAuth token
	"ghu_",  // GitHub user-to-server token
	"ghs_",  // GitHub server-to-server token
	"ghr_",  // GitHub refresh token
	"sk-",   // OpenAI/Anthropic keys
	"AKIA",  // AWS access key prefix
	"xoxb-", // Slack bot token
	"xoxp-", // Slack user token
}

// MaskSecrets returns a copy of env with sensitive values masked.
// MCP server definitions routinely carry API tokens in env and headers.
func MaskSecrets(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}
	masked := make(map[string]string, len(env))
	for k, v := range env {
		if ShouldMask(k) || ContainsTokenPrefix(v) {
			v = MaskValue(v)
		}
		masked[k] = v
	}
	return masked
}

// MaskValue keeps the last four characters of values longer than four
// and masks everything else.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// ShouldMask reports whether key names a sensitive value.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range secretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// redactAttr masks secrets in a record attribute. It has the shape of
// slog.HandlerOptions.ReplaceAttr so the JSON handlers share it with
// Handler. Built-in record keys are left alone.
func redactAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 {
		switch a.Key {
		case slog.TimeKey, slog.LevelKey, slog.MessageKey, slog.SourceKey:
			return a
		}
	}

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		return a
	case slog.KindAny:
		if env, ok := v.Any().(map[string]string); ok {
			return slog.Any(a.Key, MaskSecrets(env))
		}
	}

	if ShouldMask(a.Key) {
		return slog.String(a.Key, MaskValue(fmt.Sprint(v.Any())))
	}
	if v.Kind() == slog.KindString && ContainsTokenPrefix(v.String()) {
		return slog.String(a.Key, MaskValue(v.String()))
	}
	return a
}
