package logging

import (
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMaskSecrets(t *testing.T) {
	got := MaskSecrets(map[string]string{
		"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_1234567890",
		"OPENAI":                       "sk-proj-abcd",
		"PASSWORD":                     "abc",
		"LOG_LEVEL":                    "debug",
	})
	want := map[string]string{
		"GITHUB_PERSONAL_ACCESS_TOKEN": "****7890",
		"OPENAI":                       "****abcd",
		"PASSWORD":                     "********",
		"LOG_LEVEL":                    "debug",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MaskSecrets() mismatch (-want +got):\n%s", diff)
	}
	if MaskSecrets(nil) != nil {
		t.Error("MaskSecrets(nil) should be nil")
	}
}

func TestRedactAttr(t *testing.T) {
	tests := []struct {
		name   string
		groups []string
		attr   slog.Attr
		want   string
	}{
		{"message untouched", nil, slog.String(slog.MessageKey, "sk-looks-like-a-key"), "sk-looks-like-a-key"},
		{"secret key", nil, slog.String("Authorization", "Bearer abcdefgh"), "****efgh"},
		{"secret key non-string", nil, slog.Int("api_key", 123456), "****3456"},
		{"token value", []string{"server"}, slog.String("arg", "xoxb-1111-2222"), "****2222"},
		{"plain value", nil, slog.String("path", ".mcp.json"), ".mcp.json"},
		{"map values", nil, slog.Any("headers", map[string]string{"X-Api-Key": "k-00001111"}), "map[X-Api-Key:****1111]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := redactAttr(tt.groups, tt.attr)
			if s := got.Value.String(); s != tt.want {
				t.Errorf("redactAttr() = %q, want %q", s, tt.want)
			}
		})
	}
}
