package config

import (
	"slices"
	"strings"
	"testing"
)

func TestLoadLocal_Missing(t *testing.T) {
	t.Parallel()

	local, err := LoadLocal(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local != nil {
		t.Errorf("expected nil local config, got %+v", local)
	}
}

func TestLoadLocal(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, LocalConfigPath(root), `
refresh_ms = 50

[discovery]
ignore = ["third_party"]
`)

	local, err := LoadLocal(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local.RefreshMS == nil || *local.RefreshMS != 50 {
		t.Errorf("expected refresh_ms 50, got %v", local.RefreshMS)
	}
	if local.IndexConcurrency != nil {
		t.Errorf("expected unset index_concurrency, got %d", *local.IndexConcurrency)
	}
	if !slices.Equal(local.Discovery.Ignore, []string{"third_party"}) {
		t.Errorf("unexpected ignore %v", local.Discovery.Ignore)
	}
}

func TestLoadLocal_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"parse error", "refresh_ms = \"fast\"", "failed to parse local config"},
		{"zero refresh", "refresh_ms = 0", "invalid refresh_ms 0"},
		{"zero concurrency", "index_concurrency = 0", "invalid index_concurrency 0"},
		{"bad glob", "[discovery]\nignore = [\"a[\"]", "invalid discovery.ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			writeFile(t, LocalConfigPath(root), tt.content)

			_, err := LoadLocal(root)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}
