package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv_SetsMissingVariables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "BANKCLI_API_URL=http://api.test/api\n# comment\nexport BANKCLI_CURRENCY=\"EUR\"\nBANKCLI_TOKEN_KEY='k v'\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	os.Unsetenv("BANKCLI_API_URL")
	os.Unsetenv("BANKCLI_CURRENCY")
	os.Unsetenv("BANKCLI_TOKEN_KEY")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv error: %v", err)
	}

	if got := os.Getenv("BANKCLI_API_URL"); got != "http://api.test/api" {
		t.Fatalf("BANKCLI_API_URL = %q", got)
	}
	if got := os.Getenv("BANKCLI_CURRENCY"); got != "EUR" {
		t.Fatalf("BANKCLI_CURRENCY = %q, want EUR", got)
	}
	if got := os.Getenv("BANKCLI_TOKEN_KEY"); got != "k v" {
		t.Fatalf("BANKCLI_TOKEN_KEY = %q, want %q", got, "k v")
	}
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("BANKCLI_CURRENCY=GBP\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("BANKCLI_CURRENCY", "USD")
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv error: %v", err)
	}
	if got := os.Getenv("BANKCLI_CURRENCY"); got != "USD" {
		t.Fatalf("BANKCLI_CURRENCY = %q, want USD", got)
	}
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}
