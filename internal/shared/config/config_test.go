package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"LLM_PROVIDER", "LLM_BASE_URL", "LLM_MODEL", "LLM_TEMPERATURE", "LLM_STREAM_CONSOLE", "MAX_UPLOAD_MB"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.LLMProvider != ProviderOllama {
		t.Fatalf("expected ollama provider, got %s", cfg.LLMProvider)
	}
	if cfg.LLMBaseURL != "http://localhost:11434" {
		t.Fatalf("unexpected base url %s", cfg.LLMBaseURL)
	}
	if cfg.LLMModel != "llama3.2" {
		t.Fatalf("unexpected model %s", cfg.LLMModel)
	}
	if cfg.LLMTemperature != 0.3 {
		t.Fatalf("unexpected temperature %v", cfg.LLMTemperature)
	}
	if !cfg.StreamConsole {
		t.Fatalf("expected console streaming on by default")
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected max upload %d", cfg.MaxUploadBytes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_BASE_URL", "")
	t.Setenv("LLM_TEMPERATURE", "1.7")
	t.Setenv("LLM_STREAM_CONSOLE", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()
	if cfg.LLMProvider != ProviderOpenAI {
		t.Fatalf("expected openai provider, got %s", cfg.LLMProvider)
	}
	if cfg.LLMBaseURL != "http://localhost:11434/v1" {
		t.Fatalf("unexpected base url %s", cfg.LLMBaseURL)
	}
	if cfg.LLMTemperature != 1 {
		t.Fatalf("expected temperature clamped to 1, got %v", cfg.LLMTemperature)
	}
	if cfg.StreamConsole {
		t.Fatalf("expected console streaming disabled")
	}
	if len(cfg.CORSAllowOrigin) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LLM_MODEL", "")
	_ = os.Unsetenv("LLM_MODEL")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LLM_MODEL=qwen2.5\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	cfg := Load()
	if cfg.LLMModel != "qwen2.5" {
		t.Fatalf("expected model from .env, got %s", cfg.LLMModel)
	}
}

func TestWithProvider(t *testing.T) {
	tests := []struct {
		name    string
		in      Config
		to      string
		wantURL string
	}{
		{
			name:    "default url follows provider",
			in:      Config{LLMProvider: ProviderOllama, LLMBaseURL: "http://localhost:11434"},
			to:      "openai",
			wantURL: "http://localhost:11434/v1",
		},
		{
			name:    "custom url kept",
			in:      Config{LLMProvider: ProviderOllama, LLMBaseURL: "http://gpu-box:11434"},
			to:      "openai",
			wantURL: "http://gpu-box:11434",
		},
		{
			name:    "unknown provider falls back to ollama",
			in:      Config{LLMProvider: ProviderOpenAI, LLMBaseURL: "http://localhost:11434/v1"},
			to:      "mystery",
			wantURL: "http://localhost:11434",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.WithProvider(tt.to)
			if got.LLMBaseURL != tt.wantURL {
				t.Fatalf("expected %s, got %s", tt.wantURL, got.LLMBaseURL)
			}
		})
	}
}
