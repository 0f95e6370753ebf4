package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	defaultOllamaURL = "http://localhost:11434"
	defaultOpenAIURL = "http://localhost:11434/v1"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	LLMProvider    string
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMTemperature float64
	StreamConsole  bool

	LetterLanguage string
	LetterTitle    string

	MaxUploadBytes  int64
	CoachRatePerMin float64
	CoachRateBurst  int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	provider := normalizeProvider(getEnv("LLM_PROVIDER", ProviderOllama))
	baseURL := getEnv("LLM_BASE_URL", "")
	if baseURL == "" {
		baseURL = defaultBaseURL(provider)
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LLMProvider:     provider,
		LLMBaseURL:      strings.TrimRight(baseURL, "/"),
		LLMAPIKey:       getEnv("LLM_API_KEY", ""),
		LLMModel:        getEnv("LLM_MODEL", "llama3.2"),
		LLMTemperature:  clampTemperature(getFloat("LLM_TEMPERATURE", 0.3)),
		StreamConsole:   getBool("LLM_STREAM_CONSOLE", true),
		LetterLanguage:  getEnv("LETTER_LANGUAGE", "English"),
		LetterTitle:     getEnv("LETTER_TITLE", "Cover Letter"),
		MaxUploadBytes:  int64(getInt("MAX_UPLOAD_MB", 10)) << 20,
		CoachRatePerMin: getFloat("COACH_RATE_PER_MIN", 6),
		CoachRateBurst:  getInt("COACH_RATE_BURST", 3),
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config: bad float %s=%q, using default %v", key, raw, def)
		return def
	}
	return v
}

func getInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("config: bad int %s=%q, using default %d", key, raw, def)
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config: bad bool %s=%q, using default %v", key, raw, def)
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderOpenAI:
		return ProviderOpenAI
	default:
		return ProviderOllama
	}
}

func defaultBaseURL(provider string) string {
	if provider == ProviderOpenAI {
		return defaultOpenAIURL
	}
	return defaultOllamaURL
}

func clampTemperature(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// WithProvider switches the model provider. A base URL still at the old provider's default
// moves to the new provider's default.
func (c Config) WithProvider(provider string) Config {
	next := normalizeProvider(provider)
	if c.LLMBaseURL == "" || c.LLMBaseURL == defaultBaseURL(c.LLMProvider) {
		c.LLMBaseURL = defaultBaseURL(next)
	}
	c.LLMProvider = next
	return c
}
