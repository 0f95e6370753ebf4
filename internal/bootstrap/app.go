package bootstrap

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"career-coach/internal/coach"
	"career-coach/internal/llm"
	"career-coach/internal/llm/ollama"
	"career-coach/internal/llm/openai"
	"career-coach/internal/shared/config"
	"career-coach/internal/shared/server"
	"career-coach/internal/shared/server/middleware"
)

// App holds shared dependencies.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	CoachService *coach.Service
	CoachHandler *coach.Handler
}

// Options override process-level dependencies, mainly for tests and the CLI.
type Options struct {
	// Factory replaces the provider chosen from config.
	Factory llm.Factory
	// Console receives streamed tokens and stage banners when StreamConsole is set;
	// os.Stdout when nil.
	Console io.Writer
}

// Build wires the coaching service, its HTTP handler and the router.
func Build(cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	factory := opts.Factory
	if factory == nil {
		var err error
		factory, err = NewFactory(cfg)
		if err != nil {
			return nil, err
		}
	}

	svc := NewCoachService(cfg, factory, opts.Console)
	handler := coach.NewHandler(svc, cfg.MaxUploadBytes)

	app := &App{
		Config:       cfg,
		CoachService: svc,
		CoachHandler: handler,
	}
	app.Router = server.NewRouter(cfg, server.RouterDeps{
		Coach:   handler,
		Limiter: middleware.NewRateLimiter(nil),
	})

	log.Printf("bootstrap: provider=%s base_url=%s model=%s", cfg.LLMProvider, cfg.LLMBaseURL, cfg.LLMModel)
	return app, nil
}

// NewFactory picks the model client for the configured provider.
func NewFactory(cfg config.Config) (llm.Factory, error) {
	switch cfg.LLMProvider {
	case config.ProviderOllama, "":
		return ollama.NewFactory(cfg.LLMBaseURL), nil
	case config.ProviderOpenAI:
		return openai.NewFactory(cfg.LLMBaseURL, cfg.LLMAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

// NewCoachService builds the service with the configured defaults. Console output is
// attached only when StreamConsole is enabled.
func NewCoachService(cfg config.Config, factory llm.Factory, console io.Writer) *coach.Service {
	svc := coach.NewService(factory, DefaultSettings(cfg))
	svc.Title = cfg.LetterTitle
	if cfg.StreamConsole {
		if console == nil {
			console = os.Stdout
		}
		svc.Sinks = []llm.TokenSink{llm.NewConsoleSink(console)}
		svc.Progress = console
	}
	return svc
}

// DefaultSettings maps config onto the per-run defaults.
func DefaultSettings(cfg config.Config) coach.Settings {
	return coach.Settings{
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		Language:    cfg.LetterLanguage,
	}
}
