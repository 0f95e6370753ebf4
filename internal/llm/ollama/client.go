package ollama

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"career-coach/internal/llm"
	"career-coach/internal/shared/metrics"
)

const (
	providerName   = "ollama"
	defaultBaseURL = "http://localhost:11434"
)

// Client implements llm.Client against the native Ollama chat API with streaming enabled.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	sink        llm.TokenSink
	apiClient   *api.Client
}

// NewClient constructs a client for one model and temperature.
// No timeout is set on the HTTP client; cancellation comes from the request context.
func NewClient(baseURL string, opts llm.Options) (*Client, error) {
	if err := llm.ValidateOptions(opts); err != nil {
		return nil, err
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ollama base url: %w", err)
	}
	return &Client{
		baseURL:     baseURL,
		model:       strings.TrimSpace(opts.Model),
		temperature: opts.Temperature,
		sink:        opts.Sink(),
		apiClient:   api.NewClient(u, &http.Client{}),
	}, nil
}

// NewFactory returns an llm.Factory bound to baseURL.
func NewFactory(baseURL string) llm.Factory {
	return func(opts llm.Options) (llm.Client, error) {
		return NewClient(baseURL, opts)
	}
}

// Complete streams the generation and returns the full text once the final frame arrives.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	stream := true
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options:  map[string]any{"temperature": c.temperature},
	}

	var (
		b      strings.Builder
		final  api.ChatResponse
		chunks int
		done   bool
	)
	start := time.Now()
	err := c.apiClient.Chat(ctx, req, func(resp api.ChatResponse) error {
		if chunk := resp.Message.Content; chunk != "" {
			chunks++
			b.WriteString(chunk)
			c.sink.OnToken(chunk)
		}
		if resp.Done {
			final = resp
			done = true
		}
		return nil
	})
	metrics.AddLLMChunks(providerName, chunks)
	if err != nil {
		return "", fmt.Errorf("%w: ollama chat: %v", llm.ErrModel, err)
	}
	if !done {
		return "", fmt.Errorf("%w: ollama stream ended before done", llm.ErrModel)
	}
	logUsage(c.model, final, time.Since(start))

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %w", llm.ErrModel, llm.ErrEmptyResponse)
	}
	return text, nil
}

func logUsage(model string, final api.ChatResponse, elapsed time.Duration) {
	log.Printf("llm response provider=%s model=%s prompt_tokens=%d completion_tokens=%d duration_ms=%d",
		providerName, model, final.PromptEvalCount, final.EvalCount, elapsed.Milliseconds())
}

var _ llm.Client = (*Client)(nil)
