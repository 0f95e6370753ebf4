package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"career-coach/internal/llm"
	"career-coach/internal/shared/metrics"
)

const providerName = "openai"

// Client implements llm.Client over any OpenAI-compatible chat completions endpoint
// (Ollama serves one under /v1), streaming the response.
type Client struct {
	api         *goopenai.Client
	model       string
	temperature float64
	sink        llm.TokenSink
}

// NewClient constructs a streaming client. apiKey may be empty for local runtimes.
func NewClient(baseURL, apiKey string, opts llm.Options) (*Client, error) {
	if err := llm.ValidateOptions(opts); err != nil {
		return nil, err
	}
	cfg := goopenai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{}

	return &Client{
		api:         goopenai.NewClientWithConfig(cfg),
		model:       strings.TrimSpace(opts.Model),
		temperature: opts.Temperature,
		sink:        opts.Sink(),
	}, nil
}

// NewFactory returns an llm.Factory bound to baseURL and apiKey.
func NewFactory(baseURL, apiKey string) llm.Factory {
	return func(opts llm.Options) (llm.Client, error) {
		return NewClient(baseURL, apiKey, opts)
	}
}

// Complete streams the completion and returns the concatenated text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	stream, err := c.api.CreateChatCompletionStream(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: wireTemperature(c.temperature),
		Stream:      true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai stream: %v", llm.ErrModel, err)
	}
	defer stream.Close()

	var (
		b      strings.Builder
		chunks int
	)
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			metrics.AddLLMChunks(providerName, chunks)
			return "", fmt.Errorf("%w: openai stream recv: %v", llm.ErrModel, err)
		}
		for _, choice := range resp.Choices {
			if chunk := choice.Delta.Content; chunk != "" {
				chunks++
				b.WriteString(chunk)
				c.sink.OnToken(chunk)
			}
		}
	}
	metrics.AddLLMChunks(providerName, chunks)
	log.Printf("llm response provider=%s model=%s chunks=%d duration_ms=%d",
		providerName, c.model, chunks, time.Since(start).Milliseconds())

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %w", llm.ErrModel, llm.ErrEmptyResponse)
	}
	return text, nil
}

// wireTemperature keeps 0 on the wire: the request field is omitempty.
func wireTemperature(t float64) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

var _ llm.Client = (*Client)(nil)
