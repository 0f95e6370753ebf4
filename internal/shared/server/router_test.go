package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"career-coach/internal/coach"
	"career-coach/internal/llm"
	"career-coach/internal/shared/config"
	"career-coach/internal/shared/server/middleware"
)

func testRouter(rate float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	factory := func(llm.Options) (llm.Client, error) {
		return llm.ClientFunc(func(context.Context, string) (string, error) { return "ok", nil }), nil
	}
	svc := coach.NewService(factory, coach.Settings{Model: "llama3.2", Temperature: 0.3, Language: "English"})
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	return NewRouter(config.Config{
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		MaxUploadBytes:  1 << 20,
		CoachRatePerMin: rate,
		CoachRateBurst:  burst,
	}, RouterDeps{
		Coach:   coach.NewHandler(svc, 1<<20),
		Limiter: middleware.NewRateLimiter(func() time.Time { return now }),
	})
}

func TestHealth(t *testing.T) {
	router := testRouter(6, 3)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if strings.TrimSpace(resp.Body.String()) != `{"ok":true}` {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(6, 3)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "go_goroutines") {
		t.Fatalf("expected prometheus exposition, got %q", resp.Body.String()[:min(200, resp.Body.Len())])
	}
}

func TestSettingsNotRateLimited(t *testing.T) {
	router := testRouter(60, 1)

	for i := 0; i < 5; i++ {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("settings request %d expected 200, got %d", i+1, resp.Code)
		}
	}
}

func TestRunRoutesRateLimited(t *testing.T) {
	router := testRouter(60, 1)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/letters/docx", strings.NewReader(`{"text":"Dear team"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", code)
	}
}

func TestAddr(t *testing.T) {
	tests := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range tests {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
