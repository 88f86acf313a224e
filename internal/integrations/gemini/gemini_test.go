package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/finpilot/finai-service/internal/cache"
	"github.com/finpilot/finai-service/internal/config"
)

func testConfig(url string) *config.Config {
	return &config.Config{
		GeminiURL:     url,
		GeminiAPIKey:  "test-key",
		GeminiModel:   "gemini-test",
		GeminiTimeout: 2 * time.Second,
		CacheTTL:      time.Minute,
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestGenerate(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Hello from Gemini"}]}}]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), testLogger(), cache.NewMemoryCache())

	text, err := c.Generate(context.Background(), "say hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "Hello from Gemini" {
		t.Errorf("text = %q", text)
	}

	// Second identical prompt is served from cache
	if _, err := c.Generate(context.Background(), "say hello"); err != nil {
		t.Fatalf("cached Generate: %v", err)
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), testLogger(), nil)

	_, err := c.Generate(context.Background(), "anything")
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Errorf("err = %v, want ErrRemoteUnavailable", err)
	}
}

func TestGenerateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(testConfig(srv.URL), testLogger(), nil)

	_, err := c.Generate(context.Background(), "anything")
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Errorf("err = %v, want ErrRemoteUnavailable", err)
	}
}

func TestGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), testLogger(), nil)

	_, err := c.Generate(context.Background(), "anything")
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Errorf("err = %v, want ErrRemoteUnavailable", err)
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	cfg := testConfig("http://unused")
	cfg.GeminiAPIKey = ""
	c := NewClient(cfg, testLogger(), nil)

	if c.Configured() {
		t.Error("Configured() = true without an API key")
	}
	_, err := c.Generate(context.Background(), "anything")
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Errorf("err = %v, want ErrRemoteUnavailable", err)
	}
}
