package gemini

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/finpilot/finai-service/internal/cache"
	"github.com/finpilot/finai-service/internal/config"
)

// ErrRemoteUnavailable marks any failure to obtain a response from the
// hosted generation API: missing key, network, auth, quota or a
// malformed reply. Callers fall back locally; no retries are performed.
var ErrRemoteUnavailable = errors.New("remote assistant unavailable")

// Client handles integration with the Gemini generateContent API
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	log     *logrus.Logger
	cache   cache.Repository
	ttl     time.Duration
}

// NewClient initializes a new Gemini client. store may be nil to
// disable response caching.
func NewClient(cfg *config.Config, log *logrus.Logger, store cache.Repository) *Client {
	return &Client{
		baseURL: cfg.GeminiURL,
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		client: &http.Client{
			Timeout: cfg.GeminiTimeout,
		},
		log:   log,
		cache: store,
		ttl:   cfg.CacheTTL,
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate forwards a prompt to the hosted API and returns the
// response text. Any failure wraps ErrRemoteUnavailable.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("api key not configured: %w", ErrRemoteUnavailable)
	}

	key := cacheKey(prompt)
	if c.cache != nil {
		if text, ok := c.cache.Get(key); ok {
			c.log.Debug("Gemini response served from cache")
			return text, nil
		}
	}

	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{
			{Parts: []generatePart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 1000,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", ErrRemoteUnavailable)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", ErrRemoteUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed (%v): %w", err, ErrRemoteUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.log.Debugf("Gemini error response: %s", string(raw))
		return "", fmt.Errorf("unexpected status code %d: %w", resp.StatusCode, ErrRemoteUnavailable)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", ErrRemoteUnavailable)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response: %w", ErrRemoteUnavailable)
	}

	text := out.Candidates[0].Content.Parts[0].Text
	if c.cache != nil {
		if err := c.cache.Set(key, text, c.ttl); err != nil {
			c.log.Warnf("Failed to cache Gemini response: %v", err)
		}
	}
	return text, nil
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "gemini:" + hex.EncodeToString(sum[:])
}
