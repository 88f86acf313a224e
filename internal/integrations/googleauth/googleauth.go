package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/finpilot/finai-service/internal/config"
)

// Client verifies Google ID tokens against the tokeninfo endpoint
type Client struct {
	tokenURL string
	clientID string
	client   *http.Client
	log      *logrus.Logger
}

// TokenInfo is the subset of the tokeninfo response the service uses
type TokenInfo struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Audience string `json:"aud"`
}

// NewClient initializes a new Google token verifier
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		tokenURL: cfg.GoogleTokenURL,
		clientID: cfg.GoogleClientID,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Verify checks an ID token with Google and returns its claims. The
// audience is enforced when a client ID is configured.
func (c *Client) Verify(ctx context.Context, idToken string) (*TokenInfo, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", c.tokenURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid google token (status %d)", resp.StatusCode)
	}

	var info TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google token carries no email claim")
	}
	if c.clientID != "" && info.Audience != c.clientID {
		c.log.Warnf("Google token audience mismatch: %s", info.Audience)
		return nil, fmt.Errorf("google token audience mismatch")
	}

	return &info, nil
}
