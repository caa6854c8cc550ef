// Package dict looks candidate words up against the word service. The
// answer is informational only; scoring never waits on or depends on it.
package dict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
)

// Client handles HTTP communication with the word service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// CheckWord asks the word service whether candidate is a dictionary word.
// Transient failures are retried a couple of times before giving up.
func (c *Client) CheckWord(ctx context.Context, candidate string) (bool, error) {
	reqURL := c.baseURL + "/api/word/" + url.PathEscape(candidate)

	var valid bool
	err := retry.Do(
		func() error {
			httpReq, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := c.httpClient.Do(httpReq)
			if err != nil {
				return fmt.Errorf("failed to send request: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
			}

			var checkResp struct {
				Response bool `json:"response"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&checkResp); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
			valid = checkResp.Response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return false, err
	}
	log.Debug().Str("word", candidate).Bool("valid", valid).Msg("word check")
	return valid, nil
}
