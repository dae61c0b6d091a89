package aoe2cm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var ErrDraftNotFound = errors.New("draft not found")

const DefaultBaseURL = "https://aoe2cm.net"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchDraft pulls a draft's complete current state by id. The whole event
// list comes back every time; applying it from an empty state is the resync
// strategy, so no incremental endpoint is needed.
func (c *Client) FetchDraft(ctx context.Context, id string) (*RawDraft, error) {
	u := c.baseURL + "/api/draft/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build draft request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch draft %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch draft %s: %w", id, ErrDraftNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch draft %s: unexpected status %s", id, resp.Status)
	}

	var raw RawDraft
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return &raw, nil
}
