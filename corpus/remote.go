package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// RemoteTierConfig holds configuration for the remote cache tier
type RemoteTierConfig struct {
	// Timeout bounds each request (default: 10s)
	Timeout time.Duration

	// RequestsPerSecond throttles traffic to the corpus service
	// (default: 4)
	RequestsPerSecond float64

	// Burst is the throttle's burst allowance (default: 2)
	Burst int
}

// DefaultRemoteTierConfig returns sensible default configuration
func DefaultRemoteTierConfig() RemoteTierConfig {
	return RemoteTierConfig{
		Timeout:           10 * time.Second,
		RequestsPerSecond: 4,
		Burst:             2,
	}
}

// RemoteTier caches corpora in a shared HTTP service. Documents live under
// {base}/corpus/{docID} as JSON; a 404 is a miss and every other failure is
// a tier fault the cache degrades to a miss.
type RemoteTier struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

var _ Tier = (*RemoteTier)(nil)

// remotePayload is the wire form of a cached document.
type remotePayload struct {
	Pages []PageRecord `json:"pages"`
}

// NewRemoteTier creates a remote tier with default configuration
func NewRemoteTier(baseURL string) *RemoteTier {
	return NewRemoteTierWithConfig(baseURL, DefaultRemoteTierConfig())
}

// NewRemoteTierWithConfig creates a remote tier with custom configuration
func NewRemoteTierWithConfig(baseURL string, config RemoteTierConfig) *RemoteTier {
	defaults := DefaultRemoteTierConfig()
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if config.Burst <= 0 {
		config.Burst = defaults.Burst
	}
	return &RemoteTier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: config.Timeout},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
	}
}

// Name identifies the tier in logs
func (t *RemoteTier) Name() string { return "remote" }

// Load fetches a document's cached pages from the corpus service
func (t *RemoteTier) Load(ctx context.Context, docID string) ([]PageRecord, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.documentURL(docID), nil)
	if err != nil {
		return nil, fmt.Errorf("build corpus request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch corpus: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch corpus: unexpected status %d", resp.StatusCode)
	}

	var payload remotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode corpus payload: %w", err)
	}
	if len(payload.Pages) == 0 {
		return nil, ErrNotFound
	}
	return payload.Pages, nil
}

// Store uploads a document's pages to the corpus service
func (t *RemoteTier) Store(ctx context.Context, docID string, pages []PageRecord) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(remotePayload{Pages: pages})
	if err != nil {
		return fmt.Errorf("encode corpus payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, t.documentURL(docID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build corpus request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload corpus: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload corpus: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Delete evicts a document from the corpus service
func (t *RemoteTier) Delete(ctx context.Context, docID string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, t.documentURL(docID), nil)
	if err != nil {
		return fmt.Errorf("build corpus request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("evict corpus: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("evict corpus: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (t *RemoteTier) documentURL(docID string) string {
	return t.baseURL + "/corpus/" + url.PathEscape(docID)
}
