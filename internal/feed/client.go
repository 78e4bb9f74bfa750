package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"pavilion-status-backend/config"
	"pavilion-status-backend/internal/catalog"
)

// Client fetches the two availability feed endpoints: the full snapshot
// and the delta payload. It validates the loosely shaped upstream JSON
// into typed records at this boundary, dropping malformed entries
// individually rather than failing a whole batch.
type Client struct {
	cfg    *config.FeedConfig
	client *http.Client
}

// NewClient creates a feed client, honoring the configured HTTP proxy.
func NewClient(cfg *config.FeedConfig) *Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: invalid proxy URL %q: %v. Feed client will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
	}
}

// FetchSnapshot retrieves the full pavilion listing.
func (c *Client) FetchSnapshot(ctx context.Context) ([]catalog.Pavilion, error) {
	body, err := c.get(ctx, c.cfg.SnapshotURL)
	if err != nil {
		return nil, err
	}

	var entries []snapshotEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	pavilions := make([]catalog.Pavilion, 0, len(entries))
	for i, entry := range entries {
		if entry.Code == nil || *entry.Code == "" {
			log.Printf("Warning: skipping snapshot entry %d with no code", i)
			continue
		}
		schedules := make(map[string]catalog.Status, len(entry.Schedules))
		for _, slot := range entry.Schedules {
			if slot.Slot == nil || slot.Status == nil {
				log.Printf("Warning: skipping malformed slot entry for %s", *entry.Code)
				continue
			}
			schedules[*slot.Slot] = catalog.Status(*slot.Status)
		}
		pavilions = append(pavilions, catalog.Pavilion{
			Code:      *entry.Code,
			Name:      entry.Name,
			URL:       entry.URL,
			Schedules: schedules,
		})
	}
	return pavilions, nil
}

// FetchDelta retrieves the delta payload: code → slot updates.
func (c *Client) FetchDelta(ctx context.Context) (map[string][]catalog.SlotUpdate, error) {
	body, err := c.get(ctx, c.cfg.DeltaURL)
	if err != nil {
		return nil, err
	}

	var raw map[string][]slotEntry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal delta: %w", err)
	}

	delta := make(map[string][]catalog.SlotUpdate, len(raw))
	for code, slots := range raw {
		if code == "" {
			continue
		}
		updates := make([]catalog.SlotUpdate, 0, len(slots))
		for _, slot := range slots {
			if slot.Slot == nil || slot.Status == nil {
				log.Printf("Warning: skipping malformed delta entry for %s", code)
				continue
			}
			updates = append(updates, catalog.SlotUpdate{
				Slot:   *slot.Slot,
				Status: catalog.Status(*slot.Status),
			})
		}
		if len(updates) > 0 {
			delta[code] = updates
		}
	}
	return delta, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
