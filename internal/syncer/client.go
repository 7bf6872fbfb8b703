// Package syncer implements the client half of the sync protocol: a
// stateless push-then-pull exchange of the full notes and reviews
// collections with a remote peer, scoped by client key.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kmazurov/fhmp/internal/logger"
	"github.com/kmazurov/fhmp/internal/models"
)

type Client struct {
	httpClient *http.Client
	log        *logger.Logger
}

func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("syncer"),
	}
}

// Endpoint builds the peer URL for a client key.
func Endpoint(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + key
}

// Push submits the full payload to the peer. Any acknowledged 2xx response
// counts as success; everything else must be surfaced, never swallowed.
func (c *Client) Push(ctx context.Context, baseURL, key string, payload models.SyncPayload) error {
	log := logger.FromContext(ctx).WithPrefix("syncer")
	url := Endpoint(baseURL, key)

	log.Debug("pushing to %s: notes=%d, reviews=%d", url, len(payload.Notes), len(payload.Reviews))
	start := time.Now()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("push request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	log.Debug("push response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("push rejected: status=%d, body=%s", resp.StatusCode, string(respBody))
		return fmt.Errorf("push status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// Pull fetches the peer's payload for the key. The payload shape is strict:
// unknown fields mean a peer speaking a different protocol and are rejected
// rather than trusted.
func (c *Client) Pull(ctx context.Context, baseURL, key string) (models.SyncPayload, error) {
	log := logger.FromContext(ctx).WithPrefix("syncer")
	url := Endpoint(baseURL, key)

	log.Debug("pulling from %s", url)
	start := time.Now()

	var payload models.SyncPayload

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return payload, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("pull request failed: %v", err)
		return payload, err
	}
	defer resp.Body.Close()

	log.Debug("pull response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("pull rejected: status=%d, body=%s", resp.StatusCode, string(respBody))
		return payload, fmt.Errorf("pull status %d: %s", resp.StatusCode, string(respBody))
	}

	dec := json.NewDecoder(resp.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		log.Error("failed to decode pull response: %v", err)
		return models.SyncPayload{}, fmt.Errorf("malformed sync payload: %w", err)
	}

	log.Info("pulled %d notes, %d reviews", len(payload.Notes), len(payload.Reviews))
	return payload, nil
}
