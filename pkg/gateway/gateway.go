// Package gateway is the typed boundary between doomdex and the remote
// demon/weapon API. It issues read-only GET requests and decodes the JSON
// bodies into immutable records. There is no cache and no retry: every call
// is one round trip.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	_ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of a failed response is kept in a StatusError.
const maxErrorBody = 512

// Gateway describes the four read-only lookups of the API.
type Gateway interface {
	ListDemons(ctx context.Context) ([]EntitySummary, error)
	DemonDetail(ctx context.Context, key string) (DemonDetail, error)
	ListWeapons(ctx context.Context) ([]EntitySummary, error)
	WeaponDetail(ctx context.Context, key string) (WeaponDetail, error)
}

// ImageFetcher downloads the raw bytes behind a detail record's image URL.
type ImageFetcher interface {
	FetchImage(ctx context.Context, rawURL string) ([]byte, error)
}

// Config holds API connection settings.
type Config struct {
	BaseURL string        // e.g. http://172.18.68.39
	Timeout time.Duration // Per-request timeout; zero means none
}

// Client is the HTTP implementation of Gateway and ImageFetcher.
type Client struct {
	HTTPClient *http.Client
	Config     Config
	Logger     *slog.Logger
}

var (
	_ Gateway      = (*Client)(nil)
	_ ImageFetcher = (*Client)(nil)
)

// NewClient returns a client for the given config. The base URL must be absolute.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: base url %q must include scheme and host", cfg.BaseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Config:     cfg,
		Logger:     logger.With(slog.String("component", "gateway")),
	}, nil
}

// ListDemons returns the demon keys in the order the API lists them.
func (c *Client) ListDemons(ctx context.Context) ([]EntitySummary, error) {
	return c.getList(ctx, "list_demons", "/demons")
}

// DemonDetail fetches the record for one demon key.
func (c *Client) DemonDetail(ctx context.Context, key string) (DemonDetail, error) {
	var out DemonDetail
	if err := c.getJSON(ctx, "demon_detail", "/demons/"+url.PathEscape(key), &out); err != nil {
		return DemonDetail{}, err
	}
	return out, nil
}

// ListWeapons returns the weapon keys in the order the API lists them.
func (c *Client) ListWeapons(ctx context.Context) ([]EntitySummary, error) {
	return c.getList(ctx, "list_weapons", "/weapons")
}

// WeaponDetail fetches the record for one weapon key.
func (c *Client) WeaponDetail(ctx context.Context, key string) (WeaponDetail, error) {
	var out WeaponDetail
	if err := c.getJSON(ctx, "weapon_detail", "/weapons/"+url.PathEscape(key), &out); err != nil {
		return WeaponDetail{}, err
	}
	return out, nil
}

// FetchImage downloads an image. Relative URLs are resolved against the base URL.
func (c *Client) FetchImage(ctx context.Context, rawURL string) ([]byte, error) {
	target, err := c.resolve(rawURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: fetch_image: %w", err)
	}

	resp, err := c.do(ctx, "fetch_image", target, "image/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway: fetch_image: read body: %w", err)
	}
	return data, nil
}

func (c *Client) getList(ctx context.Context, op, path string) ([]EntitySummary, error) {
	var raw []json.RawMessage
	if err := c.getJSON(ctx, op, path, &raw); err != nil {
		return nil, err
	}
	out, err := decodeSummaries(raw)
	if err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	resp, err := c.do(ctx, op, c.Config.BaseURL+path, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, target, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: %s: new request: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", accept)
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Debug("request failed", "op", op, "url", target, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("gateway: %s: do request: %w", op, err)
	}

	c.Logger.Debug("request complete",
		"op", op,
		"url", target,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

func (c *Client) resolve(rawURL string) (string, error) {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	base, err := url.Parse(c.Config.BaseURL + "/")
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
