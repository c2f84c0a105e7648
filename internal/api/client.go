// Package api talks to the ordering service: one catalog read and one
// order write.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/idilsaglam/pizza/internal/config"
	"github.com/idilsaglam/pizza/internal/model"
	"github.com/idilsaglam/pizza/internal/schema"
)

// RequestIDHeader carries a per-request id for log correlation.
const RequestIDHeader = "X-Request-ID"

const maxCatalogBytes = 4 << 20

// ErrCatalogTooLarge is returned when the catalog body exceeds 4 MiB.
var ErrCatalogTooLarge = errors.New("catalog: response too large")

// Client issues catalog and order calls against the ordering service.
type Client struct {
	baseURL     string
	catalogPath string
	orderPath   string
	token       string
	http        *http.Client
	logger      *zap.Logger
}

// NewClient constructs a client from cfg. A nil logger disables logging.
func NewClient(cfg config.APIConfig, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		catalogPath: cfg.CatalogPath,
		orderPath:   cfg.OrderPath,
		token:       stripBearer(strings.TrimSpace(cfg.Token)),
		http:        &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// FetchCatalog reads and validates the catalog. A payload that fails
// validation returns an error wrapping schema.ErrInvalidCatalog; anything
// else is a transport failure.
func (c *Client) FetchCatalog(ctx context.Context) ([]model.Item, error) {
	endpoint, err := url.JoinPath(c.baseURL, c.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	reqID := c.decorate(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", zap.String("request_id", reqID), zap.Error(err))
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		c.logger.Error("catalog request rejected",
			zap.String("request_id", reqID), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("catalog: status %d: %s", resp.StatusCode, drainError(resp.Body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes+1))
	if err != nil {
		return nil, fmt.Errorf("catalog: read body: %w", err)
	}
	if len(body) > maxCatalogBytes {
		c.logger.Error("catalog response too large", zap.String("request_id", reqID))
		return nil, fmt.Errorf("%w: over %d bytes", ErrCatalogTooLarge, maxCatalogBytes)
	}
	items, err := schema.ParseCatalog(body)
	if err != nil {
		c.logger.Warn("catalog rejected", zap.String("request_id", reqID), zap.Error(err))
		return nil, err
	}
	c.logger.Info("catalog fetched",
		zap.String("request_id", reqID),
		zap.Int("items", len(items)),
		zap.Duration("took", time.Since(start)))
	return items, nil
}

// SubmitOrder posts order as JSON. The response body is not interpreted.
func (c *Client) SubmitOrder(ctx context.Context, order model.Order) error {
	endpoint, err := url.JoinPath(c.baseURL, c.orderPath)
	if err != nil {
		return fmt.Errorf("order: %w", err)
	}
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("order: marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("order: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	reqID := c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("order request failed", zap.String("request_id", reqID), zap.Error(err))
		return fmt.Errorf("order: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		c.logger.Error("order request rejected",
			zap.String("request_id", reqID), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("order: status %d: %s", resp.StatusCode, drainError(resp.Body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Info("order submitted",
		zap.String("request_id", reqID),
		zap.Int("lines", len(order.Items)))
	return nil
}

func (c *Client) decorate(req *http.Request) string {
	id := uuid.NewString()
	req.Header.Set(RequestIDHeader, id)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return id
}

func drainError(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	msg := strings.TrimSpace(string(b))
	if msg == "" {
		return "no body"
	}
	return msg
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
