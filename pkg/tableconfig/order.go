package tableconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrOrderRejected is returned when the server answers {"success": false}.
var ErrOrderRejected = errors.New("tableconfig: field order rejected")

// OrderSaver persists a new field order. Keys are field ids as found in the
// rows' data-id attribute, values are 1-based positions.
type OrderSaver interface {
	SaveOrder(ctx context.Context, tableID string, order map[string]int) error
}

// OrderClient posts field orders to the table management endpoint.
type OrderClient struct {
	client *resty.Client
	logger *zap.Logger
}

type clientConfig struct {
	httpClient *http.Client
	timeout    time.Duration
	headers    map[string]string
	logger     *zap.Logger
}

// ClientOption configures an OrderClient.
type ClientOption func(*clientConfig)

// WithHTTPClient sends requests through hc.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithHeaders adds headers to every request, typically the CSRF header.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *clientConfig) {
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		for key, value := range headers {
			c.headers[key] = value
		}
	}
}

// WithClientLogger logs requests and resty diagnostics.
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewOrderClient targets baseURL, which may be empty for same-origin paths.
func NewOrderClient(baseURL string, opts ...ClientOption) *OrderClient {
	cfg := clientConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	client := resty.New()
	if cfg.httpClient != nil {
		client = resty.NewWithClient(cfg.httpClient)
	}
	client.SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeaders(cfg.headers).
		SetLogger(cfg.logger.Sugar())
	if cfg.timeout > 0 {
		client.SetTimeout(cfg.timeout)
	}
	return &OrderClient{client: client, logger: cfg.logger}
}

type orderRequest struct {
	Fields map[string]int `json:"fields"`
}

type orderResponse struct {
	Success bool `json:"success"`
}

// OrderPath returns the endpoint for tableID.
func OrderPath(tableID string) string {
	return "/manage_tables/" + url.PathEscape(tableID) + "/fields/order"
}

// SaveOrder implements OrderSaver.
func (c *OrderClient) SaveOrder(ctx context.Context, tableID string, order map[string]int) error {
	if strings.TrimSpace(tableID) == "" {
		return errors.New("tableconfig: save order: table id is required")
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(orderRequest{Fields: order}).
		Post(OrderPath(tableID))
	if err != nil {
		return fmt.Errorf("tableconfig: save order: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("tableconfig: save order: unexpected status %s", resp.Status())
	}

	var payload orderResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return fmt.Errorf("tableconfig: save order: decode response: %w", err)
	}
	if !payload.Success {
		return ErrOrderRejected
	}

	c.logger.Debug("field order saved", zap.String("table", tableID), zap.Int("fields", len(order)))
	return nil
}
