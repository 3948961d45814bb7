// Package factory implements the HTTP client for the external pizza factory,
// the order-fulfillment collaborator every created order is submitted to.
package factory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

const requestTimeout = 30 * time.Second

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL, apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// Fulfill submits the order to the factory. A non-2xx response is not an
// error: the decoded body still carries the factory's message and report
// link, and the caller decides how to surface the rejection. Only transport
// failures return an error.
func (c *Client) Fulfill(ctx context.Context, order ports.FactoryOrder) (*ports.FactoryResult, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encode factory request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/order", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build factory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("factory request: %w", err)
	}
	defer resp.Body.Close()

	var result ports.FactoryResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode factory response: %w", err)
	}
	result.OK = resp.StatusCode >= 200 && resp.StatusCode < 300

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Str("order_id", order.Order.ID).
		Msg("factory call completed")

	return &result, nil
}
