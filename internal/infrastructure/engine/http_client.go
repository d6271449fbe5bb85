package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credsphere/loancalc-service/internal/domain/model"
	"github.com/credsphere/loancalc-service/internal/domain/port"
	"github.com/credsphere/loancalc-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// HTTP client for the remote calculation engine
// ---------------------------------------------------------------------------

// Config holds connection parameters for the calculation engine.
type Config struct {
	// BaseURL is the engine API root, e.g. "https://calc.internal:8443".
	BaseURL string
	// APIKey authenticates this service against the engine.
	APIKey string
	// TimeoutSeconds is the per-request HTTP timeout. There is deliberately
	// no retry: a failed calculation surfaces as unavailable rather than as
	// a delayed guess.
	TimeoutSeconds int
}

// DefaultConfig returns development defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://localhost:9200",
		TimeoutSeconds: 10,
	}
}

// Client implements port.CalculationEngine over HTTP+JSON.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates an engine client. A nil httpClient gets a default one
// with the configured timeout.
func NewClient(config Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second}
	}
	return &Client{config: config, http: httpClient}
}

var _ port.CalculationEngine = (*Client)(nil)

// GetLoanCalculation fetches the engine's figures for a loan.
func (c *Client) GetLoanCalculation(ctx context.Context, loanID string) (model.EngineCalculation, error) {
	var out model.EngineCalculation
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/loans/%s/calculation", url.PathEscape(loanID)), nil, &out)
	if err != nil {
		return model.EngineCalculation{}, err
	}
	return out, nil
}

// UpdateCalculationInputs changes fee/interest parameters on the engine.
func (c *Client) UpdateCalculationInputs(ctx context.Context, loanID string, inputs port.CalculationInputs) error {
	body := struct {
		ProcessingFeePercent  *decimal.Decimal `json:"processing_fee_percent,omitempty"`
		InterestPercentPerDay *decimal.Decimal `json:"interest_percent_per_day,omitempty"`
	}{
		ProcessingFeePercent:  inputs.ProcessingFeePercent,
		InterestPercentPerDay: inputs.InterestPercentPerDay,
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/loans/%s/calculation-inputs", url.PathEscape(loanID)), body, nil)
}

// UpdateLoanAmount changes the loan principal on the engine.
func (c *Client) UpdateLoanAmount(ctx context.Context, loanID string, newPrincipal decimal.Decimal) error {
	body := struct {
		Principal decimal.Decimal `json:"principal"`
	}{Principal: newPrincipal}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/loans/%s/amount", url.PathEscape(loanID)), body, nil)
}

// do performs one request and maps failure modes onto the domain's error
// taxonomy. Transport failures and 5xx responses become
// ErrEngineUnavailable; a 404 becomes ErrCalculationNotFound.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("engine: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("engine: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("engine: %s %s: %w: %w", method, path, valueobject.ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("engine: %s %s: %w", method, path, valueobject.ErrCalculationNotFound)
	case resp.StatusCode >= 500:
		return fmt.Errorf("engine: %s %s: status %d: %w", method, path, resp.StatusCode, valueobject.ErrEngineUnavailable)
	case resp.StatusCode >= 400:
		return fmt.Errorf("engine: %s %s: status %d: %w", method, path, resp.StatusCode, valueobject.ErrInvalidInput)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("engine: decode response: %w: %w", valueobject.ErrEngineUnavailable, err)
		}
	}
	return nil
}
