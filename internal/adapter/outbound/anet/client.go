package anet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/outbound"
	"github.com/uniedit/anet/internal/utils/metrics"
	"github.com/uniedit/anet/internal/utils/requestctx"
	"go.uber.org/zap"
)

// Gateway endpoints.
const (
	SandboxEndpoint    = "https://apitest.authorize.net/xml/v1/request.api"
	ProductionEndpoint = "https://api.authorize.net/xml/v1/request.api"
)

// Request envelope keys, one per operation.
const (
	opCreateCustomerProfile        = "createCustomerProfileRequest"
	opGetCustomerProfile           = "getCustomerProfileRequest"
	opGetCustomerProfileIDs        = "getCustomerProfileIdsRequest"
	opDeleteCustomerProfile        = "deleteCustomerProfileRequest"
	opCreateCustomerPaymentProfile = "createCustomerPaymentProfileRequest"
	opCreateTransaction            = "createTransactionRequest"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 4 << 20

var utf8BOM = []byte("\xef\xbb\xbf")

// ErrUnexpectedStatus is returned when the gateway answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected gateway status")

// Config configures the gateway client.
type Config struct {
	// Endpoints overrides the URL per environment.
	Endpoints map[model.Environment]string
	Breaker   *BreakerConfig
}

// DefaultEndpoints returns the public gateway URLs.
func DefaultEndpoints() map[model.Environment]string {
	return map[model.Environment]string{
		model.EnvironmentSandbox:    SandboxEndpoint,
		model.EnvironmentProduction: ProductionEndpoint,
	}
}

// Client talks to the gateway's JSON API.
type Client struct {
	http      *http.Client
	endpoints map[model.Environment]string
	breaker   *gobreaker.CircuitBreaker[[]byte]
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewClient creates a gateway client. metrics may be nil.
func NewClient(httpClient *http.Client, cfg *Config, m *metrics.Metrics, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	endpoints := DefaultEndpoints()
	for env, url := range cfg.Endpoints {
		endpoints[env] = url
	}

	c := &Client{
		http:      httpClient,
		endpoints: endpoints,
		metrics:   m,
		logger:    logger.Named("anet"),
	}
	c.breaker = newBreaker("anet", cfg.Breaker, c.onStateChange)
	if m != nil {
		m.SetBreakerState("anet", float64(gobreaker.StateClosed))
	}
	return c
}

func (c *Client) onStateChange(name string, from, to gobreaker.State) {
	c.logger.Warn("gateway breaker state changed",
		zap.String("breaker", name),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
	if c.metrics != nil {
		c.metrics.SetBreakerState(name, float64(to))
	}
}

// CreateCustomerProfile submits a new customer profile.
func (c *Client) CreateCustomerProfile(ctx context.Context, env model.Environment, req *model.CreateCustomerProfileRequest) (*model.CreateCustomerProfileResponse, error) {
	return call[model.CreateCustomerProfileResponse](ctx, c, env, opCreateCustomerProfile, req)
}

// GetCustomerProfile fetches one customer profile.
func (c *Client) GetCustomerProfile(ctx context.Context, env model.Environment, req *model.GetCustomerProfileRequest) (*model.GetCustomerProfileResponse, error) {
	return call[model.GetCustomerProfileResponse](ctx, c, env, opGetCustomerProfile, req)
}

// GetCustomerProfileIDs lists every customer profile id.
func (c *Client) GetCustomerProfileIDs(ctx context.Context, env model.Environment, req *model.GetCustomerProfileIDsRequest) (*model.GetCustomerProfileIDsResponse, error) {
	return call[model.GetCustomerProfileIDsResponse](ctx, c, env, opGetCustomerProfileIDs, req)
}

// DeleteCustomerProfile removes a customer profile.
func (c *Client) DeleteCustomerProfile(ctx context.Context, env model.Environment, req *model.DeleteCustomerProfileRequest) (*model.DeleteCustomerProfileResponse, error) {
	return call[model.DeleteCustomerProfileResponse](ctx, c, env, opDeleteCustomerProfile, req)
}

// CreateCustomerPaymentProfile attaches a tokenized instrument to a customer profile.
func (c *Client) CreateCustomerPaymentProfile(ctx context.Context, env model.Environment, req *model.CreateCustomerPaymentProfileRequest) (*model.CreateCustomerPaymentProfileResponse, error) {
	return call[model.CreateCustomerPaymentProfileResponse](ctx, c, env, opCreateCustomerPaymentProfile, req)
}

// CreateTransaction executes a charge or refund.
func (c *Client) CreateTransaction(ctx context.Context, env model.Environment, req *model.CreateTransactionRequest) (*model.CreateTransactionResponse, error) {
	return call[model.CreateTransactionResponse](ctx, c, env, opCreateTransaction, req)
}

func call[Resp any](ctx context.Context, c *Client, env model.Environment, op string, req any) (*Resp, error) {
	start := time.Now()
	log := requestctx.Logger(ctx, c.logger).With(
		zap.String("operation", op),
		zap.String("environment", string(env)),
	)

	body, err := c.do(ctx, env, op, req)
	if err != nil {
		c.record(op, "failed", start)
		log.Warn("gateway request failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var probe struct {
		Messages model.Messages `json:"messages"`
	}
	var resp Resp
	if err := json.Unmarshal(body, &probe); err != nil {
		c.record(op, "failed", start)
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.record(op, "failed", start)
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	status := "ok"
	if !probe.Messages.IsOk() {
		status = "error"
	}
	c.record(op, status, start)
	log.Debug("gateway request completed",
		zap.String("result_code", string(probe.Messages.ResultCode)),
		zap.String("message_code", probe.Messages.First().Code),
		zap.Duration("duration", time.Since(start)),
	)

	return &resp, nil
}

func (c *Client) do(ctx context.Context, env model.Environment, op string, req any) ([]byte, error) {
	payload, err := json.Marshal(map[string]any{op: req})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url, ok := c.endpoints[env]
	if !ok {
		url = c.endpoints[model.EnvironmentSandbox]
	}

	return c.breaker.Execute(func() ([]byte, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		}

		// The gateway prefixes its JSON with a byte order mark.
		return bytes.TrimPrefix(body, utf8BOM), nil
	})
}

func (c *Client) record(op, status string, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordGatewayRequest(op, status, time.Since(start))
	}
}

// Compile-time interface assertion
var _ outbound.GatewayClientPort = (*Client)(nil)
