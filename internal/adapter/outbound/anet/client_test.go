package anet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/utils/metrics"
	"go.uber.org/zap"
)

var testAuth = model.MerchantAuthentication{Name: "login", TransactionKey: "key"}

// gatewayStub records the envelope key of each request and answers with body.
type gatewayStub struct {
	keys   []string
	status int
	body   string
	calls  atomic.Int32
}

func (s *gatewayStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.calls.Add(1)
	raw, _ := io.ReadAll(r.Body)
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		for k := range envelope {
			s.keys = append(s.keys, k)
		}
	}
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(s.body))
}

func newTestClient(t *testing.T, stub *gatewayStub, breaker *BreakerConfig) (*Client, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	m := metrics.NewWithRegistry("anet_client_test", prometheus.NewRegistry())
	c := NewClient(srv.Client(), &Config{
		Endpoints: map[model.Environment]string{
			model.EnvironmentSandbox: srv.URL,
		},
		Breaker: breaker,
	}, m, zap.NewNop())
	return c, m
}

func TestClient_CreateCustomerProfile(t *testing.T) {
	t.Run("strips byte order mark", func(t *testing.T) {
		stub := &gatewayStub{body: "\xef\xbb\xbf" + `{"customerProfileId":"31337","messages":{"resultCode":"Ok","message":[{"code":"I00001","text":"Successful."}]}}`}
		c, m := newTestClient(t, stub, nil)

		resp, err := c.CreateCustomerProfile(context.Background(), model.EnvironmentSandbox, &model.CreateCustomerProfileRequest{
			MerchantAuthentication: testAuth,
			Profile:                model.CustomerProfileDraft{MerchantCustomerID: "5", Email: "a@example.com"},
		})

		require.NoError(t, err)
		assert.Equal(t, "31337", resp.CustomerProfileID)
		assert.True(t, resp.Messages.IsOk())
		assert.Equal(t, []string{"createCustomerProfileRequest"}, stub.keys)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues(opCreateCustomerProfile, "ok")))
	})

	t.Run("gateway error is a response, not an error", func(t *testing.T) {
		stub := &gatewayStub{body: `{"messages":{"resultCode":"Error","message":[{"code":"E00039","text":"A duplicate record with ID 31337 already exists."}]}}`}
		c, m := newTestClient(t, stub, nil)

		resp, err := c.CreateCustomerProfile(context.Background(), model.EnvironmentSandbox, &model.CreateCustomerProfileRequest{})

		require.NoError(t, err)
		assert.False(t, resp.Messages.IsOk())
		assert.Equal(t, model.MessageCodeDuplicateRecord, resp.Messages.First().Code)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues(opCreateCustomerProfile, "error")))
	})
}

func TestClient_EnvelopeKeys(t *testing.T) {
	ok := `{"messages":{"resultCode":"Ok","message":[]}}`
	ctx := context.Background()
	env := model.EnvironmentSandbox

	tests := []struct {
		name string
		call func(c *Client) error
		key  string
	}{
		{"get profile", func(c *Client) error {
			_, err := c.GetCustomerProfile(ctx, env, &model.GetCustomerProfileRequest{CustomerProfileID: "1"})
			return err
		}, "getCustomerProfileRequest"},
		{"list ids", func(c *Client) error {
			_, err := c.GetCustomerProfileIDs(ctx, env, &model.GetCustomerProfileIDsRequest{})
			return err
		}, "getCustomerProfileIdsRequest"},
		{"delete profile", func(c *Client) error {
			_, err := c.DeleteCustomerProfile(ctx, env, &model.DeleteCustomerProfileRequest{CustomerProfileID: "1"})
			return err
		}, "deleteCustomerProfileRequest"},
		{"create payment profile", func(c *Client) error {
			_, err := c.CreateCustomerPaymentProfile(ctx, env, &model.CreateCustomerPaymentProfileRequest{CustomerProfileID: "1"})
			return err
		}, "createCustomerPaymentProfileRequest"},
		{"create transaction", func(c *Client) error {
			_, err := c.CreateTransaction(ctx, env, &model.CreateTransactionRequest{})
			return err
		}, "createTransactionRequest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &gatewayStub{body: ok}
			c, _ := newTestClient(t, stub, nil)

			require.NoError(t, tt.call(c))
			assert.Equal(t, []string{tt.key}, stub.keys)
		})
	}
}

func TestClient_DecodesTransactionResponse(t *testing.T) {
	stub := &gatewayStub{body: `{"transactionResponse":{"responseCode":"3","transId":"0","errors":[{"errorCode":"11","errorText":"A duplicate transaction has been submitted."}]},"messages":{"resultCode":"Error","message":[{"code":"E00027","text":"The transaction was unsuccessful."}]}}`}
	c, _ := newTestClient(t, stub, nil)

	resp, err := c.CreateTransaction(context.Background(), model.EnvironmentSandbox, &model.CreateTransactionRequest{
		MerchantAuthentication: testAuth,
		TransactionRequest: model.TransactionRequest{
			TransactionType: model.TransactionTypeAuthCapture,
			Amount:          "10.00",
		},
	})

	require.NoError(t, err)
	require.NotNil(t, resp.TransactionResponse)
	require.Len(t, resp.TransactionResponse.Errors, 1)
	assert.Equal(t, "11", resp.TransactionResponse.Errors[0].ErrorCode)
}

func TestClient_UnknownEnvironmentUsesSandbox(t *testing.T) {
	stub := &gatewayStub{body: `{"messages":{"resultCode":"Ok"}}`}
	c, _ := newTestClient(t, stub, nil)

	_, err := c.GetCustomerProfileIDs(context.Background(), model.Environment("staging"), &model.GetCustomerProfileIDsRequest{})

	require.NoError(t, err)
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestClient_Failures(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		stub := &gatewayStub{status: http.StatusServiceUnavailable, body: "down"}
		c, m := newTestClient(t, stub, nil)

		_, err := c.GetCustomerProfileIDs(context.Background(), model.EnvironmentSandbox, &model.GetCustomerProfileIDsRequest{})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues(opGetCustomerProfileIDs, "failed")))
	})

	t.Run("malformed body", func(t *testing.T) {
		stub := &gatewayStub{body: "<xml/>"}
		c, _ := newTestClient(t, stub, nil)

		_, err := c.GetCustomerProfileIDs(context.Background(), model.EnvironmentSandbox, &model.GetCustomerProfileIDsRequest{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode response")
	})

	t.Run("breaker opens after consecutive failures", func(t *testing.T) {
		stub := &gatewayStub{status: http.StatusInternalServerError}
		c, m := newTestClient(t, stub, &BreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			FailureThreshold: 3,
		})

		for i := 0; i < 3; i++ {
			_, err := c.GetCustomerProfileIDs(context.Background(), model.EnvironmentSandbox, &model.GetCustomerProfileIDsRequest{})
			require.ErrorIs(t, err, ErrUnexpectedStatus)
		}

		_, err := c.GetCustomerProfileIDs(context.Background(), model.EnvironmentSandbox, &model.GetCustomerProfileIDsRequest{})

		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
		assert.Equal(t, int32(3), stub.calls.Load())
		assert.Equal(t, float64(gobreaker.StateOpen), testutil.ToFloat64(m.GatewayBreakerState.WithLabelValues("anet")))
	})

	t.Run("canceled context does not trip the breaker", func(t *testing.T) {
		stub := &gatewayStub{body: `{"messages":{"resultCode":"Ok"}}`}
		c, _ := newTestClient(t, stub, &BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 1})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.GetCustomerProfileIDs(ctx, model.EnvironmentSandbox, &model.GetCustomerProfileIDsRequest{})
		require.ErrorIs(t, err, context.Canceled)

		_, err = c.GetCustomerProfileIDs(context.Background(), model.EnvironmentSandbox, &model.GetCustomerProfileIDsRequest{})
		assert.NoError(t, err)
	})
}

func TestDefaultEndpoints(t *testing.T) {
	c := NewClient(nil, &Config{
		Endpoints: map[model.Environment]string{model.EnvironmentSandbox: "http://localhost:1"},
	}, nil, nil)

	assert.Equal(t, "http://localhost:1", c.endpoints[model.EnvironmentSandbox])
	assert.Equal(t, ProductionEndpoint, c.endpoints[model.EnvironmentProduction])
}
