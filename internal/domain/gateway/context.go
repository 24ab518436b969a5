package gateway

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/outbound"
)

var (
	// ErrMissingLoginID is returned when no API login id is configured.
	ErrMissingLoginID = errors.New("gateway login id is required")

	// ErrMissingTransactionKey is returned when no transaction key is configured.
	ErrMissingTransactionKey = errors.New("gateway transaction key is required")

	// ErrNilClient is returned when the context is built without a gateway client.
	ErrNilClient = errors.New("gateway client is required")
)

// maxRefIDLength is the longest refId the gateway accepts.
const maxRefIDLength = 20

// Config holds the merchant credentials and target environment.
type Config struct {
	LoginID        string
	TransactionKey string
	Environment    string
}

// Context is the shared gateway capability handed to every manager.
type Context struct {
	auth   model.MerchantAuthentication
	env    model.Environment
	client outbound.GatewayClientPort
	refID  func() string
}

// Option configures a Context.
type Option func(*Context)

// WithRefIDGenerator overrides the request reference id generator.
func WithRefIDGenerator(fn func() string) Option {
	return func(c *Context) {
		c.refID = fn
	}
}

// NewContext validates the configuration and builds a Context.
func NewContext(cfg Config, client outbound.GatewayClientPort, opts ...Option) (*Context, error) {
	if strings.TrimSpace(cfg.LoginID) == "" {
		return nil, ErrMissingLoginID
	}
	if strings.TrimSpace(cfg.TransactionKey) == "" {
		return nil, ErrMissingTransactionKey
	}
	if client == nil {
		return nil, ErrNilClient
	}

	c := &Context{
		auth: model.MerchantAuthentication{
			Name:           cfg.LoginID,
			TransactionKey: cfg.TransactionKey,
		},
		env:    ParseEnvironment(cfg.Environment),
		client: client,
		refID:  newRefID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ParseEnvironment maps a configured name to an environment. Anything other
// than "production" targets the sandbox.
func ParseEnvironment(name string) model.Environment {
	if strings.EqualFold(strings.TrimSpace(name), string(model.EnvironmentProduction)) {
		return model.EnvironmentProduction
	}
	return model.EnvironmentSandbox
}

// Auth returns the merchant authentication block for a request.
func (c *Context) Auth() model.MerchantAuthentication {
	return c.auth
}

// Environment returns the target environment.
func (c *Context) Environment() model.Environment {
	return c.env
}

// Client returns the gateway client.
func (c *Context) Client() outbound.GatewayClientPort {
	return c.client
}

// RefID returns a fresh request reference id.
func (c *Context) RefID() string {
	return c.refID()
}

func newRefID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:maxRefIDLength]
}
