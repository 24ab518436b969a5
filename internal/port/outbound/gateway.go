package outbound

import (
	"context"

	"github.com/uniedit/anet/internal/model"
)

// GatewayClientPort executes prepared requests against the card-processing gateway.
// A returned error means the exchange itself failed (transport, decoding, open breaker);
// gateway-level failures are reported through the response Messages.
type GatewayClientPort interface {
	// CreateCustomerProfile submits a new customer profile.
	CreateCustomerProfile(ctx context.Context, env model.Environment, req *model.CreateCustomerProfileRequest) (*model.CreateCustomerProfileResponse, error)

	// GetCustomerProfile fetches one customer profile with its payment profiles.
	GetCustomerProfile(ctx context.Context, env model.Environment, req *model.GetCustomerProfileRequest) (*model.GetCustomerProfileResponse, error)

	// GetCustomerProfileIDs lists every customer profile id on the merchant account.
	GetCustomerProfileIDs(ctx context.Context, env model.Environment, req *model.GetCustomerProfileIDsRequest) (*model.GetCustomerProfileIDsResponse, error)

	// DeleteCustomerProfile removes a customer profile.
	DeleteCustomerProfile(ctx context.Context, env model.Environment, req *model.DeleteCustomerProfileRequest) (*model.DeleteCustomerProfileResponse, error)

	// CreateCustomerPaymentProfile attaches a tokenized instrument to a customer profile.
	CreateCustomerPaymentProfile(ctx context.Context, env model.Environment, req *model.CreateCustomerPaymentProfileRequest) (*model.CreateCustomerPaymentProfileResponse, error)

	// CreateTransaction executes a charge or refund.
	CreateTransaction(ctx context.Context, env model.Environment, req *model.CreateTransactionRequest) (*model.CreateTransactionResponse, error)
}
