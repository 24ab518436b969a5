package domain

import (
	"fmt"

	"github.com/uniedit/anet/internal/domain/customer"
	"github.com/uniedit/anet/internal/domain/gateway"
	"github.com/uniedit/anet/internal/domain/paymentprofile"
	"github.com/uniedit/anet/internal/domain/transaction"
	"github.com/uniedit/anet/internal/port/outbound"
	"go.uber.org/zap"
)

// Domain holds all domain services.
// Every service shares one gateway context.
type Domain struct {
	// Gateway carries credentials, environment and the client.
	Gateway *gateway.Context

	// Customer reconciles users with gateway customer profiles.
	Customer customer.CustomerDomain

	// PaymentProfile manages tokenized instruments.
	PaymentProfile paymentprofile.PaymentProfileDomain

	// Transaction executes charges and refunds.
	Transaction transaction.TransactionDomain
}

// OutboundPorts holds all outbound port implementations.
type OutboundPorts struct {
	// Gateway
	GatewayClient outbound.GatewayClientPort

	// Persistence
	CustomerProfileDB outbound.CustomerProfileDatabasePort
	PaymentProfileDB  outbound.PaymentProfileDatabasePort

	// Observation, optional
	ProfileObserver     outbound.ProfileObserverPort
	TransactionRecorder transaction.Recorder
}

// NewDomain creates domain services with dependencies.
func NewDomain(ports *OutboundPorts, gatewayConfig gateway.Config, logger *zap.Logger, opts ...gateway.Option) (*Domain, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	gw, err := gateway.NewContext(gatewayConfig, ports.GatewayClient, opts...)
	if err != nil {
		return nil, fmt.Errorf("gateway context: %w", err)
	}

	customerDomain := customer.NewCustomerDomain(
		gw,
		ports.CustomerProfileDB,
		ports.ProfileObserver,
		logger,
	)

	return &Domain{
		Gateway:  gw,
		Customer: customerDomain,
		PaymentProfile: paymentprofile.NewPaymentProfileDomain(
			gw,
			customerDomain,
			ports.PaymentProfileDB,
			logger,
		),
		Transaction: transaction.NewTransactionDomain(
			gw,
			customerDomain,
			ports.TransactionRecorder,
			logger,
		),
	}, nil
}
