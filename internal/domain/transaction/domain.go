package transaction

import (
	"context"
	"fmt"

	"github.com/uniedit/anet/internal/domain/gateway"
	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/outbound"
	"go.uber.org/zap"
)

// Transaction kinds and outcomes reported to the Recorder.
const (
	KindCharge = "charge"
	KindRefund = "refund"

	OutcomeApproved = "approved"
	OutcomeDeclined = "declined"
	OutcomeFailed   = "failed"
)

// Recorder counts transaction outcomes.
type Recorder interface {
	RecordTransaction(kind, outcome string)
}

// TransactionDomain executes charges and refunds against stored payment profiles.
type TransactionDomain interface {
	// Charge captures amountCents from a stored payment profile.
	Charge(ctx context.Context, user model.LocalUser, amountCents int64, paymentProfileID string, billTo *model.Address) (*model.TransactionResponse, error)

	// Refund returns amountCents of a settled transaction to the payment profile it was charged on.
	Refund(ctx context.Context, user model.LocalUser, amountCents int64, refTransID, paymentProfileID string) (*model.TransactionResponse, error)
}

// transactionDomain implements TransactionDomain.
type transactionDomain struct {
	gw        *gateway.Context
	customers outbound.CustomerProfileReaderPort
	recorder  Recorder
	logger    *zap.Logger
}

// NewTransactionDomain creates a new transaction domain service. recorder may be nil.
func NewTransactionDomain(
	gw *gateway.Context,
	customers outbound.CustomerProfileReaderPort,
	recorder Recorder,
	logger *zap.Logger,
) TransactionDomain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &transactionDomain{
		gw:        gw,
		customers: customers,
		recorder:  recorder,
		logger:    logger.Named("transaction"),
	}
}

func (d *transactionDomain) Charge(
	ctx context.Context,
	user model.LocalUser,
	amountCents int64,
	paymentProfileID string,
	billTo *model.Address,
) (*model.TransactionResponse, error) {
	profile, err := d.profile(ctx, user, amountCents, paymentProfileID)
	if err != nil {
		return nil, err
	}

	return d.execute(ctx, KindCharge, model.TransactionRequest{
		TransactionType: model.TransactionTypeAuthCapture,
		Amount:          gateway.CentsToAmount(amountCents),
		Profile:         profile,
		BillTo:          billTo,
	})
}

func (d *transactionDomain) Refund(
	ctx context.Context,
	user model.LocalUser,
	amountCents int64,
	refTransID, paymentProfileID string,
) (*model.TransactionResponse, error) {
	if refTransID == "" {
		return nil, ErrMissingRefTransID
	}
	profile, err := d.profile(ctx, user, amountCents, paymentProfileID)
	if err != nil {
		return nil, err
	}

	return d.execute(ctx, KindRefund, model.TransactionRequest{
		TransactionType: model.TransactionTypeRefund,
		Amount:          gateway.CentsToAmount(amountCents),
		Profile:         profile,
		RefTransID:      refTransID,
	})
}

// profile validates the common arguments and builds the profile payment block.
func (d *transactionDomain) profile(ctx context.Context, user model.LocalUser, amountCents int64, paymentProfileID string) (*model.ProfilePayment, error) {
	if model.IsNilUser(user) {
		return nil, ErrNilUser
	}
	if amountCents <= 0 {
		return nil, gateway.NewLogicError("amount must be positive, got %d cents", amountCents)
	}
	if paymentProfileID == "" {
		return nil, ErrMissingPaymentProfile
	}

	customerProfileID, err := d.customers.ProfileID(ctx, user)
	if err != nil {
		return nil, err
	}
	if customerProfileID == "" {
		return nil, gateway.NewLogicError("user %d has no customer profile", user.GatewayUserID())
	}

	return &model.ProfilePayment{
		CustomerProfileID: customerProfileID,
		PaymentProfile:    model.PaymentProfileIDRef{PaymentProfileID: paymentProfileID},
	}, nil
}

func (d *transactionDomain) execute(ctx context.Context, kind string, txReq model.TransactionRequest) (*model.TransactionResponse, error) {
	req := &model.CreateTransactionRequest{
		MerchantAuthentication: d.gw.Auth(),
		RefID:                  d.gw.RefID(),
		TransactionRequest:     txReq,
	}

	resp, err := d.gw.Client().CreateTransaction(ctx, d.gw.Environment(), req)
	if err != nil {
		d.record(kind, OutcomeFailed)
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	if resp == nil || resp.TransactionResponse == nil {
		d.record(kind, OutcomeFailed)
		return nil, gateway.NewLogicError(failedMessage)
	}

	if !resp.Messages.IsOk() || len(resp.TransactionResponse.Errors) > 0 {
		d.record(kind, OutcomeDeclined)
		txErr := gateway.NewTransactionError(resp)
		d.logger.Warn("transaction declined",
			zap.String("kind", kind),
			zap.String("ref_id", req.RefID),
			zap.String("amount", txReq.Amount),
			zap.String("error", txErr.Message),
		)
		return nil, txErr
	}

	d.record(kind, OutcomeApproved)
	d.logger.Info("transaction approved",
		zap.String("kind", kind),
		zap.String("ref_id", req.RefID),
		zap.String("trans_id", resp.TransactionResponse.TransID),
		zap.String("amount", txReq.Amount),
	)
	return resp.TransactionResponse, nil
}

func (d *transactionDomain) record(kind, outcome string) {
	if d.recorder != nil {
		d.recorder.RecordTransaction(kind, outcome)
	}
}
