package paymentprofile

import (
	"context"
	"errors"
	"fmt"

	"github.com/uniedit/anet/internal/domain/gateway"
	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/outbound"
	"go.uber.org/zap"
)

// PaymentProfileDomain manages tokenized payment instruments under a customer profile.
type PaymentProfileDomain interface {
	// Create attaches a tokenized instrument to the user's customer profile and
	// records it locally when the gateway assigns an id. billTo defaults to the
	// user's name.
	Create(ctx context.Context, user model.LocalUser, token model.OpaqueData, meta model.DisplayMetadata, billTo *model.Address) (*model.CreateCustomerPaymentProfileResponse, error)

	// Get lists the payment profiles stored on the gateway for the user.
	// Gateway-level failures yield an empty list.
	Get(ctx context.Context, user model.LocalUser) ([]model.PaymentProfileMasked, error)

	// Methods lists the user's locally recorded payment profiles.
	Methods(ctx context.Context, user model.LocalUser) ([]*model.PaymentProfile, error)

	// Cards lists the user's locally recorded card profiles.
	Cards(ctx context.Context, user model.LocalUser) ([]*model.PaymentProfile, error)

	// Banks lists the user's locally recorded bank account profiles.
	Banks(ctx context.Context, user model.LocalUser) ([]*model.PaymentProfile, error)
}

// paymentProfileDomain implements PaymentProfileDomain.
type paymentProfileDomain struct {
	gw        *gateway.Context
	customers outbound.CustomerProfileReaderPort
	store     outbound.PaymentProfileDatabasePort
	logger    *zap.Logger
}

// NewPaymentProfileDomain creates a new payment profile domain service.
func NewPaymentProfileDomain(
	gw *gateway.Context,
	customers outbound.CustomerProfileReaderPort,
	store outbound.PaymentProfileDatabasePort,
	logger *zap.Logger,
) PaymentProfileDomain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &paymentProfileDomain{
		gw:        gw,
		customers: customers,
		store:     store,
		logger:    logger.Named("payment_profile"),
	}
}

func (d *paymentProfileDomain) Create(
	ctx context.Context,
	user model.LocalUser,
	token model.OpaqueData,
	meta model.DisplayMetadata,
	billTo *model.Address,
) (*model.CreateCustomerPaymentProfileResponse, error) {
	if model.IsNilUser(user) {
		return nil, ErrNilUser
	}
	if token.DataDescriptor == "" || token.DataValue == "" {
		return nil, ErrMissingToken
	}
	if meta.Type != "" && meta.Type != model.PaymentMethodTypeCard && meta.Type != model.PaymentMethodTypeBank {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMethodType, meta.Type)
	}

	customerProfileID, err := d.customers.ProfileID(ctx, user)
	if err != nil {
		return nil, err
	}
	if customerProfileID == "" {
		return nil, gateway.NewLogicError("user %d has no customer profile", user.GatewayUserID())
	}

	if billTo == nil {
		first, last := user.GatewayName()
		billTo = &model.Address{FirstName: first, LastName: last}
	}

	req := &model.CreateCustomerPaymentProfileRequest{
		MerchantAuthentication: d.gw.Auth(),
		RefID:                  d.gw.RefID(),
		CustomerProfileID:      customerProfileID,
		PaymentProfile: model.PaymentProfileDraft{
			BillTo: billTo,
			Payment: model.PaymentPayload{
				OpaqueData: &token,
			},
		},
	}

	resp, err := d.gw.Client().CreateCustomerPaymentProfile(ctx, d.gw.Environment(), req)
	if err != nil {
		return nil, fmt.Errorf("create payment profile: %w", err)
	}
	if resp == nil {
		return nil, gateway.NewAPIError(nil)
	}

	if resp.CustomerPaymentProfileID == "" {
		if !resp.Messages.IsOk() {
			return nil, gateway.NewAPIError(&resp.Messages)
		}
		return nil, gateway.NewLogicError(createFailedMessage)
	}

	record := &model.PaymentProfile{
		UserID:           user.GatewayUserID(),
		PaymentProfileID: resp.CustomerPaymentProfileID,
		Last4:            meta.Last4,
		Brand:            meta.Brand,
		Type:             meta.Type,
	}
	if err := d.store.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("save payment profile %s: %w", resp.CustomerPaymentProfileID, err)
	}

	d.logger.Info("payment profile recorded",
		zap.Int64("user_id", user.GatewayUserID()),
		zap.String("customer_profile_id", customerProfileID),
		zap.String("payment_profile_id", resp.CustomerPaymentProfileID),
		zap.String("type", string(meta.Type)),
	)

	return resp, nil
}

func (d *paymentProfileDomain) Get(ctx context.Context, user model.LocalUser) ([]model.PaymentProfileMasked, error) {
	if model.IsNilUser(user) {
		return nil, ErrNilUser
	}

	customerProfileID, err := d.customers.ProfileID(ctx, user)
	if err != nil {
		return nil, err
	}
	if customerProfileID == "" {
		return []model.PaymentProfileMasked{}, nil
	}

	profile, err := d.customers.GetByID(ctx, customerProfileID)
	if err != nil {
		var apiErr *gateway.APIError
		if !errors.As(err, &apiErr) {
			return nil, err
		}
		if apiErr.Code != model.MessageCodeNoPaymentProfiles {
			d.logger.Warn("payment profile lookup rejected",
				zap.String("customer_profile_id", customerProfileID),
				zap.String("code", apiErr.Code),
				zap.String("text", apiErr.Message),
			)
		}
		return []model.PaymentProfileMasked{}, nil
	}
	if profile == nil || profile.PaymentProfiles == nil {
		return []model.PaymentProfileMasked{}, nil
	}
	return profile.PaymentProfiles, nil
}

func (d *paymentProfileDomain) Methods(ctx context.Context, user model.LocalUser) ([]*model.PaymentProfile, error) {
	return d.list(ctx, user, "")
}

func (d *paymentProfileDomain) Cards(ctx context.Context, user model.LocalUser) ([]*model.PaymentProfile, error) {
	return d.list(ctx, user, model.PaymentMethodTypeCard)
}

func (d *paymentProfileDomain) Banks(ctx context.Context, user model.LocalUser) ([]*model.PaymentProfile, error) {
	return d.list(ctx, user, model.PaymentMethodTypeBank)
}

func (d *paymentProfileDomain) list(ctx context.Context, user model.LocalUser, methodType model.PaymentMethodType) ([]*model.PaymentProfile, error) {
	if model.IsNilUser(user) {
		return nil, ErrNilUser
	}
	profiles, err := d.store.ListByUserID(ctx, user.GatewayUserID(), methodType)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
