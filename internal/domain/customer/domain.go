package customer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/uniedit/anet/internal/domain/gateway"
	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/outbound"
	"go.uber.org/zap"
)

var duplicateRecordRe = regexp.MustCompile(duplicateRecordFormat)

// CustomerDomain reconciles local users with gateway customer profiles.
type CustomerDomain interface {
	// Create creates the user's customer profile, or adopts the existing one
	// the gateway reports as a duplicate, and records the mapping locally.
	Create(ctx context.Context, user model.LocalUser) (*Outcome, error)

	// Get fetches the user's customer profile. It returns nil when no profile id is known.
	Get(ctx context.Context, user model.LocalUser) (*model.CustomerProfileMasked, error)

	// GetByID fetches a customer profile by its gateway id.
	GetByID(ctx context.Context, profileID string) (*model.CustomerProfileMasked, error)

	// Delete removes the user's customer profile from the gateway and the local mapping.
	Delete(ctx context.Context, user model.LocalUser) error

	// All lists every customer profile id on the merchant account.
	All(ctx context.Context) ([]string, error)

	// GetByEmail scans all customer profiles for the first one with the given email.
	GetByEmail(ctx context.Context, email string) (*model.CustomerProfileMasked, error)

	// ProfileID resolves the user's gateway profile id, or "" when none is known.
	ProfileID(ctx context.Context, user model.LocalUser) (string, error)
}

// customerDomain implements CustomerDomain.
type customerDomain struct {
	gw       *gateway.Context
	store    outbound.CustomerProfileDatabasePort
	observer outbound.ProfileObserverPort
	now      func() time.Time
	logger   *zap.Logger
}

// NewCustomerDomain creates a new customer profile domain service.
// observer may be nil.
func NewCustomerDomain(
	gw *gateway.Context,
	store outbound.CustomerProfileDatabasePort,
	observer outbound.ProfileObserverPort,
	logger *zap.Logger,
) CustomerDomain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &customerDomain{
		gw:       gw,
		store:    store,
		observer: observer,
		now:      time.Now,
		logger:   logger.Named("customer"),
	}
}

func (d *customerDomain) Create(ctx context.Context, user model.LocalUser) (*Outcome, error) {
	if model.IsNilUser(user) {
		return nil, ErrNilUser
	}

	req := &model.CreateCustomerProfileRequest{
		MerchantAuthentication: d.gw.Auth(),
		RefID:                  d.gw.RefID(),
		Profile: model.CustomerProfileDraft{
			MerchantCustomerID: strconv.FormatInt(user.GatewayUserID(), 10),
			Description:        profileDescription,
			Email:              user.GatewayEmail(),
		},
	}

	resp, err := d.gw.Client().CreateCustomerProfile(ctx, d.gw.Environment(), req)
	if err != nil {
		return nil, fmt.Errorf("create customer profile: %w", err)
	}

	outcome, err := d.classifyCreate(resp)
	if err != nil {
		return nil, err
	}

	inserted, err := d.store.Save(ctx, user.GatewayUserID(), outcome.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("save customer profile %s: %w", outcome.ProfileID, err)
	}

	kind := model.ProfileFactUpdated
	if outcome.Created() && inserted {
		kind = model.ProfileFactCreated
	}
	d.notify(ctx, model.ProfileFact{
		Kind:       kind,
		UserID:     user.GatewayUserID(),
		ProfileID:  outcome.ProfileID,
		OccurredAt: d.now(),
	})

	d.logger.Info("customer profile reconciled",
		zap.Int64("user_id", user.GatewayUserID()),
		zap.String("profile_id", outcome.ProfileID),
		zap.String("outcome", string(outcome.Kind)),
	)

	return outcome, nil
}

// classifyCreate turns a creation response into an outcome or a taxonomy error.
func (d *customerDomain) classifyCreate(resp *model.CreateCustomerProfileResponse) (*Outcome, error) {
	if resp == nil {
		return nil, gateway.NewAPIError(nil)
	}
	if resp.CustomerProfileID != "" {
		return &Outcome{Kind: OutcomeCreated, ProfileID: resp.CustomerProfileID}, nil
	}

	first := resp.Messages.First()
	d.logger.Debug("customer profile not created", zap.String("code", first.Code), zap.String("text", first.Text))

	if first.Code == model.MessageCodeDuplicateRecord {
		if m := duplicateRecordRe.FindStringSubmatch(first.Text); m != nil {
			return &Outcome{Kind: OutcomeAlreadyExists, ProfileID: m[1]}, nil
		}
	}

	if !resp.Messages.IsOk() {
		return nil, gateway.NewAPIError(&resp.Messages)
	}
	return nil, gateway.NewLogicError(createFailedMessage)
}

func (d *customerDomain) notify(ctx context.Context, fact model.ProfileFact) {
	if d.observer == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("profile observer panicked",
				zap.String("profile_id", fact.ProfileID),
				zap.Any("panic", r),
			)
		}
	}()
	d.observer.Notify(ctx, fact)
}

func (d *customerDomain) Get(ctx context.Context, user model.LocalUser) (*model.CustomerProfileMasked, error) {
	profileID, err := d.ProfileID(ctx, user)
	if err != nil {
		return nil, err
	}
	if profileID == "" {
		return nil, nil
	}
	return d.GetByID(ctx, profileID)
}

func (d *customerDomain) GetByID(ctx context.Context, profileID string) (*model.CustomerProfileMasked, error) {
	req := &model.GetCustomerProfileRequest{
		MerchantAuthentication: d.gw.Auth(),
		RefID:                  d.gw.RefID(),
		CustomerProfileID:      profileID,
	}

	resp, err := d.gw.Client().GetCustomerProfile(ctx, d.gw.Environment(), req)
	if err != nil {
		return nil, fmt.Errorf("get customer profile %s: %w", profileID, err)
	}
	if resp == nil || !resp.Messages.IsOk() {
		var messages *model.Messages
		if resp != nil {
			messages = &resp.Messages
		}
		return nil, gateway.NewAPIError(messages)
	}
	return resp.Profile, nil
}

func (d *customerDomain) Delete(ctx context.Context, user model.LocalUser) error {
	profileID, err := d.ProfileID(ctx, user)
	if err != nil {
		return err
	}
	if profileID == "" {
		return nil
	}

	req := &model.DeleteCustomerProfileRequest{
		MerchantAuthentication: d.gw.Auth(),
		RefID:                  d.gw.RefID(),
		CustomerProfileID:      profileID,
	}

	resp, err := d.gw.Client().DeleteCustomerProfile(ctx, d.gw.Environment(), req)
	if err != nil {
		return fmt.Errorf("delete customer profile %s: %w", profileID, err)
	}
	if resp == nil || !resp.Messages.IsOk() {
		var messages *model.Messages
		if resp != nil {
			messages = &resp.Messages
		}
		return gateway.NewAPIError(messages)
	}

	if err := d.store.DeleteByProfileID(ctx, profileID); err != nil {
		return fmt.Errorf("delete customer profile mapping %s: %w", profileID, err)
	}

	d.logger.Info("customer profile deleted",
		zap.Int64("user_id", user.GatewayUserID()),
		zap.String("profile_id", profileID),
	)
	return nil
}

func (d *customerDomain) All(ctx context.Context) ([]string, error) {
	req := &model.GetCustomerProfileIDsRequest{MerchantAuthentication: d.gw.Auth()}

	resp, err := d.gw.Client().GetCustomerProfileIDs(ctx, d.gw.Environment(), req)
	if err != nil {
		return nil, fmt.Errorf("list customer profiles: %w", err)
	}
	if resp == nil || !resp.Messages.IsOk() {
		var messages *model.Messages
		if resp != nil {
			messages = &resp.Messages
		}
		return nil, gateway.NewAPIError(messages)
	}
	if resp.IDs == nil {
		return []string{}, nil
	}
	return resp.IDs, nil
}

func (d *customerDomain) GetByEmail(ctx context.Context, email string) (*model.CustomerProfileMasked, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmptyEmail
	}

	ids, err := d.All(ctx)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		profile, err := d.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if profile != nil && profile.Email == email {
			return profile, nil
		}
	}
	return nil, nil
}

func (d *customerDomain) ProfileID(ctx context.Context, user model.LocalUser) (string, error) {
	if model.IsNilUser(user) {
		return "", ErrNilUser
	}
	if id := user.GatewayCustomerProfileID(); id != "" {
		return id, nil
	}

	record, err := d.store.FindLatestByUserID(ctx, user.GatewayUserID())
	if err != nil {
		return "", fmt.Errorf("find customer profile for user %d: %w", user.GatewayUserID(), err)
	}
	if record == nil {
		return "", nil
	}
	return record.ProfileID, nil
}
