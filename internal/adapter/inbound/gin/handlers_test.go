package gin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uniedit/anet/internal/domain/customer"
	"github.com/uniedit/anet/internal/domain/gateway"
	"github.com/uniedit/anet/internal/domain/paymentprofile"
	"github.com/uniedit/anet/internal/domain/transaction"
	"github.com/uniedit/anet/internal/model"
	apperrors "github.com/uniedit/anet/internal/utils/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mocks ---

type MockCustomerDomain struct {
	mock.Mock
}

func (m *MockCustomerDomain) Create(ctx context.Context, user model.LocalUser) (*customer.Outcome, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Outcome), args.Error(1)
}

func (m *MockCustomerDomain) Get(ctx context.Context, user model.LocalUser) (*model.CustomerProfileMasked, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerProfileMasked), args.Error(1)
}

func (m *MockCustomerDomain) GetByID(ctx context.Context, profileID string) (*model.CustomerProfileMasked, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerProfileMasked), args.Error(1)
}

func (m *MockCustomerDomain) Delete(ctx context.Context, user model.LocalUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockCustomerDomain) All(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCustomerDomain) GetByEmail(ctx context.Context, email string) (*model.CustomerProfileMasked, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerProfileMasked), args.Error(1)
}

func (m *MockCustomerDomain) ProfileID(ctx context.Context, user model.LocalUser) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

type MockPaymentProfileDomain struct {
	mock.Mock
}

func (m *MockPaymentProfileDomain) Create(ctx context.Context, user model.LocalUser, token model.OpaqueData, meta model.DisplayMetadata, billTo *model.Address) (*model.CreateCustomerPaymentProfileResponse, error) {
	args := m.Called(ctx, user, token, meta, billTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreateCustomerPaymentProfileResponse), args.Error(1)
}

func (m *MockPaymentProfileDomain) Get(ctx context.Context, user model.LocalUser) ([]model.PaymentProfileMasked, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PaymentProfileMasked), args.Error(1)
}

func (m *MockPaymentProfileDomain) Methods(ctx context.Context, user model.LocalUser) ([]*model.PaymentProfile, error) {
	return m.list(m.Called(ctx, user))
}

func (m *MockPaymentProfileDomain) Cards(ctx context.Context, user model.LocalUser) ([]*model.PaymentProfile, error) {
	return m.list(m.Called(ctx, user))
}

func (m *MockPaymentProfileDomain) Banks(ctx context.Context, user model.LocalUser) ([]*model.PaymentProfile, error) {
	return m.list(m.Called(ctx, user))
}

func (m *MockPaymentProfileDomain) list(args mock.Arguments) ([]*model.PaymentProfile, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PaymentProfile), args.Error(1)
}

type MockTransactionDomain struct {
	mock.Mock
}

func (m *MockTransactionDomain) Charge(ctx context.Context, user model.LocalUser, amountCents int64, paymentProfileID string, billTo *model.Address) (*model.TransactionResponse, error) {
	args := m.Called(ctx, user, amountCents, paymentProfileID, billTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransactionResponse), args.Error(1)
}

func (m *MockTransactionDomain) Refund(ctx context.Context, user model.LocalUser, amountCents int64, refTransID, paymentProfileID string) (*model.TransactionResponse, error) {
	args := m.Called(ctx, user, amountCents, refTransID, paymentProfileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransactionResponse), args.Error(1)
}

// --- Helpers ---

type fixture struct {
	router       *gin.Engine
	customers    *MockCustomerDomain
	payments     *MockPaymentProfileDomain
	transactions *MockTransactionDomain
}

func newFixture() *fixture {
	f := &fixture{
		router:       gin.New(),
		customers:    new(MockCustomerDomain),
		payments:     new(MockPaymentProfileDomain),
		transactions: new(MockTransactionDomain),
	}
	v1 := f.router.Group("/v1")
	RegisterCustomerProfileRoutes(v1, NewCustomerProfileAdapter(f.customers, nil))
	RegisterPaymentProfileRoutes(v1, NewPaymentProfileAdapter(f.payments, nil))
	RegisterTransactionRoutes(v1, NewTransactionAdapter(f.transactions, nil))
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apperrors.ErrorDetail {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func userWithID(id int64) any {
	return mock.MatchedBy(func(u model.LocalUser) bool {
		return u != nil && u.GatewayUserID() == id
	})
}

// --- Customer profiles ---

func TestCreateCustomerProfile(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture()
		f.customers.On("Create", mock.Anything, mock.MatchedBy(func(u model.LocalUser) bool {
			first, last := u.GatewayName()
			return u.GatewayUserID() == 5 && u.GatewayEmail() == "a@example.com" && first == "Ada" && last == "Lovelace"
		})).Return(&customer.Outcome{Kind: customer.OutcomeCreated, ProfileID: "31337"}, nil)

		w := f.do(t, http.MethodPost, "/v1/users/5/customer-profile", model.CreateCustomerProfileInput{
			Email: "a@example.com", FirstName: "Ada", LastName: "Lovelace",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		var out model.CustomerProfileOutput
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, model.CustomerProfileOutput{Outcome: "created", ProfileID: "31337"}, out)
		f.customers.AssertExpectations(t)
	})

	t.Run("adopted duplicate", func(t *testing.T) {
		f := newFixture()
		f.customers.On("Create", mock.Anything, userWithID(5)).
			Return(&customer.Outcome{Kind: customer.OutcomeAlreadyExists, ProfileID: "31337"}, nil)

		w := f.do(t, http.MethodPost, "/v1/users/5/customer-profile", model.CreateCustomerProfileInput{Email: "a@example.com"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "already_exists")
	})

	t.Run("invalid user id", func(t *testing.T) {
		f := newFixture()

		w := f.do(t, http.MethodPost, "/v1/users/abc/customer-profile", model.CreateCustomerProfileInput{Email: "a@example.com"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing email", func(t *testing.T) {
		f := newFixture()

		w := f.do(t, http.MethodPost, "/v1/users/5/customer-profile", map[string]string{"first_name": "Ada"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("gateway rejection", func(t *testing.T) {
		f := newFixture()
		f.customers.On("Create", mock.Anything, userWithID(5)).
			Return(nil, &gateway.APIError{Code: "E00003", Message: "invalid email"})

		w := f.do(t, http.MethodPost, "/v1/users/5/customer-profile", model.CreateCustomerProfileInput{Email: "a@example.com"})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		detail := decodeError(t, w)
		assert.Equal(t, "invalid email", detail.Message)
		assert.Equal(t, "E00003", detail.Details["gateway_code"])
	})
}

func TestGetCustomerProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture()
		f.customers.On("Get", mock.Anything, mock.MatchedBy(func(u model.LocalUser) bool {
			return u.GatewayUserID() == 5 && u.GatewayCustomerProfileID() == "31337"
		})).Return(&model.CustomerProfileMasked{CustomerProfileID: "31337", Email: "a@example.com"}, nil)

		w := f.do(t, http.MethodGet, "/v1/users/5/customer-profile?customer_profile_id=31337", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"customerProfileId":"31337"`)
	})

	t.Run("unknown", func(t *testing.T) {
		f := newFixture()
		f.customers.On("Get", mock.Anything, userWithID(5)).Return(nil, nil)

		w := f.do(t, http.MethodGet, "/v1/users/5/customer-profile", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, w).Code)
	})

	t.Run("breaker open", func(t *testing.T) {
		f := newFixture()
		f.customers.On("Get", mock.Anything, userWithID(5)).Return(nil, gobreaker.ErrOpenState)

		w := f.do(t, http.MethodGet, "/v1/users/5/customer-profile", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestDeleteCustomerProfile(t *testing.T) {
	f := newFixture()
	f.customers.On("Delete", mock.Anything, userWithID(7)).Return(nil)

	w := f.do(t, http.MethodDelete, "/v1/users/7/customer-profile", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	f.customers.AssertExpectations(t)
}

func TestListCustomerProfiles(t *testing.T) {
	t.Run("all ids", func(t *testing.T) {
		f := newFixture()
		f.customers.On("All", mock.Anything).Return([]string{"1", "2"}, nil)

		w := f.do(t, http.MethodGet, "/v1/customer-profiles", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ids":["1","2"]}`, w.Body.String())
	})

	t.Run("by email", func(t *testing.T) {
		f := newFixture()
		f.customers.On("GetByEmail", mock.Anything, "b@example.com").
			Return(&model.CustomerProfileMasked{CustomerProfileID: "2", Email: "b@example.com"}, nil)

		w := f.do(t, http.MethodGet, "/v1/customer-profiles?email=b%40example.com", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"customerProfileId":"2"`)
		f.customers.AssertNotCalled(t, "All", mock.Anything)
	})

	t.Run("email not found", func(t *testing.T) {
		f := newFixture()
		f.customers.On("GetByEmail", mock.Anything, "c@example.com").Return(nil, nil)

		w := f.do(t, http.MethodGet, "/v1/customer-profiles?email=c%40example.com", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("by id", func(t *testing.T) {
		f := newFixture()
		f.customers.On("GetByID", mock.Anything, "9").
			Return(nil, &gateway.APIError{Code: "E00040", Message: "The record cannot be found."})

		w := f.do(t, http.MethodGet, "/v1/customer-profiles/9", nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

// --- Payment profiles ---

func TestCreatePaymentProfile(t *testing.T) {
	token := model.OpaqueData{DataDescriptor: "COMMON.ACCEPT.INAPP.PAYMENT", DataValue: "tok"}
	meta := model.DisplayMetadata{Last4: "1111", Brand: "Visa", Type: model.PaymentMethodTypeCard}

	t.Run("created", func(t *testing.T) {
		f := newFixture()
		f.payments.On("Create", mock.Anything, userWithID(5), token, meta, (*model.Address)(nil)).
			Return(&model.CreateCustomerPaymentProfileResponse{
				Messages:                 model.Messages{ResultCode: model.ResultCodeOk},
				CustomerPaymentProfileID: "900",
			}, nil)

		w := f.do(t, http.MethodPost, "/v1/users/5/payment-profiles", model.CreatePaymentProfileInput{Token: token, Metadata: meta})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"customerPaymentProfileId":"900"`)
	})

	t.Run("missing token", func(t *testing.T) {
		f := newFixture()
		f.payments.On("Create", mock.Anything, userWithID(5), model.OpaqueData{}, model.DisplayMetadata{}, (*model.Address)(nil)).
			Return(nil, paymentprofile.ErrMissingToken)

		w := f.do(t, http.MethodPost, "/v1/users/5/payment-profiles", model.CreatePaymentProfileInput{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no customer profile", func(t *testing.T) {
		f := newFixture()
		f.payments.On("Create", mock.Anything, userWithID(5), token, meta, (*model.Address)(nil)).
			Return(nil, gateway.NewLogicError("customer profile id is missing"))

		w := f.do(t, http.MethodPost, "/v1/users/5/payment-profiles", model.CreatePaymentProfileInput{Token: token, Metadata: meta})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestListPaymentProfiles(t *testing.T) {
	f := newFixture()
	f.payments.On("Get", mock.Anything, userWithID(5)).
		Return([]model.PaymentProfileMasked{{CustomerPaymentProfileID: "900"}}, nil)

	w := f.do(t, http.MethodGet, "/v1/users/5/payment-profiles", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"customerPaymentProfileId":"900"`)
}

func TestListPaymentMethods(t *testing.T) {
	cards := []*model.PaymentProfile{{UserID: 5, PaymentProfileID: "900", Type: model.PaymentMethodTypeCard}}

	tests := []struct {
		name   string
		query  string
		method string
	}{
		{"all", "", "Methods"},
		{"cards", "?type=card", "Cards"},
		{"banks", "?type=bank", "Banks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.payments.On(tt.method, mock.Anything, userWithID(5)).Return(cards, nil)

			w := f.do(t, http.MethodGet, "/v1/users/5/payment-methods"+tt.query, nil)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"payment_profile_id":"900"`)
			f.payments.AssertExpectations(t)
		})
	}

	t.Run("empty list", func(t *testing.T) {
		f := newFixture()
		f.payments.On("Methods", mock.Anything, userWithID(5)).Return(nil, nil)

		w := f.do(t, http.MethodGet, "/v1/users/5/payment-methods", nil)

		assert.JSONEq(t, `{"payment_methods":[]}`, w.Body.String())
	})

	t.Run("unknown type", func(t *testing.T) {
		f := newFixture()

		w := f.do(t, http.MethodGet, "/v1/users/5/payment-methods?type=crypto", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// --- Transactions ---

func TestCharge(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		f := newFixture()
		f.transactions.On("Charge", mock.Anything, userWithID(5), int64(1000), "900", (*model.Address)(nil)).
			Return(&model.TransactionResponse{ResponseCode: "1", TransID: "60001"}, nil)

		w := f.do(t, http.MethodPost, "/v1/users/5/charges", model.ChargeInput{AmountCents: 1000, PaymentProfileID: "900"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"transId":"60001"`)
	})

	t.Run("declined", func(t *testing.T) {
		f := newFixture()
		f.transactions.On("Charge", mock.Anything, userWithID(5), int64(1000), "900", (*model.Address)(nil)).
			Return(nil, &gateway.TransactionError{
				Errors:  []model.TransactionError{{ErrorCode: "11", ErrorText: "duplicate"}},
				Message: "[Error 11] " + gateway.DuplicateTransactionMessage,
			})

		w := f.do(t, http.MethodPost, "/v1/users/5/charges", model.ChargeInput{AmountCents: 1000, PaymentProfileID: "900"})

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		detail := decodeError(t, w)
		assert.Equal(t, "[Error 11] "+gateway.DuplicateTransactionMessage, detail.Message)
		assert.Equal(t, []any{"11"}, detail.Details["error_codes"])
	})

	t.Run("missing payment profile", func(t *testing.T) {
		f := newFixture()
		f.transactions.On("Charge", mock.Anything, userWithID(5), int64(1000), "", (*model.Address)(nil)).
			Return(nil, transaction.ErrMissingPaymentProfile)

		w := f.do(t, http.MethodPost, "/v1/users/5/charges", model.ChargeInput{AmountCents: 1000})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unexpected failure", func(t *testing.T) {
		f := newFixture()
		f.transactions.On("Charge", mock.Anything, userWithID(5), int64(1000), "900", (*model.Address)(nil)).
			Return(nil, errors.New("connection reset"))

		w := f.do(t, http.MethodPost, "/v1/users/5/charges", model.ChargeInput{AmountCents: 1000, PaymentProfileID: "900"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

func TestRefund(t *testing.T) {
	f := newFixture()
	f.transactions.On("Refund", mock.Anything, mock.MatchedBy(func(u model.LocalUser) bool {
		return u.GatewayUserID() == 5 && u.GatewayCustomerProfileID() == "31337"
	}), int64(250), "60001", "900").
		Return(&model.TransactionResponse{ResponseCode: "1", TransID: "60002", RefTransID: "60001"}, nil)

	w := f.do(t, http.MethodPost, "/v1/users/5/refunds", model.RefundInput{
		AmountCents:       250,
		RefTransID:        "60001",
		PaymentProfileID:  "900",
		CustomerProfileID: "31337",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"transId":"60002"`)
	f.transactions.AssertExpectations(t)
}
