package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/anet/internal/domain/paymentprofile"
	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/inbound"
	"go.uber.org/zap"
)

// paymentProfileAdapter implements inbound.PaymentProfileHttpPort.
type paymentProfileAdapter struct {
	domain paymentprofile.PaymentProfileDomain
	logger *zap.Logger
}

// NewPaymentProfileAdapter creates a new payment profile HTTP adapter.
func NewPaymentProfileAdapter(domain paymentprofile.PaymentProfileDomain, logger *zap.Logger) inbound.PaymentProfileHttpPort {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &paymentProfileAdapter{domain: domain, logger: logger}
}

// RegisterPaymentProfileRoutes registers payment profile routes.
func RegisterPaymentProfileRoutes(r *gin.RouterGroup, adapter inbound.PaymentProfileHttpPort) {
	users := r.Group("/users/:user_id")
	{
		users.POST("/payment-profiles", adapter.CreatePaymentProfile)
		users.GET("/payment-profiles", adapter.ListPaymentProfiles)
		users.GET("/payment-methods", adapter.ListPaymentMethods)
	}
}

// CreatePaymentProfile stores a tokenized instrument on the user's customer profile.
//
//	@Summary		Add a payment profile
//	@Tags			Payment Profiles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id	path		int								true	"Local user ID"
//	@Param			request	body		model.CreatePaymentProfileInput	true	"Tokenized instrument"
//	@Success		201		{object}	model.CreateCustomerPaymentProfileResponse
//	@Failure		400		{object}	apperrors.ErrorResponse	"Missing token"
//	@Failure		422		{object}	apperrors.ErrorResponse	"No customer profile"
//	@Router			/users/{user_id}/payment-profiles [post]
func (a *paymentProfileAdapter) CreatePaymentProfile(c *gin.Context) {
	user, ok := userFromPath(c)
	if !ok {
		return
	}

	var req model.CreatePaymentProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if req.CustomerProfileID != "" {
		user.CustomerProfileID = req.CustomerProfileID
	}

	resp, err := a.domain.Create(c.Request.Context(), user, req.Token, req.Metadata, req.BillTo)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}

	status := http.StatusOK
	if resp.Messages.IsOk() && resp.CustomerPaymentProfileID != "" {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

func (a *paymentProfileAdapter) ListPaymentProfiles(c *gin.Context) {
	user, ok := userFromPath(c)
	if !ok {
		return
	}

	profiles, err := a.domain.Get(c.Request.Context(), user)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_profiles": profiles})
}

// ListPaymentMethods lists the user's instruments with their stored display metadata.
//
//	@Summary	List payment methods
//	@Tags		Payment Profiles
//	@Produce	json
//	@Security	BearerAuth
//	@Param		user_id	path		int		true	"Local user ID"
//	@Param		type	query		string	false	"card or bank"
//	@Success	200		{object}	map[string][]model.PaymentProfile
//	@Router		/users/{user_id}/payment-methods [get]
func (a *paymentProfileAdapter) ListPaymentMethods(c *gin.Context) {
	user, ok := userFromPath(c)
	if !ok {
		return
	}

	var (
		methods []*model.PaymentProfile
		err     error
	)
	switch model.PaymentMethodType(c.Query("type")) {
	case "":
		methods, err = a.domain.Methods(c.Request.Context(), user)
	case model.PaymentMethodTypeCard:
		methods, err = a.domain.Cards(c.Request.Context(), user)
	case model.PaymentMethodTypeBank:
		methods, err = a.domain.Banks(c.Request.Context(), user)
	default:
		badRequest(c, "type must be card or bank")
		return
	}
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	if methods == nil {
		methods = []*model.PaymentProfile{}
	}

	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

// Compile-time interface assertion
var _ inbound.PaymentProfileHttpPort = (*paymentProfileAdapter)(nil)
