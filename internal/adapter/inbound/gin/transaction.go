package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/anet/internal/domain/transaction"
	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/inbound"
	"go.uber.org/zap"
)

// transactionAdapter implements inbound.TransactionHttpPort.
type transactionAdapter struct {
	domain transaction.TransactionDomain
	logger *zap.Logger
}

// NewTransactionAdapter creates a new transaction HTTP adapter.
func NewTransactionAdapter(domain transaction.TransactionDomain, logger *zap.Logger) inbound.TransactionHttpPort {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &transactionAdapter{domain: domain, logger: logger}
}

// RegisterTransactionRoutes registers charge and refund routes.
func RegisterTransactionRoutes(r *gin.RouterGroup, adapter inbound.TransactionHttpPort) {
	users := r.Group("/users/:user_id")
	{
		users.POST("/charges", adapter.Charge)
		users.POST("/refunds", adapter.Refund)
	}
}

// Charge charges a stored payment profile.
//
//	@Summary		Charge a payment profile
//	@Description	Runs an auth-capture transaction against the user's stored payment profile
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id			path		int					true	"Local user ID"
//	@Param			Idempotency-Key	header		string				false	"Replays the recorded response when repeated"
//	@Param			request			body		model.ChargeInput	true	"Charge request"
//	@Success		200				{object}	model.TransactionResponse
//	@Failure		400				{object}	apperrors.ErrorResponse	"Invalid request"
//	@Failure		402				{object}	apperrors.ErrorResponse	"Transaction declined"
//	@Failure		422				{object}	apperrors.ErrorResponse	"No customer profile"
//	@Failure		502				{object}	apperrors.ErrorResponse	"Gateway rejected the request"
//	@Router			/users/{user_id}/charges [post]
func (a *transactionAdapter) Charge(c *gin.Context) {
	user, ok := userFromPath(c)
	if !ok {
		return
	}

	var req model.ChargeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.CustomerProfileID != "" {
		user.CustomerProfileID = req.CustomerProfileID
	}

	result, err := a.domain.Charge(c.Request.Context(), user, req.AmountCents, req.PaymentProfileID, req.BillTo)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Refund returns funds from a settled transaction.
//
//	@Summary		Refund a transaction
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id			path		int					true	"Local user ID"
//	@Param			Idempotency-Key	header		string				false	"Replays the recorded response when repeated"
//	@Param			request			body		model.RefundInput	true	"Refund request"
//	@Success		200				{object}	model.TransactionResponse
//	@Failure		400				{object}	apperrors.ErrorResponse	"Invalid request"
//	@Failure		402				{object}	apperrors.ErrorResponse	"Refund declined"
//	@Failure		502				{object}	apperrors.ErrorResponse	"Gateway rejected the request"
//	@Router			/users/{user_id}/refunds [post]
func (a *transactionAdapter) Refund(c *gin.Context) {
	user, ok := userFromPath(c)
	if !ok {
		return
	}

	var req model.RefundInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.CustomerProfileID != "" {
		user.CustomerProfileID = req.CustomerProfileID
	}

	result, err := a.domain.Refund(c.Request.Context(), user, req.AmountCents, req.RefTransID, req.PaymentProfileID)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Compile-time interface assertion
var _ inbound.TransactionHttpPort = (*transactionAdapter)(nil)
