package gin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/anet/internal/domain/customer"
	"github.com/uniedit/anet/internal/domain/paymentprofile"
	"github.com/uniedit/anet/internal/domain/transaction"
	apperrors "github.com/uniedit/anet/internal/utils/errors"
	"github.com/uniedit/anet/internal/utils/middleware"
	"github.com/uniedit/anet/internal/utils/requestctx"
	"go.uber.org/zap"
)

// badInputErrors are domain errors caused by the request itself.
var badInputErrors = []error{
	customer.ErrNilUser,
	customer.ErrEmptyEmail,
	paymentprofile.ErrNilUser,
	paymentprofile.ErrMissingToken,
	paymentprofile.ErrInvalidMethodType,
	transaction.ErrNilUser,
	transaction.ErrMissingPaymentProfile,
	transaction.ErrMissingRefTransID,
}

// handleError maps domain errors to HTTP responses.
func handleError(c *gin.Context, logger *zap.Logger, err error) {
	appErr := toAppError(err)

	if appErr.StatusCode >= http.StatusInternalServerError {
		requestctx.Logger(c.Request.Context(), logger).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
	}

	_ = c.Error(err)
	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

func toAppError(err error) *apperrors.AppError {
	for _, target := range badInputErrors {
		if errors.Is(err, target) {
			return apperrors.BadRequest(err.Error())
		}
	}
	return apperrors.FromError(err)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, apperrors.BadRequest(message).ToResponse())
}
