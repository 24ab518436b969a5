package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uniedit/anet/internal/domain/customer"
	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/inbound"
	apperrors "github.com/uniedit/anet/internal/utils/errors"
	"go.uber.org/zap"
)

// customerProfileAdapter implements inbound.CustomerProfileHttpPort.
type customerProfileAdapter struct {
	domain customer.CustomerDomain
	logger *zap.Logger
}

// NewCustomerProfileAdapter creates a new customer profile HTTP adapter.
func NewCustomerProfileAdapter(domain customer.CustomerDomain, logger *zap.Logger) inbound.CustomerProfileHttpPort {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &customerProfileAdapter{domain: domain, logger: logger}
}

// RegisterCustomerProfileRoutes registers customer profile routes.
func RegisterCustomerProfileRoutes(r *gin.RouterGroup, adapter inbound.CustomerProfileHttpPort) {
	users := r.Group("/users/:user_id")
	{
		users.POST("/customer-profile", adapter.CreateCustomerProfile)
		users.GET("/customer-profile", adapter.GetCustomerProfile)
		users.DELETE("/customer-profile", adapter.DeleteCustomerProfile)
	}

	profiles := r.Group("/customer-profiles")
	{
		profiles.GET("", adapter.ListCustomerProfiles)
		profiles.GET("/:profile_id", adapter.GetCustomerProfileByID)
	}
}

// CreateCustomerProfile ensures the user has a gateway customer profile.
//
//	@Summary		Create or adopt a customer profile
//	@Description	Creates the profile, or adopts the one the gateway already holds for the user's email
//	@Tags			Customer Profiles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			user_id	path		int									true	"Local user ID"
//	@Param			request	body		model.CreateCustomerProfileInput	true	"Profile request"
//	@Success		201		{object}	model.CustomerProfileOutput			"Created"
//	@Success		200		{object}	model.CustomerProfileOutput			"Adopted or already linked"
//	@Failure		502		{object}	apperrors.ErrorResponse				"Gateway rejected the request"
//	@Router			/users/{user_id}/customer-profile [post]
func (a *customerProfileAdapter) CreateCustomerProfile(c *gin.Context) {
	user, ok := userFromPath(c)
	if !ok {
		return
	}

	var req model.CreateCustomerProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if req.CustomerProfileID != "" {
		user.CustomerProfileID = req.CustomerProfileID
	}

	outcome, err := a.domain.Create(c.Request.Context(), user)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}

	status := http.StatusOK
	if outcome.Created() {
		status = http.StatusCreated
	}
	c.JSON(status, model.CustomerProfileOutput{
		Outcome:   string(outcome.Kind),
		ProfileID: outcome.ProfileID,
	})
}

func (a *customerProfileAdapter) GetCustomerProfile(c *gin.Context) {
	user, ok := userFromPath(c)
	if !ok {
		return
	}

	profile, err := a.domain.Get(c.Request.Context(), user)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, apperrors.NotFound("customer profile").ToResponse())
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (a *customerProfileAdapter) DeleteCustomerProfile(c *gin.Context) {
	user, ok := userFromPath(c)
	if !ok {
		return
	}

	if err := a.domain.Delete(c.Request.Context(), user); err != nil {
		handleError(c, a.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (a *customerProfileAdapter) ListCustomerProfiles(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		profile, err := a.domain.GetByEmail(c.Request.Context(), email)
		if err != nil {
			handleError(c, a.logger, err)
			return
		}
		if profile == nil {
			c.JSON(http.StatusNotFound, apperrors.NotFound("customer profile").ToResponse())
			return
		}
		c.JSON(http.StatusOK, profile)
		return
	}

	ids, err := a.domain.All(c.Request.Context())
	if err != nil {
		handleError(c, a.logger, err)
		return
	}

	c.JSON(http.StatusOK, model.ProfileIDsOutput{IDs: ids})
}

func (a *customerProfileAdapter) GetCustomerProfileByID(c *gin.Context) {
	profile, err := a.domain.GetByID(c.Request.Context(), c.Param("profile_id"))
	if err != nil {
		handleError(c, a.logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Compile-time interface assertion
var _ inbound.CustomerProfileHttpPort = (*customerProfileAdapter)(nil)
