package inbound

import "github.com/gin-gonic/gin"

// CustomerProfileHttpPort defines HTTP handler interface for customer profile operations.
type CustomerProfileHttpPort interface {
	// CreateCustomerProfile handles POST /users/:user_id/customer-profile
	// Creates or adopts the user's customer profile.
	CreateCustomerProfile(c *gin.Context)

	// GetCustomerProfile handles GET /users/:user_id/customer-profile
	GetCustomerProfile(c *gin.Context)

	// DeleteCustomerProfile handles DELETE /users/:user_id/customer-profile
	DeleteCustomerProfile(c *gin.Context)

	// ListCustomerProfiles handles GET /customer-profiles
	// Lists all profile ids, or looks one up with ?email=.
	ListCustomerProfiles(c *gin.Context)

	// GetCustomerProfileByID handles GET /customer-profiles/:profile_id
	GetCustomerProfileByID(c *gin.Context)
}

// PaymentProfileHttpPort defines HTTP handler interface for payment profile operations.
type PaymentProfileHttpPort interface {
	// CreatePaymentProfile handles POST /users/:user_id/payment-profiles
	CreatePaymentProfile(c *gin.Context)

	// ListPaymentProfiles handles GET /users/:user_id/payment-profiles
	// Lists the profiles stored on the gateway.
	ListPaymentProfiles(c *gin.Context)

	// ListPaymentMethods handles GET /users/:user_id/payment-methods
	// Lists locally recorded methods, filtered with ?type=card|bank.
	ListPaymentMethods(c *gin.Context)
}

// TransactionHttpPort defines HTTP handler interface for charges and refunds.
type TransactionHttpPort interface {
	// Charge handles POST /users/:user_id/charges
	Charge(c *gin.Context)

	// Refund handles POST /users/:user_id/refunds
	Refund(c *gin.Context)
}
