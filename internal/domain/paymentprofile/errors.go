package paymentprofile

import "errors"

var (
	// ErrNilUser is returned when an operation is called without a user.
	ErrNilUser = errors.New("user is required")

	// ErrMissingToken is returned when the opaque payment token is incomplete.
	ErrMissingToken = errors.New("payment token descriptor and value are required")

	// ErrInvalidMethodType is returned for a payment method type other than card or bank.
	ErrInvalidMethodType = errors.New("invalid payment method type")
)

const createFailedMessage = "failed to create payment profile"
