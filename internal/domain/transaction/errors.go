package transaction

import "errors"

var (
	// ErrNilUser is returned when an operation is called without a user.
	ErrNilUser = errors.New("user is required")

	// ErrMissingPaymentProfile is returned when no payment profile id is given.
	ErrMissingPaymentProfile = errors.New("payment profile id is required")

	// ErrMissingRefTransID is returned when a refund names no original transaction.
	ErrMissingRefTransID = errors.New("reference transaction id is required")
)

const failedMessage = "transaction failed"
