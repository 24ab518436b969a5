package customer

import "errors"

var (
	// ErrNilUser is returned when an operation is called without a user.
	ErrNilUser = errors.New("user is required")

	// ErrEmptyEmail is returned by GetByEmail for a blank address.
	ErrEmptyEmail = errors.New("email is required")
)

const (
	profileDescription    = "Customer Profile"
	createFailedMessage   = "failed to create customer profile"
	duplicateRecordFormat = `A duplicate record with ID ([0-9]+) already exists`
)
