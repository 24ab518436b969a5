package model

// CreateCustomerProfileInput identifies the user a customer profile is created for.
type CreateCustomerProfileInput struct {
	Email             string `json:"email" binding:"required,email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	CustomerProfileID string `json:"customer_profile_id,omitempty"`
}

// CustomerProfileOutput reports how a create request was satisfied.
type CustomerProfileOutput struct {
	Outcome   string `json:"outcome"`
	ProfileID string `json:"profile_id"`
}

// ProfileIDsOutput lists customer profile ids.
type ProfileIDsOutput struct {
	IDs []string `json:"ids"`
}

// CreatePaymentProfileInput attaches a tokenized instrument to a user.
type CreatePaymentProfileInput struct {
	Token             OpaqueData      `json:"token"`
	Metadata          DisplayMetadata `json:"metadata"`
	BillTo            *Address        `json:"bill_to,omitempty"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	CustomerProfileID string          `json:"customer_profile_id,omitempty"`
}

// ChargeInput charges a stored payment profile.
type ChargeInput struct {
	AmountCents       int64    `json:"amount_cents"`
	PaymentProfileID  string   `json:"payment_profile_id"`
	BillTo            *Address `json:"bill_to,omitempty"`
	CustomerProfileID string   `json:"customer_profile_id,omitempty"`
}

// RefundInput refunds a settled transaction back to a stored payment profile.
type RefundInput struct {
	AmountCents       int64  `json:"amount_cents"`
	RefTransID        string `json:"ref_trans_id"`
	PaymentProfileID  string `json:"payment_profile_id"`
	CustomerProfileID string `json:"customer_profile_id,omitempty"`
}
