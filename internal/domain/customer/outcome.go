package customer

// OutcomeKind tells how a customer profile was obtained.
type OutcomeKind string

const (
	// OutcomeCreated means the gateway assigned a new profile id.
	OutcomeCreated OutcomeKind = "created"

	// OutcomeAlreadyExists means the gateway reported an existing profile for the same customer.
	OutcomeAlreadyExists OutcomeKind = "already_exists"
)

// Outcome is the successful result of Create.
type Outcome struct {
	Kind      OutcomeKind `json:"kind"`
	ProfileID string      `json:"profile_id"`
}

// Created reports whether the profile is new on the gateway.
func (o *Outcome) Created() bool {
	return o.Kind == OutcomeCreated
}
