package model

import (
	"reflect"
	"time"
)

// LocalUser is the host application's user as seen by the gateway layer.
type LocalUser interface {
	// GatewayUserID returns the local numeric user id.
	GatewayUserID() int64

	// GatewayCustomerProfileID returns the remote customer profile id, or "" when unknown.
	GatewayCustomerProfileID() string

	// GatewayEmail returns the email sent with a new customer profile.
	GatewayEmail() string

	// GatewayName returns the first and last name used as the default bill-to.
	GatewayName() (first, last string)
}

// IsNilUser reports whether u is nil, including a typed nil pointer.
func IsNilUser(u LocalUser) bool {
	if u == nil {
		return true
	}
	v := reflect.ValueOf(u)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// User is a plain LocalUser for hosts that do not carry their own user type.
type User struct {
	ID                int64  `json:"id"`
	CustomerProfileID string `json:"customer_profile_id,omitempty"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
}

func (u *User) GatewayUserID() int64 { return u.ID }
func (u *User) GatewayCustomerProfileID() string { return u.CustomerProfileID }
func (u *User) GatewayEmail() string { return u.Email }
func (u *User) GatewayName() (first, last string) { return u.FirstName, u.LastName }

// CustomerProfile maps a local user to a remote customer profile id.
type CustomerProfile struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	ProfileID string    `json:"profile_id" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name.
func (CustomerProfile) TableName() string {
	return "user_gateway_profiles"
}

// PaymentMethodType is the kind of tokenized instrument.
type PaymentMethodType string

const (
	PaymentMethodTypeCard PaymentMethodType = "card"
	PaymentMethodTypeBank PaymentMethodType = "bank"
)

// PaymentProfile maps a remote payment profile to its owner and display metadata.
type PaymentProfile struct {
	ID               int64             `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID           int64             `json:"user_id" gorm:"not null;index"`
	PaymentProfileID string            `json:"payment_profile_id" gorm:"not null;uniqueIndex"`
	Last4            string            `json:"last_4" gorm:"column:last_4;size:4"`
	Brand            string            `json:"brand"`
	Type             PaymentMethodType `json:"type" gorm:"size:16;index"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// TableName returns the table name.
func (PaymentProfile) TableName() string {
	return "user_payment_profiles"
}

// DisplayMetadata is the caller-supplied description of a tokenized instrument.
type DisplayMetadata struct {
	Last4 string            `json:"last_4"`
	Brand string            `json:"brand"`
	Type  PaymentMethodType `json:"type"`
}

// ProfileFactKind distinguishes the facts emitted after a profile is persisted.
type ProfileFactKind string

const (
	ProfileFactCreated ProfileFactKind = "created"
	ProfileFactUpdated ProfileFactKind = "updated"
)

// ProfileFact is emitted to observers once a customer profile mapping is committed.
type ProfileFact struct {
	Kind       ProfileFactKind `json:"kind"`
	UserID     int64           `json:"user_id"`
	ProfileID  string          `json:"profile_id"`
	OccurredAt time.Time       `json:"occurred_at"`
}
