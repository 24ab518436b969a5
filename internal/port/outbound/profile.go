package outbound

import (
	"context"

	"github.com/uniedit/anet/internal/model"
)

// CustomerProfileDatabasePort defines customer profile mapping persistence.
type CustomerProfileDatabasePort interface {
	// Save records that userID owns profileID. The row for profileID is locked
	// before it is updated; when absent the user's own row is repointed, and
	// otherwise a row is inserted. It reports whether a new row was inserted.
	Save(ctx context.Context, userID int64, profileID string) (bool, error)

	// FindLatestByUserID returns the most recently created mapping for the user, or nil.
	FindLatestByUserID(ctx context.Context, userID int64) (*model.CustomerProfile, error)

	// FindByProfileID returns the mapping for a remote profile id, or nil.
	FindByProfileID(ctx context.Context, profileID string) (*model.CustomerProfile, error)

	// DeleteByProfileID removes the mapping for a remote profile id.
	DeleteByProfileID(ctx context.Context, profileID string) error
}

// PaymentProfileDatabasePort defines payment profile persistence.
type PaymentProfileDatabasePort interface {
	// Upsert inserts the profile or updates owner and display metadata when the
	// remote payment profile id already exists.
	Upsert(ctx context.Context, profile *model.PaymentProfile) error

	// ListByUserID lists a user's payment profiles. An empty methodType lists all.
	ListByUserID(ctx context.Context, userID int64, methodType model.PaymentMethodType) ([]*model.PaymentProfile, error)
}

// CustomerProfileReaderPort resolves and fetches a user's customer profile.
type CustomerProfileReaderPort interface {
	// ProfileID resolves the user's gateway profile id, or "" when none is known.
	ProfileID(ctx context.Context, user model.LocalUser) (string, error)

	// GetByID fetches a customer profile by its gateway id.
	GetByID(ctx context.Context, profileID string) (*model.CustomerProfileMasked, error)
}
