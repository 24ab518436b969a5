package postgres

import (
	"context"
	"fmt"

	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentProfileAdapter implements outbound.PaymentProfileDatabasePort.
type paymentProfileAdapter struct {
	db *gorm.DB
}

// NewPaymentProfileAdapter creates a new payment profile database adapter.
func NewPaymentProfileAdapter(db *gorm.DB) outbound.PaymentProfileDatabasePort {
	return &paymentProfileAdapter{db: db}
}

func (a *paymentProfileAdapter) Upsert(ctx context.Context, profile *model.PaymentProfile) error {
	err := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "payment_profile_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "last_4", "brand", "type", "updated_at"}),
		}).
		Create(profile).Error
	if err != nil {
		return fmt.Errorf("upsert payment profile: %w", err)
	}
	return nil
}

func (a *paymentProfileAdapter) ListByUserID(ctx context.Context, userID int64, methodType model.PaymentMethodType) ([]*model.PaymentProfile, error) {
	var profiles []*model.PaymentProfile
	query := a.db.WithContext(ctx).Where("user_id = ?", userID)
	if methodType != "" {
		query = query.Where("type = ?", methodType)
	}
	if err := query.Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list payment profiles: %w", err)
	}
	return profiles, nil
}
