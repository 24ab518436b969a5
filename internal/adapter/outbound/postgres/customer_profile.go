package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uniedit/anet/internal/model"
	"github.com/uniedit/anet/internal/port/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// customerProfileAdapter implements outbound.CustomerProfileDatabasePort.
type customerProfileAdapter struct {
	db  *gorm.DB
	now func() time.Time
}

// NewCustomerProfileAdapter creates a new customer profile database adapter.
func NewCustomerProfileAdapter(db *gorm.DB) outbound.CustomerProfileDatabasePort {
	return &customerProfileAdapter{db: db, now: time.Now}
}

// Save records profileID for userID and leaves exactly one row for the user.
// A unique violation from a concurrent writer is retried once from the top.
func (a *customerProfileAdapter) Save(ctx context.Context, userID int64, profileID string) (bool, error) {
	inserted, err := a.save(ctx, userID, profileID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		inserted, err = a.save(ctx, userID, profileID)
	}
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func (a *customerProfileAdapter) save(ctx context.Context, userID int64, profileID string) (bool, error) {
	var inserted bool
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := a.now()

		var existing model.CustomerProfile
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("profile_id = ?", profileID).
			Take(&existing).Error
		if err == nil {
			if err := a.touch(tx, existing.ID, userID, profileID, now); err != nil {
				return err
			}
			return a.dropOthers(tx, userID, profileID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lock customer profile by profile id: %w", err)
		}

		var owned model.CustomerProfile
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Order("updated_at DESC").Order("id DESC").
			Take(&owned).Error
		if err == nil {
			if err := a.touch(tx, owned.ID, userID, profileID, now); err != nil {
				return err
			}
			return a.dropOthers(tx, userID, profileID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lock customer profile by user id: %w", err)
		}

		record := &model.CustomerProfile{
			UserID:    userID,
			ProfileID: profileID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}},
			DoNothing: true,
		}).Create(record)
		if result.Error != nil {
			return fmt.Errorf("insert customer profile: %w", result.Error)
		}
		if result.RowsAffected == 1 {
			inserted = true
			return a.dropOthers(tx, userID, profileID)
		}

		// A concurrent writer inserted the same profile id first.
		if err := tx.Model(&model.CustomerProfile{}).
			Where("profile_id = ?", profileID).
			Updates(map[string]any{"user_id": userID, "updated_at": now}).Error; err != nil {
			return fmt.Errorf("update customer profile after conflict: %w", err)
		}
		return a.dropOthers(tx, userID, profileID)
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func (a *customerProfileAdapter) touch(tx *gorm.DB, id, userID int64, profileID string, now time.Time) error {
	err := tx.Model(&model.CustomerProfile{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"user_id":    userID,
			"profile_id": profileID,
			"updated_at": now,
		}).Error
	if err != nil {
		return fmt.Errorf("update customer profile: %w", err)
	}
	return nil
}

// dropOthers removes the user's rows that do not carry profileID.
func (a *customerProfileAdapter) dropOthers(tx *gorm.DB, userID int64, profileID string) error {
	err := tx.Where("user_id = ? AND profile_id <> ?", userID, profileID).
		Delete(&model.CustomerProfile{}).Error
	if err != nil {
		return fmt.Errorf("delete stale customer profiles: %w", err)
	}
	return nil
}

func (a *customerProfileAdapter) FindLatestByUserID(ctx context.Context, userID int64) (*model.CustomerProfile, error) {
	var record model.CustomerProfile
	err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").Order("id DESC").
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer profile by user id: %w", err)
	}
	return &record, nil
}

func (a *customerProfileAdapter) FindByProfileID(ctx context.Context, profileID string) (*model.CustomerProfile, error) {
	var record model.CustomerProfile
	err := a.db.WithContext(ctx).Where("profile_id = ?", profileID).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer profile by profile id: %w", err)
	}
	return &record, nil
}

func (a *customerProfileAdapter) DeleteByProfileID(ctx context.Context, profileID string) error {
	err := a.db.WithContext(ctx).Where("profile_id = ?", profileID).Delete(&model.CustomerProfile{}).Error
	if err != nil {
		return fmt.Errorf("delete customer profile: %w", err)
	}
	return nil
}
