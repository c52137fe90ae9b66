package repository

import (
	"context"

	"vidtube/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository defines interface for subscription operations
type SubscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.SubscriptionProfile, error)
	ListSubscriptions(ctx context.Context, subscriberID uuid.UUID) ([]models.SubscriptionProfile, error)
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Toggle flips the subscription and reports whether it exists afterwards.
func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	var subscribed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).Delete(&models.Subscription{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			subscribed = false
			return nil
		}
		sub := &models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(sub).Error; err != nil {
			return err
		}
		subscribed = true
		return nil
	})
	return subscribed, err
}

// ListSubscribers returns the profiles of users subscribed to channelID.
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.SubscriptionProfile, error) {
	return r.profiles(ctx, "subscriber_id", "channel_id", channelID)
}

// ListSubscriptions returns the profiles of channels subscriberID follows.
func (r *subscriptionRepository) ListSubscriptions(ctx context.Context, subscriberID uuid.UUID) ([]models.SubscriptionProfile, error) {
	return r.profiles(ctx, "channel_id", "subscriber_id", subscriberID)
}

// profiles joins users on joinColumn for rows where filterColumn = id.
// Both column names are internal constants.
func (r *subscriptionRepository) profiles(ctx context.Context, joinColumn, filterColumn string, id uuid.UUID) ([]models.SubscriptionProfile, error) {
	profiles := []models.SubscriptionProfile{}
	err := r.db.WithContext(ctx).
		Table("subscriptions").
		Select("users.id, users.username, users.full_name, users.avatar, subscriptions.created_at AS subscribed_at").
		Joins("JOIN users ON users.id = subscriptions."+joinColumn).
		Where("subscriptions."+filterColumn+" = ?", id).
		Order("subscriptions.created_at desc").
		Scan(&profiles).Error
	return profiles, err
}

func (r *subscriptionRepository) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}
