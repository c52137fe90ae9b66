package service

import (
	"context"

	"vidtube/internal/cache"
	"vidtube/internal/events"
	"vidtube/internal/models"
	"vidtube/internal/observability"
	"vidtube/internal/repository"

	"github.com/google/uuid"
)

type SubscriptionService struct {
	subRepo   repository.SubscriptionRepository
	userRepo  repository.UserRepository
	publisher events.Publisher
}

func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	publisher events.Publisher,
) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo, publisher: publisher}
}

// Toggle subscribes the caller to channelID, or unsubscribes when already
// subscribed, and reports the resulting state.
func (s *SubscriptionService) Toggle(ctx context.Context, channelID, callerID uuid.UUID) (bool, error) {
	exists, err := s.userRepo.Exists(ctx, channelID)
	if err := requireExists(exists, err, "Channel", channelID); err != nil {
		return false, err
	}
	if channelID == callerID {
		return false, models.NewValidationError("You cannot subscribe to your own channel")
	}

	subscribed, err := s.subRepo.Toggle(ctx, callerID, channelID)
	if err != nil {
		return false, err
	}
	observability.Toggles.WithLabelValues("subscription", observability.ToggleState(subscribed)).Inc()
	cache.InvalidateChannelStats(ctx, channelID)

	if subscribed {
		publish(ctx, s.publisher, events.New(events.TypeChannelSubscribed, callerID, channelID, nil))
	}
	return subscribed, nil
}

func (s *SubscriptionService) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.SubscriptionProfile, error) {
	exists, err := s.userRepo.Exists(ctx, channelID)
	if err := requireExists(exists, err, "Channel", channelID); err != nil {
		return nil, err
	}
	return s.subRepo.ListSubscribers(ctx, channelID)
}

func (s *SubscriptionService) ListSubscriptions(ctx context.Context, subscriberID uuid.UUID) ([]models.SubscriptionProfile, error) {
	exists, err := s.userRepo.Exists(ctx, subscriberID)
	if err := requireExists(exists, err, "User", subscriberID); err != nil {
		return nil, err
	}
	return s.subRepo.ListSubscriptions(ctx, subscriberID)
}
