package service

import (
	"context"

	"vidtube/internal/cache"
	"vidtube/internal/models"
	"vidtube/internal/repository"

	"github.com/google/uuid"
)

type DashboardService struct {
	videoRepo repository.VideoRepository
	subRepo   repository.SubscriptionRepository
}

func NewDashboardService(videoRepo repository.VideoRepository, subRepo repository.SubscriptionRepository) *DashboardService {
	return &DashboardService{videoRepo: videoRepo, subRepo: subRepo}
}

// ChannelStats totals the channel's videos, views, likes and subscribers.
// An empty channel yields zeros. Results are cached briefly.
func (s *DashboardService) ChannelStats(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error) {
	var stats models.ChannelStats
	err := cache.CacheAside(ctx, cache.ChannelStatsKey(ownerID), &stats, cache.ChannelStatsTTL, func() error {
		totals, err := s.videoRepo.ChannelTotals(ctx, ownerID)
		if err != nil {
			return err
		}
		subscribers, err := s.subRepo.CountSubscribers(ctx, ownerID)
		if err != nil {
			return err
		}
		stats = *totals
		stats.TotalSubscribers = subscribers
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ChannelVideos lists every video of the channel, published or not, newest first.
func (s *DashboardService) ChannelVideos(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error) {
	videos, err := s.videoRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []models.Video{}
	}
	return videos, nil
}
