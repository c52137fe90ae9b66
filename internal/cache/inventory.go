package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	VideoKeyPrefix        = "video:%s"
	ChannelStatsKeyPrefix = "channel:%s:stats"
	UserKeyPrefix         = "user:%s"
	TokenBlacklistPrefix  = "blacklist:%s"
)

const (
	VideoTTL        = 10 * time.Minute
	ChannelStatsTTL = 30 * time.Second
	UserTTL         = 5 * time.Minute
)

func VideoKey(videoID uuid.UUID) string {
	return fmt.Sprintf(VideoKeyPrefix, videoID)
}

func ChannelStatsKey(channelID uuid.UUID) string {
	return fmt.Sprintf(ChannelStatsKeyPrefix, channelID)
}

func UserKey(userID uuid.UUID) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func TokenBlacklistKey(jti string) string {
	return fmt.Sprintf(TokenBlacklistPrefix, jti)
}

// Invalidate deletes key, ignoring a missing client.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateVideo(ctx context.Context, videoID uuid.UUID) {
	Invalidate(ctx, VideoKey(videoID))
}

func InvalidateChannelStats(ctx context.Context, channelID uuid.UUID) {
	Invalidate(ctx, ChannelStatsKey(channelID))
}

func InvalidateUser(ctx context.Context, userID uuid.UUID) {
	Invalidate(ctx, UserKey(userID))
}
