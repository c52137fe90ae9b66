package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidtube/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRoutes(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "author")
	other := env.seedUser(t, "lurker")
	video := env.seedVideo(t, owner.ID, "talk", true)
	ownerToken := env.token(t, owner.ID)

	base := "/api/v1/comments/" + video.ID.String()

	status, _ := env.do(t, jsonRequest(http.MethodPost, base, map[string]string{"content": "   "}), ownerToken)
	assert.Equal(t, http.StatusBadRequest, status)

	for i := 0; i < 12; i++ {
		status, _ := env.do(t, jsonRequest(http.MethodPost, base, map[string]string{"content": fmt.Sprintf("c%d", i)}), ownerToken)
		require.Equal(t, http.StatusOK, status)
	}

	status, body := env.do(t, httptest.NewRequest(http.MethodGet, base+"?page=2", nil), ownerToken)
	require.Equal(t, http.StatusOK, status)
	page := decode[models.Page[models.CommentView]](t, body.Data)
	assert.Equal(t, int64(12), page.TotalDocs)
	require.Len(t, page.Docs, 2)
	assert.Equal(t, "author", page.Docs[0].OwnerProfile.Username)

	commentID := page.Docs[0].ID.String()
	status, _ = env.do(t, jsonRequest(http.MethodPatch, "/api/v1/comments/c/"+commentID,
		map[string]string{"content": "edited"}), env.token(t, other.ID))
	assert.Equal(t, http.StatusForbidden, status)

	status, body = env.do(t, jsonRequest(http.MethodPatch, "/api/v1/comments/c/"+commentID,
		map[string]string{"content": "edited"}), ownerToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "edited", decode[models.Comment](t, body.Data).Content)

	status, _ = env.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/comments/c/"+commentID, nil), ownerToken)
	assert.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/comments/c/"+commentID, nil), ownerToken)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/comments/"+uuid.NewString(), nil), ownerToken)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLikeRoutes(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "creator")
	fan := env.seedUser(t, "fan")
	video := env.seedVideo(t, owner.ID, "hit", true)
	fanToken := env.token(t, fan.ID)

	path := "/api/v1/likes/toggle/v/" + video.ID.String()
	for _, want := range []bool{true, false, true} {
		status, body := env.do(t, httptest.NewRequest(http.MethodPost, path, nil), fanToken)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, want, decode[map[string]bool](t, body.Data)["isLiked"])
		if want {
			assert.Equal(t, "Video liked successfully", body.Message)
		} else {
			assert.Equal(t, "Video unliked successfully", body.Message)
		}
	}

	// Another user's like is independent.
	status, body := env.do(t, httptest.NewRequest(http.MethodPost, path, nil), env.token(t, owner.ID))
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[map[string]bool](t, body.Data)["isLiked"])

	status, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/likes/videos", nil), fanToken)
	require.Equal(t, http.StatusOK, status)
	liked := decode[[]models.LikedVideo](t, body.Data)
	require.Len(t, liked, 1)
	assert.Equal(t, video.ID, liked[0].ID)

	status, _ = env.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/likes/toggle/c/"+uuid.NewString(), nil), fanToken)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = env.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/likes/toggle/t/bogus", nil), fanToken)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTweetRoutes(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "poster")
	token := env.token(t, author.ID)

	status, body := env.do(t, jsonRequest(http.MethodPost, "/api/v1/tweets", map[string]string{"content": "hello"}), token)
	require.Equal(t, http.StatusOK, status)
	tweet := decode[models.Tweet](t, body.Data)

	status, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/tweets/user/"+author.ID.String(), nil), token)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Tweet](t, body.Data), 1)

	status, _ = env.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/likes/toggle/t/"+tweet.ID.String(), nil), token)
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, jsonRequest(http.MethodPatch, "/api/v1/tweets/"+tweet.ID.String(),
		map[string]string{"content": "hi"}), env.token(t, env.seedUser(t, "troll").ID))
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/tweets/"+tweet.ID.String(), nil), token)
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/tweets/user/"+uuid.NewString(), nil), token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPlaylistRoutes(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "curator")
	v1 := env.seedVideo(t, owner.ID, "one", true)
	v2 := env.seedVideo(t, owner.ID, "two", true)
	token := env.token(t, owner.ID)

	status, body := env.do(t, jsonRequest(http.MethodPost, "/api/v1/playlist",
		map[string]string{"name": "Mix", "description": "favourites"}), token)
	require.Equal(t, http.StatusOK, status)
	playlist := decode[models.Playlist](t, body.Data)

	add := func(videoID uuid.UUID) (int, envelope) {
		return env.do(t, httptest.NewRequest(http.MethodPatch,
			fmt.Sprintf("/api/v1/playlist/add/%s/%s", videoID, playlist.ID), nil), token)
	}

	status, _ = add(v2.ID)
	require.Equal(t, http.StatusOK, status)
	status, body = add(v1.ID)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []uuid.UUID{v2.ID, v1.ID}, decode[models.Playlist](t, body.Data).Videos)

	status, _ = add(v1.ID)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.do(t, httptest.NewRequest(http.MethodPatch,
		fmt.Sprintf("/api/v1/playlist/add/%s/%s", v1.ID, playlist.ID), nil), env.token(t, env.seedUser(t, "intruder").ID))
	assert.Equal(t, http.StatusForbidden, status)

	remove := fmt.Sprintf("/api/v1/playlist/remove/%s/%s", v2.ID, playlist.ID)
	for i := 0; i < 2; i++ {
		status, body = env.do(t, httptest.NewRequest(http.MethodPatch, remove, nil), token)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, []uuid.UUID{v1.ID}, decode[models.Playlist](t, body.Data).Videos)
	}

	status, _ = env.do(t, jsonRequest(http.MethodPatch, "/api/v1/playlist/"+playlist.ID.String(), map[string]string{}), token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.do(t, jsonRequest(http.MethodPatch, "/api/v1/playlist/"+playlist.ID.String(),
		map[string]string{"name": "Renamed"}), token)
	require.Equal(t, http.StatusOK, status)
	updated := decode[models.Playlist](t, body.Data)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "favourites", updated.Description)

	status, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/playlist/user/"+owner.ID.String(), nil), token)
	require.Equal(t, http.StatusOK, status)
	lists := decode[[]models.PlaylistWithVideos](t, body.Data)
	require.Len(t, lists, 1)
	assert.Equal(t, 1, lists[0].TotalVideos)

	status, _ = env.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/playlist/"+playlist.ID.String(), nil), token)
	assert.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/playlist/"+playlist.ID.String(), nil), token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSubscriptionAndDashboardRoutes(t *testing.T) {
	env := newTestEnv(t)
	channel := env.seedUser(t, "streamer")
	fan := env.seedUser(t, "follower")
	video := env.seedVideo(t, channel.ID, "stream", true)
	env.seedVideo(t, channel.ID, "draft", false)
	fanToken := env.token(t, fan.ID)
	channelToken := env.token(t, channel.ID)

	path := "/api/v1/subscriptions/c/" + channel.ID.String()
	status, body := env.do(t, httptest.NewRequest(http.MethodPost, path, nil), fanToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Channel subscribed Successfully", body.Message)

	status, _ = env.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions/c/"+fan.ID.String(), nil), fanToken)
	assert.Equal(t, http.StatusBadRequest, status, "self subscription")

	status, body = env.do(t, httptest.NewRequest(http.MethodGet, path, nil), fanToken)
	require.Equal(t, http.StatusOK, status)
	subscribers := decode[[]models.SubscriptionProfile](t, body.Data)
	require.Len(t, subscribers, 1)
	assert.Equal(t, "follower", subscribers[0].Username)

	status, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/u/"+fan.ID.String(), nil), fanToken)
	require.Equal(t, http.StatusOK, status)
	channels := decode[[]models.SubscriptionProfile](t, body.Data)
	require.Len(t, channels, 1)
	assert.Equal(t, channel.ID, channels[0].ID)

	status, _ = env.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/likes/toggle/v/"+video.ID.String(), nil), fanToken)
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil), channelToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.ChannelStats{TotalVideos: 2, TotalLikes: 1, TotalSubscribers: 1},
		decode[models.ChannelStats](t, body.Data))

	status, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/videos", nil), channelToken)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]models.Video](t, body.Data), 2)

	status, body = env.do(t, httptest.NewRequest(http.MethodPost, path, nil), fanToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Channel unsubscribed Successfully", body.Message)

	status, body = env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil), fanToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.ChannelStats{}, decode[models.ChannelStats](t, body.Data))
}
