package repository

import (
	"regexp"
	"testing"

	"vidtube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVideoRepository(db)

	video := &models.Video{Title: "Intro", OwnerID: uuid.New(), IsPublished: true}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "videos"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Create(bg(), video)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, video.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedVideo(t, db, alice.ID, "Go Basics", 30)
	seedVideo(t, db, alice.ID, "Advanced go", 10)
	seedVideo(t, db, bob.ID, "Cooking 100%", 50)
	hidden := seedVideo(t, db, bob.ID, "Draft go", 5)
	_, err := repo.TogglePublish(bg(), hidden.ID)
	require.NoError(t, err)

	t.Run("search is case insensitive", func(t *testing.T) {
		videos, total, err := repo.List(bg(), VideoFilter{Query: "GO", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, videos, 3)
	})

	t.Run("published only", func(t *testing.T) {
		_, total, err := repo.List(bg(), VideoFilter{Query: "go", PublishedOnly: true, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		videos, total, err := repo.List(bg(), VideoFilter{Query: "100%", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, videos, 1)
		assert.Equal(t, "Cooking 100%", videos[0].Title)

		_, total, err = repo.List(bg(), VideoFilter{Query: "%", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("owner filter and sort", func(t *testing.T) {
		videos, total, err := repo.List(bg(), VideoFilter{OwnerID: alice.ID, SortBy: "views", Desc: true, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, videos, 2)
		assert.Equal(t, "Go Basics", videos[0].Title)
		assert.Equal(t, "Advanced go", videos[1].Title)
	})

	t.Run("pagination", func(t *testing.T) {
		videos, total, err := repo.List(bg(), VideoFilter{SortBy: "views", Page: 2, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, videos, 1)
		assert.Equal(t, "Cooking 100%", videos[0].Title)
	})

	t.Run("unknown sort falls back", func(t *testing.T) {
		_, total, err := repo.List(bg(), VideoFilter{SortBy: "password; DROP TABLE videos", Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
	})
}

func TestVideoRepository_TogglePublish(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)
	alice := seedUser(t, db, "alice")
	v := seedVideo(t, db, alice.ID, "clip", 0)

	got, err := repo.TogglePublish(bg(), v.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	got, err = repo.TogglePublish(bg(), v.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)

	_, err = repo.TogglePublish(bg(), uuid.New())
	assert.True(t, IsNotFound(err))
}

func TestVideoRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	v := seedVideo(t, db, alice.ID, "clip", 0)
	other := seedVideo(t, db, alice.ID, "keep", 0)

	comment := &models.Comment{Content: "nice", VideoID: v.ID, OwnerID: bob.ID}
	require.NoError(t, db.Create(comment).Error)
	require.NoError(t, db.Create(models.NewLike(models.LikeSubjectComment, comment.ID, alice.ID)).Error)
	require.NoError(t, db.Create(models.NewLike(models.LikeSubjectVideo, v.ID, bob.ID)).Error)
	require.NoError(t, db.Create(models.NewLike(models.LikeSubjectVideo, other.ID, bob.ID)).Error)

	playlist := &models.Playlist{Name: "mix", Description: "d", OwnerID: bob.ID}
	require.NoError(t, db.Create(playlist).Error)
	require.NoError(t, db.Create(&models.PlaylistVideo{PlaylistID: playlist.ID, VideoID: v.ID, Position: 1}).Error)

	require.NoError(t, repo.Delete(bg(), v.ID))

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Like{}).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Model(&models.PlaylistVideo{}).Count(&count)
	assert.Zero(t, count)

	assert.True(t, IsNotFound(repo.Delete(bg(), v.ID)))
}

func TestVideoRepository_ChannelTotals(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	empty, err := repo.ChannelTotals(bg(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChannelStats{}, *empty)

	v1 := seedVideo(t, db, alice.ID, "one", 7)
	seedVideo(t, db, alice.ID, "two", 5)
	seedVideo(t, db, bob.ID, "bobs", 100)
	require.NoError(t, db.Create(models.NewLike(models.LikeSubjectVideo, v1.ID, bob.ID)).Error)
	require.NoError(t, db.Create(models.NewLike(models.LikeSubjectVideo, v1.ID, alice.ID)).Error)

	stats, err := repo.ChannelTotals(bg(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(12), stats.TotalViews)
	assert.Equal(t, int64(2), stats.TotalLikes)
}

func TestVideoRepository_GetByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVideoRepository(db)
	alice := seedUser(t, db, "alice")
	v := seedVideo(t, db, alice.ID, "one", 0)

	got, err := repo.GetByIDs(bg(), []uuid.UUID{v.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "one", got[v.ID].Title)
}
