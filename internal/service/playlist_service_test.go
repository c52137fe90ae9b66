package service

import (
	"context"
	"testing"

	"vidtube/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func ownedPlaylistRepo(owner uuid.UUID) *playlistRepoStub {
	repo := noopPlaylistRepo()
	repo.getByIDFn = func(_ context.Context, id uuid.UUID) (*models.Playlist, error) {
		return &models.Playlist{ID: id, Name: "mix", Description: "desc", OwnerID: owner, Videos: []uuid.UUID{}}, nil
	}
	return repo
}

func TestPlaylistService_Create(t *testing.T) {
	t.Parallel()

	svc := NewPlaylistService(noopPlaylistRepo(), noopVideoRepo(), noopUserRepo())
	_, err := svc.Create(context.Background(), CreatePlaylistInput{Name: "", Description: "d", OwnerID: uuid.New()})
	assertMissingField(t, err)
	_, err = svc.Create(context.Background(), CreatePlaylistInput{Name: "n", Description: " ", OwnerID: uuid.New()})
	assertMissingField(t, err)

	owner := uuid.New()
	p, err := svc.Create(context.Background(), CreatePlaylistInput{Name: " Road trip ", Description: "songs", OwnerID: owner})
	require.NoError(t, err)
	assert.Equal(t, "Road trip", p.Name)
	assert.Equal(t, owner, p.OwnerID)
}

func TestPlaylistService_AddVideo(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	ctx := context.Background()

	t.Run("non-owner forbidden", func(t *testing.T) {
		t.Parallel()
		repo := ownedPlaylistRepo(owner)
		repo.addVideoFn = func(_ context.Context, _, _ uuid.UUID) (bool, error) {
			t.Error("add must not run")
			return false, nil
		}
		svc := NewPlaylistService(repo, noopVideoRepo(), noopUserRepo())
		_, err := svc.AddVideo(ctx, PlaylistVideoInput{PlaylistID: uuid.New(), VideoID: uuid.New(), CallerID: uuid.New()})
		assertForbidden(t, err)
	})

	t.Run("missing playlist", func(t *testing.T) {
		t.Parallel()
		repo := noopPlaylistRepo()
		repo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*models.Playlist, error) { return nil, gorm.ErrRecordNotFound }
		svc := NewPlaylistService(repo, noopVideoRepo(), noopUserRepo())
		_, err := svc.AddVideo(ctx, PlaylistVideoInput{PlaylistID: uuid.New(), VideoID: uuid.New(), CallerID: owner})
		assertNotFound(t, err)
	})

	t.Run("missing video", func(t *testing.T) {
		t.Parallel()
		videoRepo := noopVideoRepo()
		videoRepo.existsFn = func(_ context.Context, _ uuid.UUID) (bool, error) { return false, nil }
		svc := NewPlaylistService(ownedPlaylistRepo(owner), videoRepo, noopUserRepo())
		_, err := svc.AddVideo(ctx, PlaylistVideoInput{PlaylistID: uuid.New(), VideoID: uuid.New(), CallerID: owner})
		assertNotFound(t, err)
	})

	t.Run("duplicate conflicts", func(t *testing.T) {
		t.Parallel()
		repo := ownedPlaylistRepo(owner)
		repo.addVideoFn = func(_ context.Context, _, _ uuid.UUID) (bool, error) { return false, nil }
		svc := NewPlaylistService(repo, noopVideoRepo(), noopUserRepo())
		_, err := svc.AddVideo(ctx, PlaylistVideoInput{PlaylistID: uuid.New(), VideoID: uuid.New(), CallerID: owner})
		assertAppError(t, err, models.CodeConflict)
	})

	t.Run("owner adds", func(t *testing.T) {
		t.Parallel()
		svc := NewPlaylistService(ownedPlaylistRepo(owner), noopVideoRepo(), noopUserRepo())
		p, err := svc.AddVideo(ctx, PlaylistVideoInput{PlaylistID: uuid.New(), VideoID: uuid.New(), CallerID: owner})
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

func TestPlaylistService_RemoveVideo_Idempotent(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	repo := ownedPlaylistRepo(owner)
	repo.removeVideoFn = func(_ context.Context, _, _ uuid.UUID) (bool, error) { return false, nil }
	svc := NewPlaylistService(repo, noopVideoRepo(), noopUserRepo())

	p, err := svc.RemoveVideo(context.Background(), PlaylistVideoInput{PlaylistID: uuid.New(), VideoID: uuid.New(), CallerID: owner})
	require.NoError(t, err)
	assert.Empty(t, p.Videos)

	_, err = svc.RemoveVideo(context.Background(), PlaylistVideoInput{PlaylistID: uuid.New(), VideoID: uuid.New(), CallerID: uuid.New()})
	assertForbidden(t, err)
}

func TestPlaylistService_Update(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	ctx := context.Background()

	t.Run("needs a field", func(t *testing.T) {
		t.Parallel()
		svc := NewPlaylistService(ownedPlaylistRepo(owner), noopVideoRepo(), noopUserRepo())
		_, err := svc.Update(ctx, UpdatePlaylistInput{PlaylistID: uuid.New(), Name: strPtr("  "), CallerID: owner})
		assertMissingField(t, err)
	})

	t.Run("sets only provided fields", func(t *testing.T) {
		t.Parallel()
		repo := ownedPlaylistRepo(owner)
		var saved *models.Playlist
		repo.updateFn = func(_ context.Context, p *models.Playlist) error {
			saved = p
			return nil
		}
		svc := NewPlaylistService(repo, noopVideoRepo(), noopUserRepo())
		p, err := svc.Update(ctx, UpdatePlaylistInput{PlaylistID: uuid.New(), Description: strPtr("new desc"), CallerID: owner})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "mix", p.Name)
		assert.Equal(t, "new desc", p.Description)
	})

	t.Run("non-owner", func(t *testing.T) {
		t.Parallel()
		svc := NewPlaylistService(ownedPlaylistRepo(owner), noopVideoRepo(), noopUserRepo())
		_, err := svc.Update(ctx, UpdatePlaylistInput{PlaylistID: uuid.New(), Name: strPtr("x"), CallerID: uuid.New()})
		assertForbidden(t, err)
	})
}

func TestPlaylistService_ListForUser(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	v1, v2, missing := uuid.New(), uuid.New(), uuid.New()

	repo := noopPlaylistRepo()
	repo.listByOwnerFn = func(_ context.Context, _ uuid.UUID) ([]models.Playlist, error) {
		return []models.Playlist{
			{ID: uuid.New(), Name: "a", OwnerID: owner, Videos: []uuid.UUID{v2, missing, v1}},
			{ID: uuid.New(), Name: "empty", OwnerID: owner, Videos: []uuid.UUID{}},
		}, nil
	}
	videoRepo := noopVideoRepo()
	videoRepo.getByIDsFn = func(_ context.Context, _ []uuid.UUID) (map[uuid.UUID]models.Video, error) {
		return map[uuid.UUID]models.Video{
			v1: {ID: v1, Views: 3},
			v2: {ID: v2, Views: 4},
		}, nil
	}
	svc := NewPlaylistService(repo, videoRepo, noopUserRepo())

	lists, err := svc.ListForUser(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, 2, lists[0].TotalVideos)
	assert.Equal(t, int64(7), lists[0].TotalViews)
	assert.Equal(t, v2, lists[0].VideoDetails[0].ID)
	assert.Equal(t, v1, lists[0].VideoDetails[1].ID)
	assert.Zero(t, lists[1].TotalVideos)
	assert.NotNil(t, lists[1].VideoDetails)

	userRepo := noopUserRepo()
	userRepo.existsFn = func(_ context.Context, _ uuid.UUID) (bool, error) { return false, nil }
	svc = NewPlaylistService(repo, videoRepo, userRepo)
	_, err = svc.ListForUser(context.Background(), owner)
	assertNotFound(t, err)
}

func TestPlaylistService_Delete(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	var deleted bool
	repo := ownedPlaylistRepo(owner)
	repo.deleteFn = func(_ context.Context, _ uuid.UUID) error {
		deleted = true
		return nil
	}
	svc := NewPlaylistService(repo, noopVideoRepo(), noopUserRepo())

	_, err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assertForbidden(t, err)
	assert.False(t, deleted)

	_, err = svc.Delete(context.Background(), uuid.New(), owner)
	require.NoError(t, err)
	assert.True(t, deleted)
}
