package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	t.Parallel()

	t.Run("middle page", func(t *testing.T) {
		t.Parallel()
		p := NewPage([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 25, 2, 10)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, 11, p.PagingCounter)
		assert.True(t, p.HasPrevPage)
		assert.True(t, p.HasNextPage)
		require.NotNil(t, p.PrevPage)
		require.NotNil(t, p.NextPage)
		assert.Equal(t, 1, *p.PrevPage)
		assert.Equal(t, 3, *p.NextPage)
	})

	t.Run("last page", func(t *testing.T) {
		t.Parallel()
		p := NewPage([]int{1, 2, 3, 4, 5}, 25, 3, 10)
		assert.False(t, p.HasNextPage)
		assert.Nil(t, p.NextPage)
		assert.Len(t, p.Docs, 5)
	})

	t.Run("empty result", func(t *testing.T) {
		t.Parallel()
		p := NewPage[string](nil, 0, 1, 10)
		assert.NotNil(t, p.Docs)
		assert.Equal(t, 1, p.TotalPages)
		assert.False(t, p.HasPrevPage)
		assert.False(t, p.HasNextPage)
	})
}

func TestNewLike_SetsExactlyOneSubject(t *testing.T) {
	t.Parallel()

	l := NewLike(LikeSubjectComment, uuid.New(), uuid.New())
	assert.Nil(t, l.VideoID)
	assert.Nil(t, l.TweetID)
	require.NotNil(t, l.CommentID)
	assert.Equal(t, "comment_id", LikeSubjectComment.Column())
}
