package repository

import (
	"context"
	"testing"
	"time"

	"aerohub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "pilot")
	post := testPost(user.ID, "Retro 747", time.Now())
	require.NoError(t, NewPostRepository(db).Create(ctx, post))

	t.Run("first toggle likes", func(t *testing.T) {
		active, count, err := repo.ToggleLike(ctx, user.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, active)
		assert.Equal(t, 1, count)
	})

	t.Run("second toggle unlikes", func(t *testing.T) {
		active, count, err := repo.ToggleLike(ctx, user.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, active)
		assert.Equal(t, 0, count)
	})

	t.Run("counter is recomputed, not incremented", func(t *testing.T) {
		// Simulate drift: the stored counter disagrees with the
		// membership table. A toggle must land on the true count.
		other := createTestUser(t, db, "other")
		require.NoError(t, db.Create(&models.Like{UserID: other.ID, PostID: post.ID}).Error)
		require.NoError(t, db.Model(post).Update("like_count", 40).Error)

		active, count, err := repo.ToggleLike(ctx, user.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, active)
		assert.Equal(t, 2, count, "count comes from COUNT(*), not 40+1")
	})
}

func TestToggleFavorite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "pilot")
	post := testPost(user.ID, "Retro 747", time.Now())
	require.NoError(t, NewPostRepository(db).Create(ctx, post))

	active, count, err := repo.ToggleFavorite(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, 1, count)

	favorited, err := repo.IsFavorited(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	active, count, err = repo.ToggleFavorite(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, 0, count)
}

func TestIsLiked(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "pilot")
	post := testPost(user.ID, "Retro 747", time.Now())
	require.NoError(t, NewPostRepository(db).Create(ctx, post))

	liked, err := repo.IsLiked(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, _, err = repo.ToggleLike(ctx, user.ID, post.ID)
	require.NoError(t, err)

	liked, err = repo.IsLiked(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestRecountAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEngagementRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "pilot")

	good := testPost(user.ID, "good", time.Now())
	drifted := testPost(user.ID, "drifted", time.Now())
	require.NoError(t, NewPostRepository(db).Create(ctx, good))
	require.NoError(t, NewPostRepository(db).Create(ctx, drifted))

	require.NoError(t, db.Create(&models.Like{UserID: user.ID, PostID: drifted.ID}).Error)
	require.NoError(t, db.Model(drifted).Update("like_count", 99).Error)

	changed, err := repo.RecountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, changed, "only the drifted row is touched")

	var fixed models.Post
	require.NoError(t, db.First(&fixed, drifted.ID).Error)
	assert.Equal(t, 1, fixed.LikeCount)
}
