package repository

import (
	"context"
	"testing"
	"time"

	"aerohub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func testPost(authorID uint, title string, createdAt time.Time) *models.Post {
	return &models.Post{
		Title:        title,
		Vehicles:     []string{"Boeing 747"},
		VehicleTypes: []string{"Jet"},
		ImageKeys:    []string{"img/" + title + ".webp"},
		AuthorID:     authorID,
		Liveries: []models.Livery{
			{Title: "Default", KeyValues: []models.LiveryKeyValue{{Key: "FUSELAGE", Value: "12345"}}},
		},
		CreatedAt: createdAt,
	}
}

func TestPostRepositoryCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "pilot")

	post := testPost(author.ID, "Retro 747", time.Now())
	post.Liveries = append(post.Liveries, models.Livery{Title: "Alt", KeyValues: []models.LiveryKeyValue{{Key: "TAIL", Value: "99"}}})

	require.NoError(t, repo.Create(ctx, post))
	assert.NotZero(t, post.ID)
	assert.Equal(t, 2, post.LiveryCount)

	var liveries []models.Livery
	require.NoError(t, db.Where("post_id = ?", post.ID).Find(&liveries).Error)
	assert.Len(t, liveries, 2)
}

func TestPostRepositoryGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "pilot")

	post := testPost(author.ID, "Retro 747", time.Now())
	require.NoError(t, repo.Create(ctx, post))

	t.Run("loads author and liveries", func(t *testing.T) {
		got, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Retro 747", got.Title)
		assert.Equal(t, "pilot", got.Author.Username)
		require.Len(t, got.Liveries, 1)
		assert.Equal(t, "FUSELAGE", got.Liveries[0].KeyValues[0].Key)
	})

	t.Run("missing post returns not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.True(t, models.IsNotFound(err))
	})
}

func TestPostRepositoryUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "pilot")

	post := testPost(author.ID, "Retro 747", time.Now())
	require.NoError(t, repo.Create(ctx, post))
	require.NoError(t, db.Model(post).Update("like_count", 5).Error)

	post.Title = "Retro 747 v2"
	post.Liveries = []models.Livery{
		{Title: "New A", KeyValues: []models.LiveryKeyValue{{Key: "WING", Value: "1"}}},
		{Title: "New B", KeyValues: []models.LiveryKeyValue{{Key: "WING", Value: "2"}}},
		{Title: "New C", KeyValues: []models.LiveryKeyValue{{Key: "WING", Value: "3"}}},
	}
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Retro 747 v2", got.Title)
	assert.Equal(t, 3, got.LiveryCount)
	assert.Len(t, got.Liveries, 3, "old liveries are replaced wholesale")
	assert.Equal(t, 5, got.LikeCount, "counters survive content edits")
}

func TestPostRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "pilot")

	post := testPost(author.ID, "Retro 747", time.Now())
	require.NoError(t, repo.Create(ctx, post))
	require.NoError(t, db.Create(&models.Like{UserID: author.ID, PostID: post.ID}).Error)

	keys, err := repo.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"img/Retro 747.webp"}, keys)

	var likeCount, liveryCount int64
	db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount)
	db.Model(&models.Livery{}).Where("post_id = ?", post.ID).Count(&liveryCount)
	assert.Zero(t, likeCount)
	assert.Zero(t, liveryCount)

	_, err = repo.Delete(ctx, post.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestPostRepositoryListCandidates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		p := testPost(alice.ID, "alice-post", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, repo.Create(ctx, p))
	}
	bobPost := testPost(bob.ID, "bob-post", base.Add(10*time.Hour))
	bobPost.LikeCount = 0
	require.NoError(t, repo.Create(ctx, bobPost))
	require.NoError(t, db.Create(&models.Favorite{UserID: alice.ID, PostID: bobPost.ID}).Error)

	t.Run("global latest is newest first and capped", func(t *testing.T) {
		posts, err := repo.ListCandidates(ctx, CandidateScope{OrderBy: OrderLatest, Cap: 2})
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "bob-post", posts[0].Title)
		assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))
	})

	t.Run("most-liked orders by counter", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Post{}).Where("title = ?", "bob-post").Update("like_count", 7).Error)
		posts, err := repo.ListCandidates(ctx, CandidateScope{OrderBy: OrderMostLiked, Cap: 10})
		require.NoError(t, err)
		require.NotEmpty(t, posts)
		assert.Equal(t, "bob-post", posts[0].Title)
	})

	t.Run("author scope", func(t *testing.T) {
		posts, err := repo.ListCandidates(ctx, CandidateScope{AuthorID: alice.ID})
		require.NoError(t, err)
		assert.Len(t, posts, 3)
		for _, p := range posts {
			assert.Equal(t, alice.ID, p.AuthorID)
		}
	})

	t.Run("favorites scope joins membership", func(t *testing.T) {
		posts, err := repo.ListCandidates(ctx, CandidateScope{FavoritesUserID: alice.ID})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "bob-post", posts[0].Title)
	})

	t.Run("candidates carry their author", func(t *testing.T) {
		posts, err := repo.ListCandidates(ctx, CandidateScope{FavoritesUserID: alice.ID})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "bob", posts[0].Author.Username)
	})
}
