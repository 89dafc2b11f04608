package repository

import (
	"context"
	"errors"

	"aerohub/internal/cache"
	"aerohub/internal/models"

	"gorm.io/gorm"
)

// Candidate sort orders pushed down to the database. The empty order means
// the caller sorts in memory after filtering.
const (
	OrderLatest    = "latest"
	OrderMostLiked = "most-liked"
	OrderNone      = ""
)

// CandidateScope describes which candidate set to fetch for feed assembly.
// The zero scope is the global feed.
type CandidateScope struct {
	// AuthorID restricts candidates to one author's posts.
	AuthorID uint
	// FavoritesUserID restricts candidates to posts this user favorited.
	FavoritesUserID uint
	// OrderBy is pushed to the database when the candidate set may exceed
	// Cap, so the cap keeps the best rows instead of arbitrary ones.
	OrderBy string
	// Cap bounds the fetch. Zero means no cap.
	Cap int
}

// Global reports whether the scope covers the whole posts table.
func (s CandidateScope) Global() bool {
	return s.AuthorID == 0 && s.FavoritesUserID == 0
}

// PostRepository defines persistence operations for livery posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) ([]string, error)
	ListCandidates(ctx context.Context, scope CandidateScope) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post and its liveries in one transaction. LiveryCount
// is kept in sync with the livery rows.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	post.LiveryCount = len(post.Liveries)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(post).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCandidates(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Author").
			Preload("Liveries").
			First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update saves the post and replaces its liveries wholesale. Liveries carry
// no identity across edits, so delete-and-reinsert is simpler than diffing.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.LiveryCount = len(post.Liveries)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Livery{}).Error; err != nil {
			return err
		}
		for i := range post.Liveries {
			post.Liveries[i].ID = 0
			post.Liveries[i].PostID = post.ID
		}
		return tx.Omit("like_count", "favorite_count").Save(post).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes the post with its liveries and engagement rows, returning
// the object-storage keys of its images so the caller can clean those up.
func (r *postRepository) Delete(ctx context.Context, id uint) ([]string, error) {
	var imageKeys []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return err
		}
		imageKeys = post.ImageKeys

		if err := tx.Where("post_id = ?", id).Delete(&models.Livery{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		if models.IsNotFound(err) {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return imageKeys, nil
}

// ListCandidates fetches the pre-filter candidate set for a feed query.
// Global sets are cached briefly; scoped sets are cheap enough to query
// directly.
func (r *postRepository) ListCandidates(ctx context.Context, scope CandidateScope) ([]models.Post, error) {
	if scope.Global() {
		var posts []models.Post
		key := cache.CandidateKey(scope.OrderBy)
		err := cache.Aside(ctx, key, &posts, cache.CandidateTTL, func() error {
			var fetchErr error
			posts, fetchErr = r.fetchCandidates(ctx, scope)
			return fetchErr
		})
		return posts, err
	}
	return r.fetchCandidates(ctx, scope)
}

func (r *postRepository) fetchCandidates(ctx context.Context, scope CandidateScope) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Preload("Author")

	if scope.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", scope.AuthorID)
	}
	if scope.FavoritesUserID != 0 {
		q = q.Joins("JOIN favorites ON favorites.post_id = posts.id").
			Where("favorites.user_id = ?", scope.FavoritesUserID)
	}

	switch scope.OrderBy {
	case OrderLatest:
		q = q.Order("posts.created_at DESC, posts.id DESC")
	case OrderMostLiked:
		q = q.Order("posts.like_count DESC, posts.created_at DESC, posts.id DESC")
	}

	if scope.Cap > 0 {
		q = q.Limit(scope.Cap)
	}

	var posts []models.Post
	if err := q.Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
