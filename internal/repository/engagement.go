package repository

import (
	"context"

	"aerohub/internal/cache"
	"aerohub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository defines persistence operations for likes and
// favorites.
type EngagementRepository interface {
	ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error)
	ToggleFavorite(ctx context.Context, userID, postID uint) (bool, int, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	IsFavorited(ctx context.Context, userID, postID uint) (bool, error)
	RecountAll(ctx context.Context) (int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

var conflictOnMembership = clause.OnConflict{
	Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
	DoNothing: true,
}

// ToggleLike flips the like membership for (userID, postID) and returns the
// resulting state and counter. Concurrent toggles race on the membership
// row's unique index: the insert uses ON CONFLICT DO NOTHING, a zero
// RowsAffected means the row already existed and this toggle removes it.
// The counter is recomputed from COUNT(*) inside the same transaction
// rather than incremented, so a lost race can never skew it.
func (r *engagementRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	var (
		active bool
		count  int
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(conflictOnMembership).Create(&models.Like{UserID: userID, PostID: postID})
		if res.Error != nil {
			return res.Error
		}
		active = res.RowsAffected > 0
		if !active {
			if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&models.Like{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Exec(
			`UPDATE posts SET like_count = (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) WHERE posts.id = ?`,
			postID,
		).Error; err != nil {
			return err
		}

		var post models.Post
		if err := tx.Select("like_count").First(&post, postID).Error; err != nil {
			return err
		}
		count = post.LikeCount
		return nil
	})
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return active, count, nil
}

// ToggleFavorite mirrors ToggleLike for the favorites membership table.
func (r *engagementRepository) ToggleFavorite(ctx context.Context, userID, postID uint) (bool, int, error) {
	var (
		active bool
		count  int
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(conflictOnMembership).Create(&models.Favorite{UserID: userID, PostID: postID})
		if res.Error != nil {
			return res.Error
		}
		active = res.RowsAffected > 0
		if !active {
			if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&models.Favorite{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Exec(
			`UPDATE posts SET favorite_count = (SELECT COUNT(*) FROM favorites WHERE favorites.post_id = posts.id) WHERE posts.id = ?`,
			postID,
		).Error; err != nil {
			return err
		}

		var post models.Post
		if err := tx.Select("favorite_count").First(&post, postID).Error; err != nil {
			return err
		}
		count = post.FavoriteCount
		return nil
	})
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return active, count, nil
}

func (r *engagementRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) IsFavorited(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// RecountAll recomputes every post's denormalized counters from the
// membership tables and returns how many rows changed. Used by the
// reconcile command.
func (r *engagementRepository) RecountAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE posts SET
			like_count = (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id),
			favorite_count = (SELECT COUNT(*) FROM favorites WHERE favorites.post_id = posts.id),
			livery_count = (SELECT COUNT(*) FROM liveries WHERE liveries.post_id = posts.id)
		WHERE like_count <> (SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)
		   OR favorite_count <> (SELECT COUNT(*) FROM favorites WHERE favorites.post_id = posts.id)
		   OR livery_count <> (SELECT COUNT(*) FROM liveries WHERE liveries.post_id = posts.id)`)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	cache.InvalidateCandidates(ctx)
	return res.RowsAffected, nil
}
