package models

import "time"

// Like is a user-post like membership record. The composite unique index is
// the source of truth for toggle idempotency: concurrent toggle-on requests
// race on the insert, and the loser's ON CONFLICT DO NOTHING turns into a
// no-op instead of a double count.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_likes_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite is a user-post favorite membership record, with the same
// uniqueness contract as Like.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_favorites_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_favorites_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
