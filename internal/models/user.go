package models

import "time"

// User is an account that can publish and engage with posts.
//
// AvatarRef is either a full external URL or an object-storage key; the
// storage layer resolves keys to signed URLs at read time.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:32;not null;uniqueIndex" json:"username"`
	DisplayName  string    `gorm:"size:64" json:"display_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	PasswordHash string    `gorm:"not null" json:"-"`
	AvatarRef    string    `gorm:"size:512" json:"avatar_ref,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Name returns the user's preferred display label.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
