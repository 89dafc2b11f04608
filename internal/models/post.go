// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a published livery pack: one or more livery
// configurations for a set of vehicles, with images and metadata.
//
// LikeCount, FavoriteCount, and LiveryCount are denormalized for fast
// list reads. The engagement counters are eventually consistent caches
// of the likes/favorites membership tables; they are recomputed from a
// COUNT inside every toggle transaction and can be bulk-reconciled via
// cmd/reconcile. LiveryCount always equals the number of Livery rows
// referencing the post.
type Post struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:80;not null" json:"title"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Vehicles is the current list shape. Vehicle is the legacy
	// single-value column from before packs supported multiple vehicles;
	// it is still readable but never written. Use VehicleList and
	// VehicleTypeList instead of touching either column directly.
	Vehicles     []string `gorm:"serializer:json" json:"vehicles"`
	Vehicle      string   `json:"legacy_vehicle,omitempty"`
	VehicleTypes []string `gorm:"serializer:json" json:"vehicle_types"`
	VehicleType  string   `json:"legacy_vehicle_type,omitempty"`

	ImageKeys []string `gorm:"serializer:json" json:"image_keys"`

	AuthorID uint `gorm:"not null;index" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID" json:"author"`

	Liveries []Livery `gorm:"foreignKey:PostID" json:"liveries,omitempty"`

	LikeCount     int `gorm:"not null;default:0;index" json:"like_count"`
	FavoriteCount int `gorm:"not null;default:0" json:"favorite_count"`
	LiveryCount   int `gorm:"not null;default:0" json:"livery_count"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VehicleList returns the post's vehicles, falling back to the legacy
// single-vehicle column for rows written before the list migration.
func (p *Post) VehicleList() []string {
	if len(p.Vehicles) > 0 {
		return p.Vehicles
	}
	if p.Vehicle != "" {
		return []string{p.Vehicle}
	}
	return nil
}

// VehicleTypeList returns the post's derived type labels with the same
// legacy fallback as VehicleList.
func (p *Post) VehicleTypeList() []string {
	if len(p.VehicleTypes) > 0 {
		return p.VehicleTypes
	}
	if p.VehicleType != "" {
		return []string{p.VehicleType}
	}
	return nil
}

// Popularity is the ranking key for the "popular" sort.
func (p *Post) Popularity() int {
	return p.LikeCount + p.FavoriteCount
}
