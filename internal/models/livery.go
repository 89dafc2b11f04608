package models

// LiveryKeyValue is one part/ID pair of a livery configuration. Values are
// stored as strings because in-game IDs overflow float64 JSON numbers.
type LiveryKeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Livery is one configuration variant belonging to a Post. A post with more
// than one livery is a "pack". Liveries are owned by their post and replaced
// wholesale on update.
type Livery struct {
	ID                    uint             `gorm:"primaryKey" json:"id"`
	PostID                uint             `gorm:"not null;index" json:"post_id"`
	Title                 string           `gorm:"size:50" json:"title,omitempty"`
	KeyValues             []LiveryKeyValue `gorm:"serializer:json" json:"key_values"`
	AdvancedCustomization string           `gorm:"size:500" json:"advanced_customization,omitempty"`
}
