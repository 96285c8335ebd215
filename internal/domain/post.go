package domain

import "time"

// Post is a published content item (blog article). Slug is the public
// identifier and feeds the sitemap.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug" gorm:"uniqueIndex"`
	Category  string    `json:"category"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content" gorm:"type:text"`
	ImageIcon string    `json:"image_icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
