package models

import "time"

type SiteSettings struct {
	ID              string    `json:"id"`
	SiteName        string    `json:"site_name"`
	SiteDescription *string   `json:"site_description,omitempty"`
	FaviconURL      *string   `json:"favicon_url,omitempty"`
	MetaTitle       *string   `json:"meta_title,omitempty"`
	MetaDescription *string   `json:"meta_description,omitempty"`
	MetaKeywords    []string  `json:"meta_keywords,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type LandingSection struct {
	ID        string    `json:"id"`
	Section   string    `json:"section"`
	Title     *string   `json:"title,omitempty"`
	Subtitle  *string   `json:"subtitle,omitempty"`
	Content   *string   `json:"content,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
