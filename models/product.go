package models

import "time"

type ProductPackage struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Undangan string `json:"undangan"`
	Foto     string `json:"foto"`
	Video    string `json:"video"`
	Share    string `json:"share"`
}

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Jenis       *string          `json:"jenis,omitempty"`
	Design      *string          `json:"design,omitempty"`
	Packages    []ProductPackage `json:"packages"`
	ImageURL    *string          `json:"image_url,omitempty"`
	DemoURL     *string          `json:"demo_url,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
