package models

import "time"

// Plan defines the model for the 'plans' table.
type Plan struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	DownloadMbps int       `json:"download_mbps" db:"download_mbps"`
	UploadMbps   int       `json:"upload_mbps" db:"upload_mbps"`
	PriceCents   int64     `json:"price_cents" db:"price_cents"`
	ValidityDays int       `json:"validity_days" db:"validity_days"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
