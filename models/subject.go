package models

import "time"

// Subject is one video lesson in the course catalog. VideoKey is the Drive
// file ID the lesson video lives under; ThumbnailURL points at the image CDN.
type Subject struct {
	ID           string    `bson:"id" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	VideoKey     string    `bson:"videoKey" json:"videoKey"`
	VideoURL     string    `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	ThumbnailURL string    `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	Duration     string    `bson:"duration,omitempty" json:"duration,omitempty"`
	IsFree       bool      `bson:"isFree" json:"isFree"`
	KeyPoints    []string  `bson:"keyPoints,omitempty" json:"keyPoints"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
