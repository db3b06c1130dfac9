package model

import "time"

// VodMovie represents an on-demand movie as stored in the `vod_movies` table.
// Ratings are kept on a 0–10 scale; the gateways derive the 0–5 value from it
// at projection time.  A movie belongs to zero or one VodCategory with the
// same set-null-on-delete policy as live streams.
type VodMovie struct {
	ID          int        // vod_movies.id
	CategoryID  *int       // vod_movies.category_id (nullable)
	Title       string     // vod_movies.title
	Description *string    // vod_movies.description (nullable)
	CoverURL    *string    // vod_movies.cover_url (nullable)
	StreamURL   string     // vod_movies.stream_url
	Duration    *int       // vod_movies.duration in seconds (nullable)
	ReleaseDate *time.Time // vod_movies.release_date (nullable)
	Rating      *float64   // vod_movies.rating, 0–10 scale (nullable)
	IsActive    bool       // vod_movies.is_active
}
