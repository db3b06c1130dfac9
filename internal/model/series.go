package model

import "time"

// Series represents a TV series as stored in the `series` table.  A series
// owns an ordered collection of episodes; deleting the series cascades to
// them.  The optional category reference follows the usual set-null policy.
type Series struct {
	ID          int      // series.id
	CategoryID  *int     // series.category_id (nullable)
	Title       string   // series.title
	Description *string  // series.description (nullable)
	CoverURL    *string  // series.cover_url (nullable)
	Rating      *float64 // series.rating, 0–10 scale (nullable)
}

// Episode represents a row in the `episodes` table.  Episodes are keyed by
// (season_number, episode_number) within their series; a missing title is
// rendered as "Episode {n}" by the projection layer.
type Episode struct {
	ID            int        // episodes.id
	SeriesID      int        // episodes.series_id
	SeasonNumber  int        // episodes.season_number
	EpisodeNumber int        // episodes.episode_number
	Title         *string    // episodes.title (nullable)
	Description   *string    // episodes.description (nullable)
	StreamURL     string     // episodes.stream_url
	Duration      *int       // episodes.duration in seconds (nullable)
	ReleaseDate   *time.Time // episodes.release_date (nullable)
}
