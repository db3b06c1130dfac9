package model

// Categories are flat grouping labels for streams, movies and series.  There
// is no parent/child nesting; legacy clients still receive a parent_id field,
// always reported as zero, for protocol compatibility.  The three category
// kinds are ordered independently of each other by (sort_order, name).

// LiveCategory represents a row in the `live_categories` table.
type LiveCategory struct {
	ID        int    // live_categories.id
	Name      string // live_categories.name
	SortOrder int    // live_categories.sort_order
}

// VodCategory represents a row in the `vod_categories` table.
type VodCategory struct {
	ID        int    // vod_categories.id
	Name      string // vod_categories.name
	SortOrder int    // vod_categories.sort_order
}

// SeriesCategory represents a row in the `series_categories` table.
type SeriesCategory struct {
	ID        int    // series_categories.id
	Name      string // series_categories.name
	SortOrder int    // series_categories.sort_order
}
