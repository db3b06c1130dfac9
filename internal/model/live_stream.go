package model

// LiveStream represents a live TV channel as stored in the `live_streams`
// table.  A stream belongs to zero or one LiveCategory; deleting the category
// nulls the reference so content outlives category deletion.  Each stream has
// at most one EpgChannel linking it into the programme guide.
//
// Fields:
//
//	ID         – primary key identifier.
//	CategoryID – owning live category (nil when uncategorized).
//	StreamName – channel display name.
//	StreamURL  – upstream media URL; metadata only, never proxied.
//	Logo       – channel logo path or URL (nullable).
//	IsActive   – inactive streams are hidden from every gateway.
//	SortOrder  – position within the category listing.
//	EpgID      – external EPG identifier joined from epg_channels ("" when the
//	             stream has no guide linkage; populated by list queries only).
type LiveStream struct {
	ID         int     // live_streams.id
	CategoryID *int    // live_streams.category_id (nullable)
	StreamName string  // live_streams.stream_name
	StreamURL  string  // live_streams.stream_url
	Logo       *string // live_streams.logo (nullable)
	IsActive   bool    // live_streams.is_active
	SortOrder  int     // live_streams.sort_order
	EpgID      string  // epg_channels.epg_id via LEFT JOIN
}
