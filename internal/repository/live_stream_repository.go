package repository

import (
	"context"
	"database/sql"

	"github.com/ekincan/iptv-gateway/internal/model"
)

// LiveStreamRepo manages read access to live streams.  Only active streams
// are ever surfaced; the EPG identifier is joined in so the projection layer
// does not need a second round trip per stream.
type LiveStreamRepo struct {
	db *sql.DB
}

// NewLiveStreamRepo constructs a LiveStreamRepo with the given DB handle.
func NewLiveStreamRepo(db *sql.DB) *LiveStreamRepo {
	return &LiveStreamRepo{db: db}
}

// ListActive returns active live streams ordered by (sort_order, stream_name),
// optionally restricted to a single category.  A nil categoryID means no
// filter; a non-matching id naturally yields an empty slice.
func (r *LiveStreamRepo) ListActive(ctx context.Context, categoryID *int) ([]model.LiveStream, error) {
	q := `SELECT ls.id, ls.category_id, ls.stream_name, ls.stream_url, ls.logo,
	             ls.is_active, ls.sort_order, COALESCE(ec.epg_id, '')
	      FROM live_streams ls
	      LEFT JOIN epg_channels ec ON ec.channel_id = ls.id
	      WHERE ls.is_active = 1`
	args := []any{}
	if categoryID != nil {
		q += ` AND ls.category_id = ?`
		args = append(args, *categoryID)
	}
	q += ` ORDER BY ls.sort_order, ls.stream_name`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.LiveStream, 0)
	for rows.Next() {
		var s model.LiveStream
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.StreamName, &s.StreamURL,
			&s.Logo, &s.IsActive, &s.SortOrder, &s.EpgID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
