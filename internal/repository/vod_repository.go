package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ekincan/iptv-gateway/internal/model"
)

// VodRepo manages read access to on-demand movies.
type VodRepo struct {
	db *sql.DB
}

// NewVodRepo constructs a VodRepo with the given DB handle.
func NewVodRepo(db *sql.DB) *VodRepo {
	return &VodRepo{db: db}
}

// ListActive returns active movies ordered by title, optionally restricted to
// a single category.
func (r *VodRepo) ListActive(ctx context.Context, categoryID *int) ([]model.VodMovie, error) {
	q := `SELECT id, category_id, title, description, cover_url, stream_url,
	             duration, release_date, rating, is_active
	      FROM vod_movies
	      WHERE is_active = 1`
	args := []any{}
	if categoryID != nil {
		q += ` AND category_id = ?`
		args = append(args, *categoryID)
	}
	q += ` ORDER BY title`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.VodMovie, 0)
	for rows.Next() {
		var m model.VodMovie
		if err := scanVodMovie(rows.Scan, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetActiveByID returns a single active movie or ErrVodNotFound.  Inactive
// movies are treated as absent: they must not leak through detail lookups.
func (r *VodRepo) GetActiveByID(ctx context.Context, id int) (*model.VodMovie, error) {
	const q = `SELECT id, category_id, title, description, cover_url, stream_url,
	                  duration, release_date, rating, is_active
	           FROM vod_movies
	           WHERE id = ? AND is_active = 1`
	var m model.VodMovie
	err := scanVodMovie(r.db.QueryRowContext(ctx, q, id).Scan, &m)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// scanVodMovie reads one row regardless of whether it came from Query or
// QueryRow; both Scan funcs share a signature.
func scanVodMovie(scan func(dest ...any) error, m *model.VodMovie) error {
	return scan(&m.ID, &m.CategoryID, &m.Title, &m.Description, &m.CoverURL,
		&m.StreamURL, &m.Duration, &m.ReleaseDate, &m.Rating, &m.IsActive)
}
