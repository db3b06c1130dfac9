package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ekincan/iptv-gateway/internal/model"
)

// SeriesRepo manages read access to series and their episodes.
type SeriesRepo struct {
	db *sql.DB
}

// NewSeriesRepo constructs a SeriesRepo with the given DB handle.
func NewSeriesRepo(db *sql.DB) *SeriesRepo {
	return &SeriesRepo{db: db}
}

// List returns series ordered by title, optionally restricted to a category.
func (r *SeriesRepo) List(ctx context.Context, categoryID *int) ([]model.Series, error) {
	q := `SELECT id, category_id, title, description, cover_url, rating FROM series`
	args := []any{}
	if categoryID != nil {
		q += ` WHERE category_id = ?`
		args = append(args, *categoryID)
	}
	q += ` ORDER BY title`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Series, 0)
	for rows.Next() {
		var s model.Series
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Title, &s.Description, &s.CoverURL, &s.Rating); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID returns a single series or ErrSeriesNotFound.
func (r *SeriesRepo) GetByID(ctx context.Context, id int) (*model.Series, error) {
	const q = `SELECT id, category_id, title, description, cover_url, rating FROM series WHERE id = ?`
	var s model.Series
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.CategoryID, &s.Title, &s.Description, &s.CoverURL, &s.Rating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeriesNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// EpisodesBySeries returns every episode of a series ordered by
// (season_number, episode_number).  The projection layer groups them into
// seasons; the ordering here guarantees episode order within each season.
func (r *SeriesRepo) EpisodesBySeries(ctx context.Context, seriesID int) ([]model.Episode, error) {
	const q = `SELECT id, series_id, season_number, episode_number, title,
	                  description, stream_url, duration, release_date
	           FROM episodes
	           WHERE series_id = ?
	           ORDER BY season_number, episode_number`
	rows, err := r.db.QueryContext(ctx, q, seriesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Episode, 0)
	for rows.Next() {
		var e model.Episode
		if err := rows.Scan(&e.ID, &e.SeriesID, &e.SeasonNumber, &e.EpisodeNumber,
			&e.Title, &e.Description, &e.StreamURL, &e.Duration, &e.ReleaseDate); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
