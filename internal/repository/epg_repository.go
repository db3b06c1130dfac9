package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ekincan/iptv-gateway/internal/model"
)

// EpgRepo manages read access to the programme guide.  Every query excludes
// programmes that have already ended: the guide only ever answers "what is on
// now or later".
type EpgRepo struct {
	db *sql.DB
}

// NewEpgRepo constructs an EpgRepo with the given DB handle.
func NewEpgRepo(db *sql.DB) *EpgRepo {
	return &EpgRepo{db: db}
}

// ChannelByStreamID resolves the EPG channel owned by a live stream.  Returns
// ErrEpgChannelNotFound when the stream has no guide linkage, which callers
// render as an empty guide rather than an error.
func (r *EpgRepo) ChannelByStreamID(ctx context.Context, streamID int) (*model.EpgChannel, error) {
	const q = `SELECT id, channel_id, epg_id, display_name FROM epg_channels WHERE channel_id = ?`
	var c model.EpgChannel
	err := r.db.QueryRowContext(ctx, q, streamID).Scan(&c.ID, &c.ChannelID, &c.EpgID, &c.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEpgChannelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ProgrammesForChannel returns the future or ongoing programmes of one EPG
// channel ordered by start_time.  A limit <= 0 means no limit.
func (r *EpgRepo) ProgrammesForChannel(ctx context.Context, epgChannelID int, now time.Time, limit int) ([]model.EpgProgramme, error) {
	q := `SELECT ep.id, ep.epg_channel_id, ep.title, ep.description,
	             ep.start_time, ep.end_time, ec.epg_id
	      FROM epg_programmes ep
	      JOIN epg_channels ec ON ec.id = ep.epg_channel_id
	      WHERE ep.epg_channel_id = ? AND ep.end_time >= ?
	      ORDER BY ep.start_time`
	args := []any{epgChannelID, now}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.queryProgrammes(ctx, q, args...)
}

// ProgrammesUpcoming returns every future or ongoing programme across all
// channels ordered by start_time, optionally restricted to channels whose
// owning live stream belongs to the given category.
func (r *EpgRepo) ProgrammesUpcoming(ctx context.Context, categoryID *int, now time.Time) ([]model.EpgProgramme, error) {
	q := `SELECT ep.id, ep.epg_channel_id, ep.title, ep.description,
	             ep.start_time, ep.end_time, ec.epg_id
	      FROM epg_programmes ep
	      JOIN epg_channels ec ON ec.id = ep.epg_channel_id
	      JOIN live_streams ls ON ls.id = ec.channel_id
	      WHERE ep.end_time >= ?`
	args := []any{now}
	if categoryID != nil {
		q += ` AND ls.category_id = ?`
		args = append(args, *categoryID)
	}
	q += ` ORDER BY ep.start_time`
	return r.queryProgrammes(ctx, q, args...)
}

func (r *EpgRepo) queryProgrammes(ctx context.Context, q string, args ...any) ([]model.EpgProgramme, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.EpgProgramme, 0)
	for rows.Next() {
		var p model.EpgProgramme
		if err := rows.Scan(&p.ID, &p.EpgChannelID, &p.Title, &p.Description,
			&p.StartTime, &p.EndTime, &p.EpgID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
