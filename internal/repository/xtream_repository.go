package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ekincan/iptv-gateway/internal/model"
)

// XtreamRepo manages the access-control side of the catalog: player accounts,
// their packages and connection tracking.  This is the only repository with a
// write path; the catalog proper stays read-only from both gateways.
type XtreamRepo struct {
	db *sql.DB
}

// NewXtreamRepo constructs an XtreamRepo with the given DB handle.
func NewXtreamRepo(db *sql.DB) *XtreamRepo {
	return &XtreamRepo{db: db}
}

// GetByUsername loads a player account or returns ErrXtreamUserNotFound.
func (r *XtreamRepo) GetByUsername(ctx context.Context, username string) (*model.XtreamUser, error) {
	const q = `SELECT id, username, password, full_name, status, max_connections,
	                  created_at, expire_date, last_ip, allowed_ips, allowed_user_agents
	           FROM xtream_users
	           WHERE username = ?`
	var u model.XtreamUser
	err := r.db.QueryRowContext(ctx, q, username).Scan(&u.ID, &u.Username, &u.Password,
		&u.FullName, &u.Status, &u.MaxConnections, &u.CreatedAt, &u.ExpireDate,
		&u.LastIP, &u.AllowedIPs, &u.AllowedUserAgents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrXtreamUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Packages returns the packages assigned to a player account, newest first.
func (r *XtreamRepo) Packages(ctx context.Context, userID int) ([]model.Package, error) {
	const q = `SELECT p.id, p.name, p.description, p.created_at
	           FROM packages p
	           JOIN user_packages up ON up.package_id = p.id
	           WHERE up.user_id = ?
	           ORDER BY up.assigned_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Package, 0)
	for rows.Next() {
		var p model.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// RecordConnection inserts a user_connections row for a successful player
// handshake and refreshes the account's last known IP.  Best effort: the
// caller ignores failures so connection bookkeeping can never break a login.
func (r *XtreamRepo) RecordConnection(ctx context.Context, userID int, ip, userAgent string) error {
	const q = `INSERT INTO user_connections (user_id, ip, user_agent) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, userID, nullable(ip), nullable(userAgent)); err != nil {
		return err
	}
	const upd = `UPDATE xtream_users SET last_ip = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, upd, nullable(ip), userID)
	return err
}

// nullable maps "" to SQL NULL so empty request metadata is not stored as an
// empty string.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
