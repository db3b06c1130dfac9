package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ekincan/iptv-gateway/internal/model"
	"github.com/ekincan/iptv-gateway/internal/utils"
	"github.com/go-sql-driver/mysql"
)

// UserRepo manages persistence for identity users.  It is the backing store
// of the identity service; gateways never touch it directly.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user with a bcrypt-hashed password and returns the
// generated id.  A duplicate email or username maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, username, password, role string, bcryptCost int) (uint64, error) {
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return 0, err
	}
	const q = `INSERT INTO users (email, username, password_hash, role) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, strings.ToLower(email), username, hash, role)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 { // duplicate key
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByLogin looks a user up by email or username.  The legacy player
// protocol only carries a username, while the modern login form accepts
// either, so one lookup serves both.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const q = `SELECT id, email, username, password_hash, role,
	                  two_factor_enabled, email_verified, created_at
	           FROM users
	           WHERE email = ? OR username = ?`
	return r.get(ctx, q, strings.ToLower(login), login)
}

// GetByID loads a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, email, username, password_hash, role,
	                  two_factor_enabled, email_verified, created_at
	           FROM users
	           WHERE id = ?`
	return r.get(ctx, q, id)
}

func (r *UserRepo) get(ctx context.Context, q string, args ...any) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&u.ID, &u.Email, &u.Username,
		&u.PasswordHash, &u.Role, &u.TwoFactorEnabled, &u.EmailVerified, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
