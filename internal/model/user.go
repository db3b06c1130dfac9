package model

import "time"

// User represents an identity account as stored in the `users` table.  These
// accounts authenticate both gateways: bearer tokens on the modern API and
// inline username/password on the legacy player API.  The json tags are
// omitted because these structs are used internally by the repository layer;
// handlers define separate response types with appropriate JSON tags.
//
// Fields:
//
//	ID               – primary key identifier of the user.
//	Email            – unique email address.
//	Username         – unique login name (players cannot type emails easily).
//	PasswordHash     – bcrypt hashed password.
//	Role             – one of the fixed role names (ADMINISTRATOR or USER).
//	TwoFactorEnabled – login answers with a step-up result instead of a token.
//	EmailVerified    – unverified accounts cannot complete a login.
//	CreatedAt        – timestamp of creation.
type User struct {
	ID               uint64    // users.id
	Email            string    // users.email
	Username         string    // users.username
	PasswordHash     string    // users.password_hash
	Role             string    // users.role
	TwoFactorEnabled bool      // users.two_factor_enabled
	EmailVerified    bool      // users.email_verified
	CreatedAt        time.Time // users.created_at
}

// Fixed application roles.  There is deliberately no role engine beyond
// these two values.
const (
	RoleAdministrator = "ADMINISTRATOR"
	RoleUser          = "USER"
)
