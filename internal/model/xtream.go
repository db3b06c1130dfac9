package model

import "time"

// Access-control entities for per-player-account entitlements and connection
// tracking.  Users and packages are related many-to-many through the
// user_packages join table; deleting a user cascades its packages and
// connections and nulls its stream logs.

// XtreamUser is a player account as stored in the `xtream_users` table.
// These are distinct from identity users: identity authenticates the request,
// while the xtream account carries subscription metadata.
type XtreamUser struct {
	ID                int        // xtream_users.id
	Username          string     // xtream_users.username (unique)
	Password          string     // xtream_users.password (bcrypt hash)
	FullName          *string    // xtream_users.full_name (nullable)
	Status            bool       // xtream_users.status (active flag)
	MaxConnections    int        // xtream_users.max_connections
	CreatedAt         time.Time  // xtream_users.created_at
	ExpireDate        *time.Time // xtream_users.expire_date (nullable)
	LastIP            *string    // xtream_users.last_ip (nullable)
	AllowedIPs        *string    // xtream_users.allowed_ips (nullable)
	AllowedUserAgents *string    // xtream_users.allowed_user_agents (nullable)
}

// Package is a sellable content bundle in the `packages` table.
type Package struct {
	ID          int       // packages.id
	Name        string    // packages.name
	Description *string   // packages.description (nullable)
	CreatedAt   time.Time // packages.created_at
}

// UserPackage joins xtream users to packages.
type UserPackage struct {
	ID         int       // user_packages.id
	UserID     int       // user_packages.user_id
	PackageID  int       // user_packages.package_id
	AssignedAt time.Time // user_packages.assigned_at
}

// UserConnection records a player session in the `user_connections` table.
type UserConnection struct {
	ID        int        // user_connections.id
	UserID    int        // user_connections.user_id
	IP        *string    // user_connections.ip (nullable)
	UserAgent *string    // user_connections.user_agent (nullable)
	StartedAt time.Time  // user_connections.started_at
	LastCheck *time.Time // user_connections.last_check (nullable)
}

// StreamLog records a playback access in the `stream_logs` table.  StreamType
// is one of "live", "vod" or "series".  UserID is nulled when the owning
// account is deleted so historical logs survive.
type StreamLog struct {
	ID         int        // stream_logs.id
	UserID     *int       // stream_logs.user_id (nullable)
	StreamType string     // stream_logs.stream_type
	StreamID   int        // stream_logs.stream_id
	IP         *string    // stream_logs.ip (nullable)
	StartedAt  time.Time  // stream_logs.started_at
	EndedAt    *time.Time // stream_logs.ended_at (nullable)
}
