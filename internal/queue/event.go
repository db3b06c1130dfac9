// Package queue defines message payloads exchanged over the message broker.
package queue

// PlayerConnectedEvent is published whenever a legacy player completes the
// credential handshake.  Downstream consumers (session accounting, abuse
// detection) get enough context to act without querying the primary database.
type PlayerConnectedEvent struct {
	UserID      uint64 `json:"user_id"`
	Username    string `json:"username"`
	IPAddress   string `json:"ip_address"`
	UserAgent   string `json:"user_agent"`
	ConnectedAt string `json:"connected_at"`
}
