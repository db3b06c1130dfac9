// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting SQL driver errors. Not-found conditions are expected for a
// loosely-typed legacy protocol and are never logged as failures.
package repository

import "errors"

// ErrVodNotFound indicates that no active movie matched the lookup.
var ErrVodNotFound = errors.New("vod not found")

// ErrSeriesNotFound indicates that a series was not located in the DB.
var ErrSeriesNotFound = errors.New("series not found")

// ErrEpgChannelNotFound indicates that a live stream has no EPG linkage.
// Callers translate this into an empty guide, not an error response.
var ErrEpgChannelNotFound = errors.New("epg channel not found")

// ErrUserNotFound indicates that no identity user matched the login.
var ErrUserNotFound = errors.New("user not found")

// ErrXtreamUserNotFound indicates that no player account matched the username.
var ErrXtreamUserNotFound = errors.New("xtream user not found")

// ErrEmailExists is returned when registration collides with an existing
// email or username.
var ErrEmailExists = errors.New("email already exists")
