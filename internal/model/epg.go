package model

import "time"

// EpgChannel links a live stream into the programme guide.  Exactly one row
// may exist per live stream (channel_id is unique) and the external epg_id is
// globally unique as well.  Deleting the live stream cascades here.
type EpgChannel struct {
	ID          int     // epg_channels.id
	ChannelID   int     // epg_channels.channel_id -> live_streams.id (unique)
	EpgID       string  // epg_channels.epg_id (unique external identifier)
	DisplayName *string // epg_channels.display_name (nullable)
}

// EpgProgramme is a single scheduled programme on an EPG channel.  Times are
// stored in UTC; programmes whose end time has passed are never served.
type EpgProgramme struct {
	ID           int       // epg_programmes.id
	EpgChannelID int       // epg_programmes.epg_channel_id
	Title        *string   // epg_programmes.title (nullable)
	Description  *string   // epg_programmes.description (nullable)
	StartTime    time.Time // epg_programmes.start_time (UTC)
	EndTime      time.Time // epg_programmes.end_time (UTC)
	EpgID        string    // epg_channels.epg_id joined for grouping
}
