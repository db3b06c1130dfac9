package handler

import "github.com/ekincan/iptv-gateway/internal/streaming"

// Wire structs of the legacy player protocol.  The field set and the
// snake_case names are fixed by what shipped players parse; releaseDate's
// odd casing is part of that contract.  The gateway re-marshals the neutral
// projection DTOs into these at the boundary.

type playerUserInfo struct {
	Username             string   `json:"username"`
	Password             string   `json:"password"`
	Message              string   `json:"message"`
	Auth                 int      `json:"auth"`
	Status               string   `json:"status"`
	ExpDate              string   `json:"exp_date"`
	IsTrial              string   `json:"is_trial"`
	ActiveCons           string   `json:"active_cons"`
	CreatedAt            string   `json:"created_at"`
	MaxConnections       string   `json:"max_connections"`
	AllowedOutputFormats []string `json:"allowed_output_formats"`
	ServerURL            string   `json:"server_url"`
	Port                 string   `json:"port"`
}

type playerCategory struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	ParentID     int    `json:"parent_id"`
}

type playerStream struct {
	Num               int    `json:"num"`
	Name              string `json:"name"`
	StreamType        string `json:"stream_type"`
	StreamID          int    `json:"stream_id"`
	StreamIcon        string `json:"stream_icon"`
	EpgChannelID      string `json:"epg_channel_id"`
	Added             string `json:"added"`
	CategoryID        string `json:"category_id"`
	CustomSid         string `json:"custom_sid"`
	TvArchive         int    `json:"tv_archive"`
	DirectSource      string `json:"direct_source"`
	TvArchiveDuration int    `json:"tv_archive_duration"`
}

type playerVodStream struct {
	Num                int     `json:"num"`
	Name               string  `json:"name"`
	StreamType         string  `json:"stream_type"`
	StreamID           int     `json:"stream_id"`
	StreamIcon         string  `json:"stream_icon"`
	Rating             string  `json:"rating"`
	Rating5Based       float64 `json:"rating_5based"`
	Added              string  `json:"added"`
	CategoryID         string  `json:"category_id"`
	ContainerExtension string  `json:"container_extension"`
	CustomSid          string  `json:"custom_sid"`
	DirectSource       string  `json:"direct_source"`
}

type playerVodInfo struct {
	Info playerVodInfoDetail `json:"info"`
}

type playerVodInfoDetail struct {
	Name               string  `json:"name"`
	Cover              string  `json:"cover"`
	Plot               string  `json:"plot"`
	Cast               string  `json:"cast"`
	Director           string  `json:"director"`
	Genre              string  `json:"genre"`
	ReleaseDate        string  `json:"releaseDate"`
	Rating             string  `json:"rating"`
	Rating5Based       float64 `json:"rating_5based"`
	Duration           string  `json:"duration"`
	DurationSecs       int     `json:"duration_secs"`
	StreamType         string  `json:"stream_type"`
	StreamID           int     `json:"stream_id"`
	ContainerExtension string  `json:"container_extension"`
}

type playerSeries struct {
	Num          int     `json:"num"`
	Name         string  `json:"name"`
	SeriesID     int     `json:"series_id"`
	Cover        string  `json:"cover"`
	Plot         string  `json:"plot"`
	Cast         string  `json:"cast"`
	Director     string  `json:"director"`
	Genre        string  `json:"genre"`
	ReleaseDate  string  `json:"releaseDate"`
	Rating       string  `json:"rating"`
	Rating5Based float64 `json:"rating_5based"`
	CategoryID   string  `json:"category_id"`
}

type playerSeriesInfo struct {
	Info     playerSeriesInfoDetail     `json:"info"`
	Episodes map[string][]playerEpisode `json:"episodes"`
}

type playerSeriesInfoDetail struct {
	Name         string  `json:"name"`
	Cover        string  `json:"cover"`
	Plot         string  `json:"plot"`
	Cast         string  `json:"cast"`
	Director     string  `json:"director"`
	Genre        string  `json:"genre"`
	ReleaseDate  string  `json:"releaseDate"`
	Rating       string  `json:"rating"`
	Rating5Based float64 `json:"rating_5based"`
	Duration     string  `json:"duration"`
	DurationSecs int     `json:"duration_secs"`
	StreamType   string  `json:"stream_type"`
	SeriesID     int     `json:"series_id"`
}

type playerEpisode struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	ContainerExtension string            `json:"container_extension"`
	Info               playerEpisodeInfo `json:"info"`
}

type playerEpisodeInfo struct {
	Plot         string `json:"plot"`
	Duration     string `json:"duration"`
	DurationSecs int    `json:"duration_secs"`
	MovieImage   string `json:"movie_image"`
	Released     string `json:"released"`
}

type playerEpg struct {
	Title          string `json:"title"`
	Lang           string `json:"lang"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Description    string `json:"description"`
	ChannelID      string `json:"channel_id"`
	StartTimestamp int64  `json:"start_timestamp"`
	StopTimestamp  int64  `json:"stop_timestamp"`
}

type playerShortEpg struct {
	ID      string      `json:"id"`
	EpgList []playerEpg `json:"epg_listings"`
}

type playerSimpleDataTable struct {
	EpgListings map[string][]playerEpg `json:"epg_listings"`
}

func toPlayerEpg(entries []streaming.EpgEntry) []playerEpg {
	out := make([]playerEpg, 0, len(entries))
	for _, e := range entries {
		out = append(out, playerEpg{
			Title:          e.Title,
			Lang:           e.Lang,
			Start:          e.Start,
			End:            e.End,
			Description:    e.Description,
			ChannelID:      e.ChannelID,
			StartTimestamp: e.StartTimestamp,
			StopTimestamp:  e.StopTimestamp,
		})
	}
	return out
}
