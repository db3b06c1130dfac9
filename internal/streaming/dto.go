package streaming

// Protocol-neutral projection DTOs. These carry the modern API's JSON shape;
// the legacy player gateway re-marshals them into snake_case wire structs at
// its boundary so the query logic exists exactly once.
//
// String identifiers are deliberate: the historical protocol stringifies
// category ids, season numbers and durations, and players depend on it.

// Category is a flat grouping for live streams, movies or series.  ParentID
// is always 0; the field exists only for protocol compatibility.
type Category struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	ParentID     int    `json:"parentId"`
}

// Stream is a live TV channel entry.  Num is assigned by the gateway from
// the position in the returned (already ordered) list, so it stays zero at
// this layer.
type Stream struct {
	Num               int    `json:"num"`
	Name              string `json:"name"`
	StreamType        string `json:"streamType"`
	StreamID          int    `json:"streamId"`
	StreamIcon        string `json:"streamIcon"`
	EpgChannelID      string `json:"epgChannelId"`
	Added             string `json:"added"`
	CategoryID        string `json:"categoryId"`
	CustomSid         string `json:"customSid"`
	TvArchive         int    `json:"tvArchive"`
	DirectSource      string `json:"directSource"`
	TvArchiveDuration int    `json:"tvArchiveDuration"`
}

// VodStream is an on-demand movie list entry.  Rating carries the stored 0-10
// value as a string; Rating5Based is the derived 0-5 number.
type VodStream struct {
	Num                int     `json:"num"`
	Name               string  `json:"name"`
	StreamType         string  `json:"streamType"`
	StreamID           int     `json:"streamId"`
	StreamIcon         string  `json:"streamIcon"`
	Rating             string  `json:"rating"`
	Rating5Based       float64 `json:"rating5Based"`
	Added              string  `json:"added"`
	CategoryID         string  `json:"categoryId"`
	ContainerExtension string  `json:"containerExtension"`
	CustomSid          string  `json:"customSid"`
	DirectSource       string  `json:"directSource"`
}

// VodInfo is the movie detail payload.
type VodInfo struct {
	Info VodInfoDetail `json:"info"`
}

// VodInfoDetail carries the movie metadata of a VodInfo.
type VodInfoDetail struct {
	Name               string  `json:"name"`
	Cover              string  `json:"cover"`
	Plot               string  `json:"plot"`
	Cast               string  `json:"cast"`
	Director           string  `json:"director"`
	Genre              string  `json:"genre"`
	ReleaseDate        string  `json:"releaseDate"`
	Rating             string  `json:"rating"`
	Rating5Based       float64 `json:"rating5Based"`
	Duration           string  `json:"duration"`
	DurationSecs       int     `json:"durationSecs"`
	StreamType         string  `json:"streamType"`
	StreamID           int     `json:"streamId"`
	ContainerExtension string  `json:"containerExtension"`
}

// Series is a series list entry.
type Series struct {
	Num          int     `json:"num"`
	Name         string  `json:"name"`
	SeriesID     int     `json:"seriesId"`
	Cover        string  `json:"cover"`
	Plot         string  `json:"plot"`
	Cast         string  `json:"cast"`
	Director     string  `json:"director"`
	Genre        string  `json:"genre"`
	ReleaseDate  string  `json:"releaseDate"`
	Rating       string  `json:"rating"`
	Rating5Based float64 `json:"rating5Based"`
	CategoryID   string  `json:"categoryId"`
}

// SeriesInfo is the series detail payload.  Episodes maps the stringified
// season number to that season's episodes in (season, episode) order.
type SeriesInfo struct {
	Info     SeriesInfoDetail     `json:"info"`
	Episodes map[string][]Episode `json:"episodes"`
}

// SeriesInfoDetail carries the series metadata of a SeriesInfo.
type SeriesInfoDetail struct {
	Name         string  `json:"name"`
	Cover        string  `json:"cover"`
	Plot         string  `json:"plot"`
	Cast         string  `json:"cast"`
	Director     string  `json:"director"`
	Genre        string  `json:"genre"`
	ReleaseDate  string  `json:"releaseDate"`
	Rating       string  `json:"rating"`
	Rating5Based float64 `json:"rating5Based"`
	Duration     string  `json:"duration"`
	DurationSecs int     `json:"durationSecs"`
	StreamType   string  `json:"streamType"`
	SeriesID     int     `json:"seriesId"`
}

// Episode is one entry of a SeriesInfo season.
type Episode struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	ContainerExtension string      `json:"containerExtension"`
	Info               EpisodeInfo `json:"info"`
}

// EpisodeInfo carries the per-episode metadata.
type EpisodeInfo struct {
	Plot         string `json:"plot"`
	Duration     string `json:"duration"`
	DurationSecs int    `json:"durationSecs"`
	MovieImage   string `json:"movieImage"`
	Released     string `json:"released"`
}

// EpgEntry is a single programme in any of the guide responses.
type EpgEntry struct {
	Title          string `json:"title"`
	Lang           string `json:"lang"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Description    string `json:"description"`
	ChannelID      string `json:"channelId"`
	StartTimestamp int64  `json:"startTimestamp"`
	StopTimestamp  int64  `json:"stopTimestamp"`
}

// ShortEpg wraps the limited upcoming-programmes answer for one stream.
type ShortEpg struct {
	ID      string     `json:"id"`
	EpgList []EpgEntry `json:"epgListings"`
}

// SimpleDataTable wraps the unlimited upcoming-programmes answer, keyed by
// the raw stream id string the player asked about.
type SimpleDataTable struct {
	EpgListings map[string][]EpgEntry `json:"epgListings"`
}
