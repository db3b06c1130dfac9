// Package streaming is the catalog query service: a pure read-projection
// layer translating stored catalog entities into protocol DTOs, independent
// of which gateway calls it.  It never mutates the catalog.
package streaming

import (
	"context"
	"strconv"
	"time"

	"github.com/ekincan/iptv-gateway/internal/model"
	"github.com/ekincan/iptv-gateway/internal/repository"
)

// Wire constants of the historical protocol.
const (
	streamTypeLive   = "live"
	streamTypeMovie  = "movie"
	streamTypeSeries = "series"

	containerExtension = "mp4"
	epgLang            = "tr"

	epgTimeLayout = "2006-01-02 15:04:05"
	dateLayout    = "2006-01-02"

	// Series-level duration is not stored per series; players expect a
	// plausible constant (45 minutes).
	seriesDuration     = "45"
	seriesDurationSecs = 2700

	defaultShortEpgLimit = 20
)

// CategoryStore provides ordered category listings.
type CategoryStore interface {
	LiveCategories(ctx context.Context) ([]model.LiveCategory, error)
	VodCategories(ctx context.Context) ([]model.VodCategory, error)
	SeriesCategories(ctx context.Context) ([]model.SeriesCategory, error)
}

// LiveStreamStore provides active live streams with their EPG linkage.
type LiveStreamStore interface {
	ListActive(ctx context.Context, categoryID *int) ([]model.LiveStream, error)
}

// VodStore provides active on-demand movies.
type VodStore interface {
	ListActive(ctx context.Context, categoryID *int) ([]model.VodMovie, error)
	GetActiveByID(ctx context.Context, id int) (*model.VodMovie, error)
}

// SeriesStore provides series and their episodes.
type SeriesStore interface {
	List(ctx context.Context, categoryID *int) ([]model.Series, error)
	GetByID(ctx context.Context, id int) (*model.Series, error)
	EpisodesBySeries(ctx context.Context, seriesID int) ([]model.Episode, error)
}

// EpgStore provides the programme guide.
type EpgStore interface {
	ChannelByStreamID(ctx context.Context, streamID int) (*model.EpgChannel, error)
	ProgrammesForChannel(ctx context.Context, epgChannelID int, now time.Time, limit int) ([]model.EpgProgramme, error)
	ProgrammesUpcoming(ctx context.Context, categoryID *int, now time.Time) ([]model.EpgProgramme, error)
}

// Service aggregates the catalog stores and projects them into DTOs.
type Service struct {
	categories CategoryStore
	live       LiveStreamStore
	vod        VodStore
	series     SeriesStore
	epg        EpgStore
}

// NewService constructs a Service over the given stores.
func NewService(categories CategoryStore, live LiveStreamStore, vod VodStore, series SeriesStore, epg EpgStore) *Service {
	return &Service{categories: categories, live: live, vod: vod, series: series, epg: epg}
}

// LiveCategories returns live categories ordered by (sort_order, name).
func (s *Service) LiveCategories(ctx context.Context) ([]Category, error) {
	cats, err := s.categories.LiveCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, Category{CategoryID: strconv.Itoa(c.ID), CategoryName: c.Name, ParentID: 0})
	}
	return out, nil
}

// VodCategories returns VOD categories ordered by (sort_order, name).
func (s *Service) VodCategories(ctx context.Context) ([]Category, error) {
	cats, err := s.categories.VodCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, Category{CategoryID: strconv.Itoa(c.ID), CategoryName: c.Name, ParentID: 0})
	}
	return out, nil
}

// SeriesCategories returns series categories ordered by (sort_order, name).
func (s *Service) SeriesCategories(ctx context.Context) ([]Category, error) {
	cats, err := s.categories.SeriesCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, Category{CategoryID: strconv.Itoa(c.ID), CategoryName: c.Name, ParentID: 0})
	}
	return out, nil
}

// LiveStreams returns active live streams ordered by (sort_order, name),
// optionally filtered by category.  A malformed (non-numeric) filter fails
// closed to an empty list; the legacy protocol expects no error for it.
func (s *Service) LiveStreams(ctx context.Context, categoryID string) ([]Stream, error) {
	filter, ok := parseCategoryFilter(categoryID)
	if !ok {
		return []Stream{}, nil
	}
	streams, err := s.live.ListActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]Stream, 0, len(streams))
	for _, ls := range streams {
		out = append(out, Stream{
			Name:         ls.StreamName,
			StreamType:   streamTypeLive,
			StreamID:     ls.ID,
			StreamIcon:   strOrEmpty(ls.Logo),
			EpgChannelID: ls.EpgID,
			Added:        "0",
			CategoryID:   intOrEmpty(ls.CategoryID),
		})
	}
	return out, nil
}

// VodStreams returns active movies ordered by title, optionally filtered by
// category, with rating fields projected onto both scales.
func (s *Service) VodStreams(ctx context.Context, categoryID string) ([]VodStream, error) {
	filter, ok := parseCategoryFilter(categoryID)
	if !ok {
		return []VodStream{}, nil
	}
	movies, err := s.vod.ListActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]VodStream, 0, len(movies))
	for _, m := range movies {
		out = append(out, VodStream{
			Name:               m.Title,
			StreamType:         streamTypeMovie,
			StreamID:           m.ID,
			StreamIcon:         strOrEmpty(m.CoverURL),
			Rating:             ratingString(m.Rating),
			Rating5Based:       rating5Based(m.Rating),
			Added:              "0",
			CategoryID:         intOrEmpty(m.CategoryID),
			ContainerExtension: containerExtension,
		})
	}
	return out, nil
}

// VodInfo returns the detail payload for one active movie.  An id that does
// not parse, matches nothing or matches an inactive movie all surface as
// repository.ErrVodNotFound.
func (s *Service) VodInfo(ctx context.Context, vodID string) (*VodInfo, error) {
	id, err := strconv.Atoi(vodID)
	if err != nil {
		return nil, repository.ErrVodNotFound
	}
	m, err := s.vod.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &VodInfo{Info: VodInfoDetail{
		Name:               m.Title,
		Cover:              strOrEmpty(m.CoverURL),
		Plot:               strOrEmpty(m.Description),
		ReleaseDate:        dateOrEmpty(m.ReleaseDate),
		Rating:             ratingString(m.Rating),
		Rating5Based:       rating5Based(m.Rating),
		Duration:           intString(m.Duration),
		DurationSecs:       intOrZero(m.Duration),
		StreamType:         streamTypeMovie,
		StreamID:           m.ID,
		ContainerExtension: containerExtension,
	}}, nil
}

// SeriesList returns series ordered by title, optionally filtered by category.
func (s *Service) SeriesList(ctx context.Context, categoryID string) ([]Series, error) {
	filter, ok := parseCategoryFilter(categoryID)
	if !ok {
		return []Series{}, nil
	}
	list, err := s.series.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]Series, 0, len(list))
	for _, sr := range list {
		out = append(out, Series{
			Name:         sr.Title,
			SeriesID:     sr.ID,
			Cover:        strOrEmpty(sr.CoverURL),
			Plot:         strOrEmpty(sr.Description),
			Rating:       ratingString(sr.Rating),
			Rating5Based: rating5Based(sr.Rating),
			CategoryID:   intOrEmpty(sr.CategoryID),
		})
	}
	return out, nil
}

// SeriesInfo returns the detail payload for one series with its episodes
// grouped by stringified season number.  Episodes arrive from the store in
// (season, episode) order, which keeps each season's slice ordered.
func (s *Service) SeriesInfo(ctx context.Context, seriesID string) (*SeriesInfo, error) {
	id, err := strconv.Atoi(seriesID)
	if err != nil {
		return nil, repository.ErrSeriesNotFound
	}
	sr, err := s.series.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	episodes, err := s.series.EpisodesBySeries(ctx, id)
	if err != nil {
		return nil, err
	}

	bySeason := make(map[string][]Episode)
	for _, e := range episodes {
		season := strconv.Itoa(e.SeasonNumber)
		title := strOrEmpty(e.Title)
		if title == "" {
			title = "Episode " + strconv.Itoa(e.EpisodeNumber)
		}
		bySeason[season] = append(bySeason[season], Episode{
			ID:                 strconv.Itoa(e.ID),
			Title:              title,
			ContainerExtension: containerExtension,
			Info: EpisodeInfo{
				Plot:         strOrEmpty(e.Description),
				Duration:     intString(e.Duration),
				DurationSecs: intOrZero(e.Duration),
				Released:     dateOrEmpty(e.ReleaseDate),
			},
		})
	}

	return &SeriesInfo{
		Info: SeriesInfoDetail{
			Name:         sr.Title,
			Cover:        strOrEmpty(sr.CoverURL),
			Plot:         strOrEmpty(sr.Description),
			Rating:       ratingString(sr.Rating),
			Rating5Based: rating5Based(sr.Rating),
			Duration:     seriesDuration,
			DurationSecs: seriesDurationSecs,
			StreamType:   streamTypeSeries,
			SeriesID:     sr.ID,
		},
		Episodes: bySeason,
	}, nil
}

// Epg returns all future or ongoing programmes grouped by the channel's
// external EPG id, ordered by start time within each channel.
func (s *Service) Epg(ctx context.Context, categoryID string) (map[string][]EpgEntry, error) {
	filter, ok := parseCategoryFilter(categoryID)
	if !ok {
		return map[string][]EpgEntry{}, nil
	}
	programmes, err := s.epg.ProgrammesUpcoming(ctx, filter, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	out := make(map[string][]EpgEntry)
	for _, p := range programmes {
		out[p.EpgID] = append(out[p.EpgID], epgEntry(p))
	}
	return out, nil
}

// ShortEpg returns up to limit future or ongoing programmes for one live
// stream, wrapped with the stream id as identifier.  A stream without EPG
// linkage (or an unparseable id) yields an empty list, not an error.
func (s *Service) ShortEpg(ctx context.Context, streamID string, limit int) ([]ShortEpg, error) {
	if limit <= 0 {
		limit = defaultShortEpgLimit
	}
	channel, err := s.channelFor(ctx, streamID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return []ShortEpg{}, nil
	}
	programmes, err := s.epg.ProgrammesForChannel(ctx, channel.ID, time.Now().UTC(), limit)
	if err != nil {
		return nil, err
	}
	entries := make([]EpgEntry, 0, len(programmes))
	for _, p := range programmes {
		entries = append(entries, epgEntry(p))
	}
	return []ShortEpg{{ID: streamID, EpgList: entries}}, nil
}

// SimpleDataTable returns every future or ongoing programme for one live
// stream, keyed by the raw stream id string the caller supplied.
func (s *Service) SimpleDataTable(ctx context.Context, streamID string) (*SimpleDataTable, error) {
	out := &SimpleDataTable{EpgListings: map[string][]EpgEntry{}}
	channel, err := s.channelFor(ctx, streamID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return out, nil
	}
	programmes, err := s.epg.ProgrammesForChannel(ctx, channel.ID, time.Now().UTC(), 0)
	if err != nil {
		return nil, err
	}
	entries := make([]EpgEntry, 0, len(programmes))
	for _, p := range programmes {
		entries = append(entries, epgEntry(p))
	}
	out.EpgListings[streamID] = entries
	return out, nil
}

// channelFor resolves the EPG channel of a stream id, mapping the expected
// absent cases (unparseable id, no linkage) to a nil channel.
func (s *Service) channelFor(ctx context.Context, streamID string) (*model.EpgChannel, error) {
	id, err := strconv.Atoi(streamID)
	if err != nil {
		return nil, nil
	}
	channel, err := s.epg.ChannelByStreamID(ctx, id)
	if err != nil {
		if err == repository.ErrEpgChannelNotFound {
			return nil, nil
		}
		return nil, err
	}
	return channel, nil
}

// parseCategoryFilter interprets an optional category filter parameter.
// "" means no filter.  A value that does not parse as an integer fails
// closed: ok=false and the caller returns an empty result.
func parseCategoryFilter(categoryID string) (filter *int, ok bool) {
	if categoryID == "" {
		return nil, true
	}
	id, err := strconv.Atoi(categoryID)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func epgEntry(p model.EpgProgramme) EpgEntry {
	return EpgEntry{
		Title:          strOrEmpty(p.Title),
		Lang:           epgLang,
		Start:          p.StartTime.UTC().Format(epgTimeLayout),
		End:            p.EndTime.UTC().Format(epgTimeLayout),
		Description:    strOrEmpty(p.Description),
		ChannelID:      p.EpgID,
		StartTimestamp: p.StartTime.Unix(),
		StopTimestamp:  p.EndTime.Unix(),
	}
}

// ratingString renders a 0-10 rating with one decimal, "0" when unset.
func ratingString(r *float64) string {
	if r == nil {
		return "0"
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

// rating5Based derives the 0-5 scale value, 0 when unset.
func rating5Based(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r / 2
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func intString(n *int) string {
	if n == nil {
		return "0"
	}
	return strconv.Itoa(*n)
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
