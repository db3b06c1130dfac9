package streaming

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekincan/iptv-gateway/internal/model"
	"github.com/ekincan/iptv-gateway/internal/repository"
)

// fakeCatalog implements every store interface in memory.  Filtering and
// ordering mirror what the SQL layer guarantees so the projections can be
// asserted end to end.
type fakeCatalog struct {
	liveCats   []model.LiveCategory
	vodCats    []model.VodCategory
	seriesCats []model.SeriesCategory
	streams    []model.LiveStream
	movies     []model.VodMovie
	series     []model.Series
	episodes   []model.Episode
	channels   []model.EpgChannel
	programmes []model.EpgProgramme
}

func (f *fakeCatalog) LiveCategories(context.Context) ([]model.LiveCategory, error) {
	return f.liveCats, nil
}
func (f *fakeCatalog) VodCategories(context.Context) ([]model.VodCategory, error) {
	return f.vodCats, nil
}
func (f *fakeCatalog) SeriesCategories(context.Context) ([]model.SeriesCategory, error) {
	return f.seriesCats, nil
}

func (f *fakeCatalog) ListActive(_ context.Context, categoryID *int) ([]model.LiveStream, error) {
	out := []model.LiveStream{}
	for _, s := range f.streams {
		if !s.IsActive {
			continue
		}
		if categoryID != nil && (s.CategoryID == nil || *s.CategoryID != *categoryID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalog) listActiveMovies(categoryID *int) []model.VodMovie {
	out := []model.VodMovie{}
	for _, m := range f.movies {
		if !m.IsActive {
			continue
		}
		if categoryID != nil && (m.CategoryID == nil || *m.CategoryID != *categoryID) {
			continue
		}
		out = append(out, m)
	}
	return out
}

type fakeVodStore struct{ *fakeCatalog }

func (f fakeVodStore) ListActive(_ context.Context, categoryID *int) ([]model.VodMovie, error) {
	return f.listActiveMovies(categoryID), nil
}
func (f fakeVodStore) GetActiveByID(_ context.Context, id int) (*model.VodMovie, error) {
	for _, m := range f.movies {
		if m.ID == id && m.IsActive {
			return &m, nil
		}
	}
	return nil, repository.ErrVodNotFound
}

func (f *fakeCatalog) List(_ context.Context, categoryID *int) ([]model.Series, error) {
	out := []model.Series{}
	for _, s := range f.series {
		if categoryID != nil && (s.CategoryID == nil || *s.CategoryID != *categoryID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
func (f *fakeCatalog) GetByID(_ context.Context, id int) (*model.Series, error) {
	for _, s := range f.series {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, repository.ErrSeriesNotFound
}
func (f *fakeCatalog) EpisodesBySeries(_ context.Context, seriesID int) ([]model.Episode, error) {
	out := []model.Episode{}
	for _, e := range f.episodes {
		if e.SeriesID == seriesID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ChannelByStreamID(_ context.Context, streamID int) (*model.EpgChannel, error) {
	for _, c := range f.channels {
		if c.ChannelID == streamID {
			return &c, nil
		}
	}
	return nil, repository.ErrEpgChannelNotFound
}
func (f *fakeCatalog) ProgrammesForChannel(_ context.Context, epgChannelID int, now time.Time, limit int) ([]model.EpgProgramme, error) {
	out := []model.EpgProgramme{}
	for _, p := range f.programmes {
		if p.EpgChannelID == epgChannelID && !p.EndTime.Before(now) {
			out = append(out, p)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
func (f *fakeCatalog) ProgrammesUpcoming(_ context.Context, _ *int, now time.Time) ([]model.EpgProgramme, error) {
	out := []model.EpgProgramme{}
	for _, p := range f.programmes {
		if !p.EndTime.Before(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService(f *fakeCatalog) *Service {
	return NewService(f, f, fakeVodStore{f}, f, f)
}

func intPtr(n int) *int             { return &n }
func strPtr(s string) *string       { return &s }
func floatPtr(v float64) *float64   { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestLiveCategoriesStringifiesIDs(t *testing.T) {
	f := &fakeCatalog{liveCats: []model.LiveCategory{
		{ID: 7, Name: "Ulusal", SortOrder: 1},
		{ID: 2, Name: "Spor", SortOrder: 2},
	}}
	out, err := newTestService(f).LiveCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "7", out[0].CategoryID)
	assert.Equal(t, "Ulusal", out[0].CategoryName)
	assert.Equal(t, 0, out[0].ParentID)
	assert.Equal(t, "2", out[1].CategoryID)
}

func TestLiveStreamsProjection(t *testing.T) {
	f := &fakeCatalog{streams: []model.LiveStream{
		{ID: 1, CategoryID: intPtr(3), StreamName: "Kanal 1", Logo: strPtr("/logos/1.png"), IsActive: true, EpgID: "kanal1.tr"},
		{ID: 2, CategoryID: nil, StreamName: "Kanal 2", IsActive: true},
		{ID: 3, CategoryID: intPtr(3), StreamName: "Kapali", IsActive: false},
	}}
	svc := newTestService(f)

	out, err := svc.LiveStreams(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "live", out[0].StreamType)
	assert.Equal(t, "3", out[0].CategoryID)
	assert.Equal(t, "/logos/1.png", out[0].StreamIcon)
	assert.Equal(t, "kanal1.tr", out[0].EpgChannelID)
	assert.Equal(t, "0", out[0].Added)
	assert.Equal(t, "", out[1].CategoryID)
	assert.Equal(t, "", out[1].EpgChannelID)

	filtered, err := svc.LiveStreams(context.Background(), "3")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 1, filtered[0].StreamID)
}

func TestMalformedCategoryFilterYieldsEmpty(t *testing.T) {
	f := &fakeCatalog{
		streams: []model.LiveStream{{ID: 1, StreamName: "Kanal", IsActive: true}},
		movies:  []model.VodMovie{{ID: 1, Title: "Film", IsActive: true}},
		series:  []model.Series{{ID: 1, Title: "Dizi"}},
	}
	svc := newTestService(f)

	streams, err := svc.LiveStreams(context.Background(), "abc")
	require.NoError(t, err)
	assert.Empty(t, streams)

	movies, err := svc.VodStreams(context.Background(), "1x")
	require.NoError(t, err)
	assert.Empty(t, movies)

	series, err := svc.SeriesList(context.Background(), "-")
	require.NoError(t, err)
	assert.Empty(t, series)

	epg, err := svc.Epg(context.Background(), "abc")
	require.NoError(t, err)
	assert.Empty(t, epg)
}

func TestVodStreamsRating(t *testing.T) {
	f := &fakeCatalog{movies: []model.VodMovie{
		{ID: 1, Title: "A", Rating: floatPtr(8.5), IsActive: true},
		{ID: 2, Title: "B", Rating: nil, IsActive: true},
	}}
	out, err := newTestService(f).VodStreams(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "8.5", out[0].Rating)
	assert.Equal(t, 4.25, out[0].Rating5Based)
	assert.Equal(t, "mp4", out[0].ContainerExtension)
	assert.Equal(t, "0", out[1].Rating)
	assert.Equal(t, 0.0, out[1].Rating5Based)
}

func TestVodInfo(t *testing.T) {
	release := time.Date(2021, 3, 12, 0, 0, 0, 0, time.UTC)
	f := &fakeCatalog{movies: []model.VodMovie{
		{ID: 9, Title: "Gece", Description: strPtr("Soygun."), CoverURL: strPtr("/covers/g.jpg"),
			Duration: intPtr(112), ReleaseDate: timePtr(release), Rating: floatPtr(7.4), IsActive: true},
		{ID: 10, Title: "Arsiv", IsActive: false},
	}}
	svc := newTestService(f)

	info, err := svc.VodInfo(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, "Gece", info.Info.Name)
	assert.Equal(t, "2021-03-12", info.Info.ReleaseDate)
	assert.Equal(t, "112", info.Info.Duration)
	assert.Equal(t, 112, info.Info.DurationSecs)
	assert.Equal(t, "movie", info.Info.StreamType)
	assert.Equal(t, "7.4", info.Info.Rating)

	_, err = svc.VodInfo(context.Background(), "404")
	assert.ErrorIs(t, err, repository.ErrVodNotFound)

	_, err = svc.VodInfo(context.Background(), "abc")
	assert.ErrorIs(t, err, repository.ErrVodNotFound)

	_, err = svc.VodInfo(context.Background(), "10")
	assert.ErrorIs(t, err, repository.ErrVodNotFound, "inactive movies must not resolve")
}

func TestSeriesInfoGroupsEpisodesBySeason(t *testing.T) {
	f := &fakeCatalog{
		series: []model.Series{{ID: 1, Title: "Kuzey", Rating: floatPtr(8.2)}},
		episodes: []model.Episode{
			{ID: 11, SeriesID: 1, SeasonNumber: 1, EpisodeNumber: 1, Title: strPtr("Baslangic"), Duration: intPtr(45)},
			{ID: 12, SeriesID: 1, SeasonNumber: 1, EpisodeNumber: 2},
			{ID: 21, SeriesID: 1, SeasonNumber: 2, EpisodeNumber: 1, Title: strPtr("Yeni Sayfa")},
		},
	}
	info, err := newTestService(f).SeriesInfo(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, "series", info.Info.StreamType)
	assert.Equal(t, "45", info.Info.Duration)
	assert.Equal(t, 2700, info.Info.DurationSecs)
	assert.Equal(t, "8.2", info.Info.Rating)

	require.Len(t, info.Episodes, 2)
	season1 := info.Episodes["1"]
	require.Len(t, season1, 2)
	assert.Equal(t, "11", season1[0].ID)
	assert.Equal(t, "Baslangic", season1[0].Title)
	assert.Equal(t, "Episode 2", season1[1].Title)
	assert.Equal(t, "mp4", season1[1].ContainerExtension)
	require.Len(t, info.Episodes["2"], 1)

	_, err = newTestService(f).SeriesInfo(context.Background(), "99")
	assert.ErrorIs(t, err, repository.ErrSeriesNotFound)
}

func TestShortEpgWrapsEntries(t *testing.T) {
	now := time.Now().UTC()
	f := &fakeCatalog{
		channels: []model.EpgChannel{{ID: 5, ChannelID: 1, EpgID: "kanal1.tr"}},
		programmes: []model.EpgProgramme{
			{ID: 1, EpgChannelID: 5, Title: strPtr("Haberler"), EpgID: "kanal1.tr",
				StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
			{ID: 2, EpgChannelID: 5, EpgID: "kanal1.tr",
				StartTime: now.Add(2 * time.Hour), EndTime: now.Add(3 * time.Hour)},
		},
	}
	svc := newTestService(f)

	out, err := svc.ShortEpg(context.Background(), "1", 1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID)
	require.Len(t, out[0].EpgList, 1)
	entry := out[0].EpgList[0]
	assert.Equal(t, "Haberler", entry.Title)
	assert.Equal(t, "tr", entry.Lang)
	assert.Equal(t, "kanal1.tr", entry.ChannelID)
	assert.Equal(t, now.Add(time.Hour).Unix(), entry.StartTimestamp)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`, entry.Start)
}

func TestShortEpgWithoutChannelIsEmpty(t *testing.T) {
	svc := newTestService(&fakeCatalog{})

	out, err := svc.ShortEpg(context.Background(), "42", 0)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = svc.ShortEpg(context.Background(), "abc", 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSimpleDataTableKeyedByStreamID(t *testing.T) {
	now := time.Now().UTC()
	f := &fakeCatalog{
		channels: []model.EpgChannel{{ID: 5, ChannelID: 3, EpgID: "haber24.tr"}},
		programmes: []model.EpgProgramme{
			{ID: 1, EpgChannelID: 5, EpgID: "haber24.tr",
				StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
		},
	}
	svc := newTestService(f)

	table, err := svc.SimpleDataTable(context.Background(), "3")
	require.NoError(t, err)
	require.Contains(t, table.EpgListings, "3")
	assert.Len(t, table.EpgListings["3"], 1)

	empty, err := svc.SimpleDataTable(context.Background(), "404")
	require.NoError(t, err)
	assert.Empty(t, empty.EpgListings)
}

func TestEpgGroupsByChannel(t *testing.T) {
	now := time.Now().UTC()
	f := &fakeCatalog{programmes: []model.EpgProgramme{
		{ID: 1, EpgChannelID: 1, EpgID: "kanal1.tr", StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
		{ID: 2, EpgChannelID: 1, EpgID: "kanal1.tr", StartTime: now.Add(2 * time.Hour), EndTime: now.Add(3 * time.Hour)},
		{ID: 3, EpgChannelID: 2, EpgID: "haber24.tr", StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
		{ID: 4, EpgChannelID: 2, EpgID: "haber24.tr", StartTime: now.Add(-3 * time.Hour), EndTime: now.Add(-2 * time.Hour)},
	}}
	out, err := newTestService(f).Epg(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Len(t, out["kanal1.tr"], 2)
	assert.Len(t, out["haber24.tr"], 1)
}
