package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ekincan/iptv-gateway/internal/cache"
	"github.com/ekincan/iptv-gateway/internal/identity"
	"github.com/ekincan/iptv-gateway/internal/model"
	"github.com/ekincan/iptv-gateway/internal/repository"
	"github.com/ekincan/iptv-gateway/internal/streaming"
)

// In-memory catalog backing the gateway tests.

type testCatalog struct {
	liveCats []model.LiveCategory
	streams  []model.LiveStream
	movies   []model.VodMovie
	series   []model.Series
	episodes []model.Episode
}

func (f *testCatalog) LiveCategories(context.Context) ([]model.LiveCategory, error) {
	return f.liveCats, nil
}
func (f *testCatalog) VodCategories(context.Context) ([]model.VodCategory, error) {
	return nil, nil
}
func (f *testCatalog) SeriesCategories(context.Context) ([]model.SeriesCategory, error) {
	return nil, nil
}

func (f *testCatalog) ListActive(_ context.Context, categoryID *int) ([]model.LiveStream, error) {
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

type testVodStore struct{ *testCatalog }

func (f testVodStore) ListActive(_ context.Context, _ *int) ([]model.VodMovie, error) {
	return f.movies, nil
}
func (f testVodStore) GetActiveByID(_ context.Context, id int) (*model.VodMovie, error) {
	for _, m := range f.movies {
		if m.ID == id && m.IsActive {
			return &m, nil
		}
	}
	return nil, repository.ErrVodNotFound
}

func (f *testCatalog) List(_ context.Context, _ *int) ([]model.Series, error) {
	return f.series, nil
}
func (f *testCatalog) GetByID(_ context.Context, id int) (*model.Series, error) {
	for _, s := range f.series {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, repository.ErrSeriesNotFound
}
func (f *testCatalog) EpisodesBySeries(_ context.Context, seriesID int) ([]model.Episode, error) {
	out := []model.Episode{}
	for _, e := range f.episodes {
		if e.SeriesID == seriesID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *testCatalog) ChannelByStreamID(context.Context, int) (*model.EpgChannel, error) {
	return nil, repository.ErrEpgChannelNotFound
}
func (f *testCatalog) ProgrammesForChannel(context.Context, int, time.Time, int) ([]model.EpgProgramme, error) {
	return nil, nil
}
func (f *testCatalog) ProgrammesUpcoming(context.Context, *int, time.Time) ([]model.EpgProgramme, error) {
	return nil, nil
}

type testUserStore struct {
	users []model.User
}

func (f *testUserStore) GetByLogin(_ context.Context, login string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == login || u.Username == login {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}
func (f *testUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func newPlayerFixture(t *testing.T) (*echo.Echo, *PlayerHandler) {
	t.Helper()
	catalog := &testCatalog{
		liveCats: []model.LiveCategory{{ID: 1, Name: "Ulusal", SortOrder: 1}},
		streams: []model.LiveStream{
			{ID: 1, CategoryID: intPtr(1), StreamName: "Kanal 1", Logo: strPtr("/logos/kanal1.png"), IsActive: true, EpgID: "kanal1.tr"},
			{ID: 2, CategoryID: intPtr(1), StreamName: "Kanal 2", Logo: strPtr("http://cdn.example.com/k2.png"), IsActive: true},
		},
		movies: []model.VodMovie{
			{ID: 9, CategoryID: intPtr(1), Title: "Gece", CoverURL: strPtr("/covers/gece.jpg"), IsActive: true},
		},
	}
	users := &testUserStore{users: []model.User{
		{ID: 1, Email: "ayse@example.com", Username: "ayse", PasswordHash: mustHash(t, "sifre123"),
			Role: model.RoleUser, EmailVerified: true},
	}}
	ident := identity.NewService(users, "test-secret", 15)
	svc := streaming.NewService(catalog, catalog, testVodStore{catalog}, catalog, catalog)
	h := NewPlayerHandler(svc, cache.New(nil, time.Minute), ident, nil)

	e := echo.New()
	e.GET("/api/player", h.Get)
	return e, h
}

func playerRequest(e *echo.Echo, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/player?"+query, nil)
	req.Host = "iptv.example.com"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPlayerRequiresCredentials(t *testing.T) {
	e, _ := newPlayerFixture(t)

	rec := playerRequest(e, "action=get_live_categories")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = playerRequest(e, "username=ayse&password=yanlis&action=get_live_categories")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlayerHandshake(t *testing.T) {
	e, _ := newPlayerFixture(t)

	rec := playerRequest(e, "username=ayse&password=sifre123")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["auth"])
	assert.Equal(t, "Active", body["status"])
	assert.Equal(t, "ayse", body["username"])
	assert.Equal(t, "0", body["is_trial"])
	assert.Equal(t, "2", body["max_connections"])
	assert.Equal(t, "http://iptv.example.com", body["server_url"])
	assert.Equal(t, "8080", body["port"])
	assert.ElementsMatch(t, []any{"m3u8", "ts", "mp4"}, body["allowed_output_formats"])
	assert.NotEmpty(t, body["exp_date"])
}

func TestPlayerHandshakeRejectsBadPassword(t *testing.T) {
	e, _ := newPlayerFixture(t)

	rec := playerRequest(e, "username=ayse&password=yanlis")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlayerUnknownAction(t *testing.T) {
	e, _ := newPlayerFixture(t)

	rec := playerRequest(e, "username=ayse&password=sifre123&action=get_everything")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlayerLiveCategoriesWireShape(t *testing.T) {
	e, _ := newPlayerFixture(t)

	rec := playerRequest(e, "username=ayse&password=sifre123&action=get_live_categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "1", body[0]["category_id"])
	assert.Equal(t, "Ulusal", body[0]["category_name"])
	assert.Equal(t, float64(0), body[0]["parent_id"])
}

func TestPlayerLiveStreamsNumberingAndIcons(t *testing.T) {
	e, _ := newPlayerFixture(t)

	rec := playerRequest(e, "username=ayse&password=sifre123&action=get_live_streams")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, float64(1), body[0]["num"])
	assert.Equal(t, float64(2), body[1]["num"])
	assert.Equal(t, "http://iptv.example.com/logos/kanal1.png", body[0]["stream_icon"])
	assert.Equal(t, "http://cdn.example.com/k2.png", body[1]["stream_icon"], "absolute icon URLs pass through")
	assert.Equal(t, "kanal1.tr", body[0]["epg_channel_id"])
	assert.Equal(t, "live", body[0]["stream_type"])
}

func TestPlayerVodInfo(t *testing.T) {
	e, _ := newPlayerFixture(t)

	rec := playerRequest(e, "username=ayse&password=sifre123&action=get_vod_info&vod_id=9")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	info := body["info"]
	assert.Equal(t, "Gece", info["name"])
	assert.Equal(t, "http://iptv.example.com/covers/gece.jpg", info["cover"])
	assert.Equal(t, "movie", info["stream_type"])
	assert.Contains(t, info, "releaseDate")

	rec = playerRequest(e, "username=ayse&password=sifre123&action=get_vod_info&vod_id=404")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = playerRequest(e, "username=ayse&password=sifre123&action=get_vod_info")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlayerShortEpgWithoutLinkageIsEmptyList(t *testing.T) {
	e, _ := newPlayerFixture(t)

	rec := playerRequest(e, "username=ayse&password=sifre123&action=get_short_epg&stream_id=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []playerShortEpg
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body)
}
