package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekincan/iptv-gateway/internal/cache"
	"github.com/ekincan/iptv-gateway/internal/middleware"
	"github.com/ekincan/iptv-gateway/internal/model"
	"github.com/ekincan/iptv-gateway/internal/streaming"
	"github.com/ekincan/iptv-gateway/internal/utils"
)

const testSecret = "test-secret"

func newStreamingFixture(t *testing.T, c *cache.Cache) *echo.Echo {
	t.Helper()
	catalog := &testCatalog{
		liveCats: []model.LiveCategory{{ID: 1, Name: "Ulusal", SortOrder: 1}},
		streams: []model.LiveStream{
			{ID: 1, CategoryID: intPtr(1), StreamName: "Kanal 1", Logo: strPtr("/logos/kanal1.png"), IsActive: true},
		},
		movies: []model.VodMovie{
			{ID: 9, Title: "Gece", CoverURL: strPtr("/covers/gece.jpg"), IsActive: true},
		},
	}
	svc := streaming.NewService(catalog, catalog, testVodStore{catalog}, catalog, catalog)
	h := NewStreamingHandler(svc, c)

	e := echo.New()
	g := e.Group("/api/v1/streaming")
	g.Use(middleware.JWTAuth(testSecret))
	g.GET("/live/categories", h.LiveCategories)
	g.GET("/live/streams", h.LiveStreams)
	g.GET("/vod/:vodId", h.VodInfo)
	return e
}

func bearerFor(t *testing.T) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, 1, model.RoleUser, 15)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func apiRequest(e *echo.Echo, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Host = "iptv.example.com"
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestStreamingRequiresBearerToken(t *testing.T) {
	e := newStreamingFixture(t, cache.New(nil, time.Minute))

	rec := apiRequest(e, "/api/v1/streaming/live/categories", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["type"])

	rec = apiRequest(e, "/api/v1/streaming/live/categories", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStreamingEnvelope(t *testing.T) {
	e := newStreamingFixture(t, cache.New(nil, time.Minute))

	rec := apiRequest(e, "/api/v1/streaming/live/categories", bearerFor(t))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Type   string `json:"type"`
		Result []struct {
			CategoryID   string `json:"categoryId"`
			CategoryName string `json:"categoryName"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Type)
	require.Len(t, body.Result, 1)
	assert.Equal(t, "1", body.Result[0].CategoryID)
	assert.Equal(t, "Ulusal", body.Result[0].CategoryName)
}

func TestStreamingLiveStreamsNumberingAndIcon(t *testing.T) {
	e := newStreamingFixture(t, cache.New(nil, time.Minute))

	rec := apiRequest(e, "/api/v1/streaming/live/streams", bearerFor(t))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Result []struct {
			Num        int    `json:"num"`
			StreamIcon string `json:"streamIcon"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Result, 1)
	assert.Equal(t, 1, body.Result[0].Num)
	assert.Equal(t, "http://iptv.example.com/logos/kanal1.png", body.Result[0].StreamIcon)
}

func TestStreamingVodInfoNotFound(t *testing.T) {
	e := newStreamingFixture(t, cache.New(nil, time.Minute))

	rec := apiRequest(e, "/api/v1/streaming/vod/404", bearerFor(t))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["type"])
}

func TestStreamingResponsesAreCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	e := newStreamingFixture(t, cache.New(rdb, time.Minute))

	first := apiRequest(e, "/api/v1/streaming/live/streams", bearerFor(t))
	require.Equal(t, http.StatusOK, first.Code)
	assert.True(t, mr.Exists("streaming:live_streams:all"))

	second := apiRequest(e, "/api/v1/streaming/live/streams", bearerFor(t))
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}
