package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ekincan/iptv-gateway/internal/cache"
	"github.com/ekincan/iptv-gateway/internal/repository"
	"github.com/ekincan/iptv-gateway/internal/streaming"
)

// StreamingHandler serves the modern catalog API.  Every read goes through
// the cache-aside layer; cached values hold the service projection with
// relative artwork URLs, and per-request concerns (numbering, absolute
// URLs) are applied after retrieval so one cache entry serves every host
// name the gateway answers on.
type StreamingHandler struct {
	Svc   *streaming.Service
	Cache *cache.Cache
}

func NewStreamingHandler(svc *streaming.Service, c *cache.Cache) *StreamingHandler {
	return &StreamingHandler{Svc: svc, Cache: c}
}

// categoryFilterKey normalizes an absent filter to the literal "all" so the
// unfiltered query has a stable cache key.
func categoryFilterKey(categoryID string) string {
	if categoryID == "" {
		return "all"
	}
	return categoryID
}

func (h *StreamingHandler) LiveCategories(c echo.Context) error {
	key := cache.Key("streaming", "live_categories")
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key, h.Svc.LiveCategories)
	if err != nil {
		return failure(c, http.StatusInternalServerError, "failed to load live categories")
	}
	return success(c, http.StatusOK, out)
}

func (h *StreamingHandler) LiveStreams(c echo.Context) error {
	categoryID := c.QueryParam("categoryId")
	key := cache.Key("streaming", "live_streams", categoryFilterKey(categoryID))
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) ([]streaming.Stream, error) {
			return h.Svc.LiveStreams(ctx, categoryID)
		})
	if err != nil {
		return failure(c, http.StatusInternalServerError, "failed to load live streams")
	}
	for i := range out {
		out[i].Num = i + 1
		out[i].StreamIcon = absolutize(c, out[i].StreamIcon)
	}
	return success(c, http.StatusOK, out)
}

func (h *StreamingHandler) VodCategories(c echo.Context) error {
	key := cache.Key("streaming", "vod_categories")
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key, h.Svc.VodCategories)
	if err != nil {
		return failure(c, http.StatusInternalServerError, "failed to load vod categories")
	}
	return success(c, http.StatusOK, out)
}

func (h *StreamingHandler) VodStreams(c echo.Context) error {
	categoryID := c.QueryParam("categoryId")
	key := cache.Key("streaming", "vod_streams", categoryFilterKey(categoryID))
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) ([]streaming.VodStream, error) {
			return h.Svc.VodStreams(ctx, categoryID)
		})
	if err != nil {
		return failure(c, http.StatusInternalServerError, "failed to load vod streams")
	}
	for i := range out {
		out[i].Num = i + 1
		out[i].StreamIcon = absolutize(c, out[i].StreamIcon)
	}
	return success(c, http.StatusOK, out)
}

func (h *StreamingHandler) VodInfo(c echo.Context) error {
	vodID := c.Param("vodId")
	key := cache.Key("streaming", "vod_info", vodID)
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) (*streaming.VodInfo, error) {
			return h.Svc.VodInfo(ctx, vodID)
		})
	if err != nil {
		if errors.Is(err, repository.ErrVodNotFound) {
			return failure(c, http.StatusNotFound, "vod stream not found")
		}
		return failure(c, http.StatusInternalServerError, "failed to load vod info")
	}
	out.Info.Cover = absolutize(c, out.Info.Cover)
	return success(c, http.StatusOK, out)
}

func (h *StreamingHandler) SeriesCategories(c echo.Context) error {
	key := cache.Key("streaming", "series_categories")
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key, h.Svc.SeriesCategories)
	if err != nil {
		return failure(c, http.StatusInternalServerError, "failed to load series categories")
	}
	return success(c, http.StatusOK, out)
}

func (h *StreamingHandler) Series(c echo.Context) error {
	categoryID := c.QueryParam("categoryId")
	key := cache.Key("streaming", "series", categoryFilterKey(categoryID))
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) ([]streaming.Series, error) {
			return h.Svc.SeriesList(ctx, categoryID)
		})
	if err != nil {
		return failure(c, http.StatusInternalServerError, "failed to load series")
	}
	for i := range out {
		out[i].Num = i + 1
		out[i].Cover = absolutize(c, out[i].Cover)
	}
	return success(c, http.StatusOK, out)
}

func (h *StreamingHandler) SeriesInfo(c echo.Context) error {
	seriesID := c.Param("seriesId")
	key := cache.Key("streaming", "series_info", seriesID)
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) (*streaming.SeriesInfo, error) {
			return h.Svc.SeriesInfo(ctx, seriesID)
		})
	if err != nil {
		if errors.Is(err, repository.ErrSeriesNotFound) {
			return failure(c, http.StatusNotFound, "series not found")
		}
		return failure(c, http.StatusInternalServerError, "failed to load series info")
	}
	out.Info.Cover = absolutize(c, out.Info.Cover)
	return success(c, http.StatusOK, out)
}

func (h *StreamingHandler) Epg(c echo.Context) error {
	categoryID := c.QueryParam("categoryId")
	key := cache.Key("streaming", "epg", categoryFilterKey(categoryID))
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) (map[string][]streaming.EpgEntry, error) {
			return h.Svc.Epg(ctx, categoryID)
		})
	if err != nil {
		return failure(c, http.StatusInternalServerError, "failed to load epg")
	}
	return success(c, http.StatusOK, out)
}

func (h *StreamingHandler) ShortEpg(c echo.Context) error {
	streamID := c.Param("streamId")
	limit, _ := strconv.Atoi(c.QueryParam("limit")) // 0 means default
	key := cache.Key("streaming", "short_epg", streamID, strconv.Itoa(limit))
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) ([]streaming.ShortEpg, error) {
			return h.Svc.ShortEpg(ctx, streamID, limit)
		})
	if err != nil {
		return failure(c, http.StatusInternalServerError, "failed to load short epg")
	}
	return success(c, http.StatusOK, out)
}

func (h *StreamingHandler) SimpleDataTable(c echo.Context) error {
	streamID := c.Param("streamId")
	key := cache.Key("streaming", "simple_data_table", streamID)
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) (*streaming.SimpleDataTable, error) {
			return h.Svc.SimpleDataTable(ctx, streamID)
		})
	if err != nil {
		return failure(c, http.StatusInternalServerError, "failed to load epg table")
	}
	return success(c, http.StatusOK, out)
}
