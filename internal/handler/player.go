package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/ekincan/iptv-gateway/internal/cache"
	"github.com/ekincan/iptv-gateway/internal/identity"
	"github.com/ekincan/iptv-gateway/internal/model"
	"github.com/ekincan/iptv-gateway/internal/queue"
	"github.com/ekincan/iptv-gateway/internal/repository"
	queue_publisher "github.com/ekincan/iptv-gateway/internal/service"
	"github.com/ekincan/iptv-gateway/internal/streaming"
)

// Fixed handshake values.  The subscription model behind them does not
// exist here; players refuse to start without them.
const (
	playerStatusActive    = "Active"
	playerMaxConnections  = "2"
	playerAdvertisedPort  = "8080"
	playerSubscriptionTTL = 365 * 24 * time.Hour
)

// PlayerHandler is the legacy player gateway: one GET endpoint whose query
// parameters select the operation.  It authenticates inline credentials on
// every request and re-marshals the neutral projections into the snake_case
// wire shapes players expect.
type PlayerHandler struct {
	Svc      *streaming.Service
	Cache    *cache.Cache
	Identity *identity.Service
	Xtream   *repository.XtreamRepo
}

func NewPlayerHandler(svc *streaming.Service, c *cache.Cache, ident *identity.Service, xtream *repository.XtreamRepo) *PlayerHandler {
	return &PlayerHandler{Svc: svc, Cache: c, Identity: ident, Xtream: xtream}
}

// Get dispatches on the action query parameter.  No action means the
// credential handshake.  Credentials are checked before any action runs.
func (h *PlayerHandler) Get(c echo.Context) error {
	username := c.QueryParam("username")
	password := c.QueryParam("password")
	if username == "" || password == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Username and password are required"})
	}

	ctx := c.Request().Context()

	action := c.QueryParam("action")
	if action == "" {
		return h.handshake(c, username, password)
	}

	if _, err := h.Identity.Authenticate(ctx, username, password); err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
		}
		log.Error().Err(err).Str("username", username).Msg("player auth failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	run, ok := playerActions[strings.ToLower(action)]
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid action"})
	}
	return run(h, c)
}

// playerActions is the closed set of operations the protocol supports.
// Anything else is a 400, never a silent fallthrough.
var playerActions = map[string]func(*PlayerHandler, echo.Context) error{
	"get_live_categories": func(h *PlayerHandler, c echo.Context) error {
		return h.liveCategories(c)
	},
	"get_live_streams": func(h *PlayerHandler, c echo.Context) error {
		return h.liveStreams(c, c.QueryParam("category_id"))
	},
	"get_vod_categories": func(h *PlayerHandler, c echo.Context) error {
		return h.vodCategories(c)
	},
	"get_vod_streams": func(h *PlayerHandler, c echo.Context) error {
		return h.vodStreams(c, c.QueryParam("category_id"))
	},
	"get_vod_info": func(h *PlayerHandler, c echo.Context) error {
		return h.vodInfo(c, c.QueryParam("vod_id"))
	},
	"get_series_categories": func(h *PlayerHandler, c echo.Context) error {
		return h.seriesCategories(c)
	},
	"get_series": func(h *PlayerHandler, c echo.Context) error {
		return h.series(c, c.QueryParam("category_id"))
	},
	"get_series_info": func(h *PlayerHandler, c echo.Context) error {
		return h.seriesInfo(c, c.QueryParam("series_id"))
	},
	"get_epg": func(h *PlayerHandler, c echo.Context) error {
		return h.epg(c, c.QueryParam("category_id"))
	},
	"get_short_epg": func(h *PlayerHandler, c echo.Context) error {
		return h.shortEpg(c, c.QueryParam("stream_id"), c.QueryParam("limit"))
	},
	"get_simple_data_table": func(h *PlayerHandler, c echo.Context) error {
		return h.simpleDataTable(c, c.QueryParam("stream_id"))
	},
}

// handshake verifies the credentials and answers with the account summary
// players expect before they send any action.  Accounts with a pending
// step-up (2FA, unverified email) fail the same way bad credentials do;
// this protocol has no channel to express anything else.  The payload is
// never cached: it embeds the current time and caching it by username would
// skip the password check within the TTL.
func (h *PlayerHandler) handshake(c echo.Context, username, password string) error {
	ctx := c.Request().Context()

	user, err := h.Identity.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid username or password"})
		}
		log.Error().Err(err).Str("username", username).Msg("player handshake failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	h.trackConnection(c, user)

	now := time.Now().UTC()
	return c.JSON(http.StatusOK, playerUserInfo{
		Username:             username,
		Password:             password,
		Message:              "User authenticated successfully",
		Auth:                 1,
		Status:               playerStatusActive,
		ExpDate:              strconv.FormatInt(now.Add(playerSubscriptionTTL).Unix(), 10),
		IsTrial:              "0",
		ActiveCons:           "1",
		CreatedAt:            strconv.FormatInt(now.Unix(), 10),
		MaxConnections:       playerMaxConnections,
		AllowedOutputFormats: []string{"m3u8", "ts", "mp4"},
		ServerURL:            baseURL(c),
		Port:                 playerAdvertisedPort,
	})
}

// trackConnection records the session against the player account ledger and
// publishes the connected event.  Both are best effort; the handshake never
// fails because of them.
func (h *PlayerHandler) trackConnection(c echo.Context, user *model.User) {
	ip := c.RealIP()
	userAgent := c.Request().UserAgent()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		defer cancel()

		if h.Xtream != nil {
			if xu, err := h.Xtream.GetByUsername(ctx, user.Username); err == nil {
				if err := h.Xtream.RecordConnection(ctx, xu.ID, ip, userAgent); err != nil {
					log.Warn().Err(err).Str("username", user.Username).Msg("record connection failed")
				}
			} else if !errors.Is(err, repository.ErrXtreamUserNotFound) {
				log.Warn().Err(err).Str("username", user.Username).Msg("player account lookup failed")
			}
		}

		_ = queue_publisher.PublishPlayerConnected(ctx, queue.PlayerConnectedEvent{
			UserID:      user.ID,
			Username:    user.Username,
			IPAddress:   ip,
			UserAgent:   userAgent,
			ConnectedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}()
}

func (h *PlayerHandler) liveCategories(c echo.Context) error {
	key := cache.Key("xtream", "live_categories")
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) ([]playerCategory, error) {
			cats, err := h.Svc.LiveCategories(ctx)
			return toPlayerCategories(cats), err
		})
	if err != nil {
		return playerError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlayerHandler) vodCategories(c echo.Context) error {
	key := cache.Key("xtream", "vod_categories")
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) ([]playerCategory, error) {
			cats, err := h.Svc.VodCategories(ctx)
			return toPlayerCategories(cats), err
		})
	if err != nil {
		return playerError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlayerHandler) seriesCategories(c echo.Context) error {
	key := cache.Key("xtream", "series_categories")
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) ([]playerCategory, error) {
			cats, err := h.Svc.SeriesCategories(ctx)
			return toPlayerCategories(cats), err
		})
	if err != nil {
		return playerError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlayerHandler) liveStreams(c echo.Context, categoryID string) error {
	key := cache.Key("xtream", "live_streams", categoryFilterKey(categoryID))
	streams, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) ([]streaming.Stream, error) {
			return h.Svc.LiveStreams(ctx, categoryID)
		})
	if err != nil {
		return playerError(c, err)
	}
	out := make([]playerStream, 0, len(streams))
	for i, s := range streams {
		out = append(out, playerStream{
			Num:          i + 1,
			Name:         s.Name,
			StreamType:   s.StreamType,
			StreamID:     s.StreamID,
			StreamIcon:   absolutize(c, s.StreamIcon),
			EpgChannelID: s.EpgChannelID,
			Added:        s.Added,
			CategoryID:   s.CategoryID,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlayerHandler) vodStreams(c echo.Context, categoryID string) error {
	key := cache.Key("xtream", "vod_streams", categoryFilterKey(categoryID))
	streams, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) ([]streaming.VodStream, error) {
			return h.Svc.VodStreams(ctx, categoryID)
		})
	if err != nil {
		return playerError(c, err)
	}
	out := make([]playerVodStream, 0, len(streams))
	for i, s := range streams {
		out = append(out, playerVodStream{
			Num:                i + 1,
			Name:               s.Name,
			StreamType:         s.StreamType,
			StreamID:           s.StreamID,
			StreamIcon:         absolutize(c, s.StreamIcon),
			Rating:             s.Rating,
			Rating5Based:       s.Rating5Based,
			Added:              s.Added,
			CategoryID:         s.CategoryID,
			ContainerExtension: s.ContainerExtension,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlayerHandler) vodInfo(c echo.Context, vodID string) error {
	if vodID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vod_id parameter is required"})
	}
	key := cache.Key("xtream", "vod_info", vodID)
	info, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) (*streaming.VodInfo, error) {
			return h.Svc.VodInfo(ctx, vodID)
		})
	if err != nil {
		if errors.Is(err, repository.ErrVodNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "VOD not found"})
		}
		return playerError(c, err)
	}
	d := info.Info
	return c.JSON(http.StatusOK, playerVodInfo{Info: playerVodInfoDetail{
		Name:               d.Name,
		Cover:              absolutize(c, d.Cover),
		Plot:               d.Plot,
		Cast:               d.Cast,
		Director:           d.Director,
		Genre:              d.Genre,
		ReleaseDate:        d.ReleaseDate,
		Rating:             d.Rating,
		Rating5Based:       d.Rating5Based,
		Duration:           d.Duration,
		DurationSecs:       d.DurationSecs,
		StreamType:         d.StreamType,
		StreamID:           d.StreamID,
		ContainerExtension: d.ContainerExtension,
	}})
}

func (h *PlayerHandler) series(c echo.Context, categoryID string) error {
	key := cache.Key("xtream", "series", categoryFilterKey(categoryID))
	list, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) ([]streaming.Series, error) {
			return h.Svc.SeriesList(ctx, categoryID)
		})
	if err != nil {
		return playerError(c, err)
	}
	out := make([]playerSeries, 0, len(list))
	for i, s := range list {
		out = append(out, playerSeries{
			Num:          i + 1,
			Name:         s.Name,
			SeriesID:     s.SeriesID,
			Cover:        absolutize(c, s.Cover),
			Plot:         s.Plot,
			Cast:         s.Cast,
			Director:     s.Director,
			Genre:        s.Genre,
			ReleaseDate:  s.ReleaseDate,
			Rating:       s.Rating,
			Rating5Based: s.Rating5Based,
			CategoryID:   s.CategoryID,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlayerHandler) seriesInfo(c echo.Context, seriesID string) error {
	if seriesID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "series_id parameter is required"})
	}
	key := cache.Key("xtream", "series_info", seriesID)
	info, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) (*streaming.SeriesInfo, error) {
			return h.Svc.SeriesInfo(ctx, seriesID)
		})
	if err != nil {
		if errors.Is(err, repository.ErrSeriesNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Series not found"})
		}
		return playerError(c, err)
	}

	episodes := make(map[string][]playerEpisode, len(info.Episodes))
	for season, eps := range info.Episodes {
		converted := make([]playerEpisode, 0, len(eps))
		for _, e := range eps {
			converted = append(converted, playerEpisode{
				ID:                 e.ID,
				Title:              e.Title,
				ContainerExtension: e.ContainerExtension,
				Info: playerEpisodeInfo{
					Plot:         e.Info.Plot,
					Duration:     e.Info.Duration,
					DurationSecs: e.Info.DurationSecs,
					MovieImage:   absolutize(c, e.Info.MovieImage),
					Released:     e.Info.Released,
				},
			})
		}
		episodes[season] = converted
	}

	d := info.Info
	return c.JSON(http.StatusOK, playerSeriesInfo{
		Info: playerSeriesInfoDetail{
			Name:         d.Name,
			Cover:        absolutize(c, d.Cover),
			Plot:         d.Plot,
			Cast:         d.Cast,
			Director:     d.Director,
			Genre:        d.Genre,
			ReleaseDate:  d.ReleaseDate,
			Rating:       d.Rating,
			Rating5Based: d.Rating5Based,
			Duration:     d.Duration,
			DurationSecs: d.DurationSecs,
			StreamType:   d.StreamType,
			SeriesID:     d.SeriesID,
		},
		Episodes: episodes,
	})
}

func (h *PlayerHandler) epg(c echo.Context, categoryID string) error {
	key := cache.Key("xtream", "epg", categoryFilterKey(categoryID))
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) (map[string][]playerEpg, error) {
			grouped, err := h.Svc.Epg(ctx, categoryID)
			if err != nil {
				return nil, err
			}
			converted := make(map[string][]playerEpg, len(grouped))
			for channel, entries := range grouped {
				converted[channel] = toPlayerEpg(entries)
			}
			return converted, nil
		})
	if err != nil {
		return playerError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlayerHandler) shortEpg(c echo.Context, streamID, limitParam string) error {
	if streamID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stream_id parameter is required"})
	}
	limit, err := strconv.Atoi(limitParam)
	if err != nil || limit <= 0 {
		limit = 20
	}
	key := cache.Key("xtream", "short_epg", streamID, strconv.Itoa(limit))
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) ([]playerShortEpg, error) {
			wrapped, err := h.Svc.ShortEpg(ctx, streamID, limit)
			if err != nil {
				return nil, err
			}
			converted := make([]playerShortEpg, 0, len(wrapped))
			for _, se := range wrapped {
				converted = append(converted, playerShortEpg{ID: se.ID, EpgList: toPlayerEpg(se.EpgList)})
			}
			return converted, nil
		})
	if err != nil {
		return playerError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlayerHandler) simpleDataTable(c echo.Context, streamID string) error {
	if streamID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stream_id parameter is required"})
	}
	key := cache.Key("xtream", "simple_data_table", streamID)
	out, _, err := cache.GetOrSet(c.Request().Context(), h.Cache, key,
		func(ctx context.Context) (*playerSimpleDataTable, error) {
			table, err := h.Svc.SimpleDataTable(ctx, streamID)
			if err != nil {
				return nil, err
			}
			converted := &playerSimpleDataTable{EpgListings: make(map[string][]playerEpg, len(table.EpgListings))}
			for id, entries := range table.EpgListings {
				converted.EpgListings[id] = toPlayerEpg(entries)
			}
			return converted, nil
		})
	if err != nil {
		return playerError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func toPlayerCategories(cats []streaming.Category) []playerCategory {
	out := make([]playerCategory, 0, len(cats))
	for _, ct := range cats {
		out = append(out, playerCategory{
			CategoryID:   ct.CategoryID,
			CategoryName: ct.CategoryName,
			ParentID:     ct.ParentID,
		})
	}
	return out
}

func playerError(c echo.Context, err error) error {
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("player request failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
}
