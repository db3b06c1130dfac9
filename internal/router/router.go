// Package router defines how HTTP routes are registered for both gateways.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ekincan/iptv-gateway/internal/handler"
	"github.com/ekincan/iptv-gateway/internal/middleware"
	"github.com/ekincan/iptv-gateway/internal/model"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the modern API's auth endpoints.  Register and login
// live under /api/v1/auth; the profile endpoint requires a bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	me := e.Group("/api/v1")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.Use(middleware.RequireRole(model.RoleAdministrator, model.RoleUser))
	me.GET("/me", a.Me)
}

// RegisterStreaming wires the modern catalog API under /api/v1/streaming.
// Every endpoint requires a bearer token.
func RegisterStreaming(e *echo.Echo, s *handler.StreamingHandler, jwtSecret string) {
	g := e.Group("/api/v1/streaming")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdministrator, model.RoleUser))

	g.GET("/live/categories", s.LiveCategories)
	g.GET("/live/streams", s.LiveStreams)
	g.GET("/vod/categories", s.VodCategories)
	g.GET("/vod/streams", s.VodStreams)
	g.GET("/vod/:vodId", s.VodInfo)
	g.GET("/series/categories", s.SeriesCategories)
	g.GET("/series", s.Series)
	g.GET("/series/:seriesId", s.SeriesInfo)
	g.GET("/epg", s.Epg)
	g.GET("/epg/short/:streamId", s.ShortEpg)
	g.GET("/epg/table/:streamId", s.SimpleDataTable)
}

// RegisterPlayer wires the legacy gateway.  The protocol is one GET whose
// query parameters carry the credentials and the operation, so no JWT
// middleware applies here; the handler checks credentials itself.
func RegisterPlayer(e *echo.Echo, p *handler.PlayerHandler) {
	e.GET("/api/player", p.Get)
}
