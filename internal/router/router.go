// Package router wires HTTP routes to handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/allergy-tracker/internal/handler"
	"github.com/iliyamo/allergy-tracker/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. register/login/refresh/
// logout are open; /auth/me sits behind the guard.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.RequireAuth())
}

// RegisterAPI registers the protected journal endpoints. The
// authentication gate runs globally; RequireAuth here is what actually
// turns an anonymous request into a 401. The response cache only wraps
// the exposure-type reads because that catalog is shared across users,
// while entries are user-scoped and must never be served from a shared
// cache.
func RegisterAPI(e *echo.Echo, en *handler.EntryHandler, ex *handler.ExposureTypeHandler, cache echo.MiddlewareFunc) {
	api := e.Group("/api", middleware.RequireAuth())

	api.GET("/entries", en.List)
	api.GET("/entries/:id", en.Get)
	api.POST("/entries", en.Create)
	api.PUT("/entries/:id", en.Update)
	api.DELETE("/entries/:id", en.Delete)

	api.GET("/exposure-types", ex.List, cache)
	api.GET("/exposure-types/:id", ex.Get, cache)
	api.POST("/exposure-types", ex.Create)
}
