// Package router wires handlers to their HTTP routes.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leetcode-tracker/internal/handler"
	"github.com/iliyamo/leetcode-tracker/internal/middleware"
)

// RegisterRoutes mounts every endpoint on e. Routes that touch storage run
// inside a per-request database session.
func RegisterRoutes(e *echo.Echo, db *sql.DB, p *handler.ProblemHandler, u *handler.UserHandler) {
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)

	// Static segment takes precedence over :name in echo's router. The filter
	// never reads storage, so it runs without a session.
	e.GET("/problems/filter", p.Filter)

	uow := middleware.UnitOfWork(db)

	problems := e.Group("/problems", uow)
	problems.POST("", p.Create)
	problems.GET("", p.List)
	problems.GET("/:name", p.Get)
	problems.PUT("/:name", p.Update)
	problems.DELETE("/:name", p.Delete)

	e.GET("/stats", p.Stats, uow)

	users := e.Group("/users", uow)
	users.POST("", u.Create)
	users.GET("", u.List)
	users.GET("/:username/problems", u.Problems)
	users.GET("/:username/activity", u.ActivityFeed)
}
