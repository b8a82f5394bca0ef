package middleware

import (
	"database/sql"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leetcode-tracker/internal/database"
)

// SessionKey is where UnitOfWork stores the request's *database.Session.
const SessionKey = "db_session"

// UnitOfWork opens one database session per request and releases it on every
// exit path. Handlers commit explicitly; anything left uncommitted when the
// handler returns is rolled back.
func UnitOfWork(db *sql.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := database.Begin(c.Request().Context(), db)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := s.Close(); cerr != nil {
					GetLogger(c).Warn().Err(cerr).Msg("session rollback failed")
				}
			}()

			c.Set(SessionKey, s)
			return next(c)
		}
	}
}

// Session returns the request's session. It panics when UnitOfWork is not
// installed on the route, which is a wiring bug.
func Session(c echo.Context) *database.Session {
	s, ok := c.Get(SessionKey).(*database.Session)
	if !ok {
		panic("middleware: no database session on request " + c.Path())
	}
	return s
}
