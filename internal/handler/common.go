// Package handler implements the HTTP endpoints. Every handler that touches
// storage runs inside the request's database session and commits it
// explicitly before writing a success response.
package handler

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leetcode-tracker/internal/errs"
	"github.com/iliyamo/leetcode-tracker/internal/middleware"
	"github.com/iliyamo/leetcode-tracker/internal/model"
	"github.com/iliyamo/leetcode-tracker/internal/queue"
	"github.com/iliyamo/leetcode-tracker/internal/repository"
)

// EventPublisher delivers problem events. service.Publisher implements it.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ProblemEvent) error
}

// ActivityReader serves a user's activity feed. repository.ActivityRepo
// implements it.
type ActivityReader interface {
	Recent(ctx context.Context, username string) ([]queue.ProblemEvent, error)
}

const publishTimeout = 3 * time.Second

// pathParam returns the decoded path parameter. Echo routes on URL.Path,
// which is already decoded, unless the request carries a RawPath (an escaped
// slash, for instance); only then are the params still escaped.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func lookupUser(c echo.Context, users *repository.UserRepo, username string) (*model.User, error) {
	u, err := users.GetByUsername(c.Request().Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return u, nil
}

// publish sends ev after the write has committed. A failure is logged and
// never reaches the client.
func publish(c echo.Context, events EventPublisher, typ queue.EventType, p *model.Problem) {
	if events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), publishTimeout)
	defer cancel()

	ev := queue.NewProblemEvent(typ, p)
	if err := events.Publish(ctx, ev); err != nil {
		middleware.GetLogger(c).Warn().Err(err).
			Str("event_id", ev.ID).
			Str("event_type", string(typ)).
			Msg("publish problem event failed")
	}
}
