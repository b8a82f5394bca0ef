package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leetcode-tracker/internal/errs"
	"github.com/iliyamo/leetcode-tracker/internal/middleware"
	"github.com/iliyamo/leetcode-tracker/internal/model"
	"github.com/iliyamo/leetcode-tracker/internal/queue"
	"github.com/iliyamo/leetcode-tracker/internal/repository"
	"github.com/iliyamo/leetcode-tracker/internal/validation"
)

// UserHandler serves /users. Activity may be nil when no feed is configured.
type UserHandler struct {
	Activity ActivityReader
}

func NewUserHandler(activity ActivityReader) *UserHandler {
	return &UserHandler{Activity: activity}
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var req model.UserCreate
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	s := middleware.Session(c)
	users := repository.NewUserRepo(s)

	if _, err := users.GetByUsername(ctx, req.Username); err == nil {
		return errs.NewConflictError("Username already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	u := &model.User{Username: req.Username}
	if err := users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errs.NewConflictError("Username already exists")
		}
		return err
	}
	if err := s.Commit(); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	s := middleware.Session(c)
	users, err := repository.NewUserRepo(s).List(c.Request().Context())
	if err != nil {
		return err
	}
	if err := s.Commit(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Problems handles GET /users/:username/problems.
func (h *UserHandler) Problems(c echo.Context) error {
	s := middleware.Session(c)
	u, err := lookupUser(c, repository.NewUserRepo(s), pathParam(c, "username"))
	if err != nil {
		return err
	}
	items, err := repository.NewProblemRepo(s).ListByUser(c.Request().Context(), u.ID)
	if err != nil {
		return err
	}
	if err := s.Commit(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ActivityFeed handles GET /users/:username/activity, newest event first.
// The feed is best effort: when its backend fails the error is logged and
// the response is an empty list.
func (h *UserHandler) ActivityFeed(c echo.Context) error {
	s := middleware.Session(c)
	u, err := lookupUser(c, repository.NewUserRepo(s), pathParam(c, "username"))
	if err != nil {
		return err
	}
	if err := s.Commit(); err != nil {
		return err
	}

	events := []queue.ProblemEvent{}
	if h.Activity != nil {
		recent, err := h.Activity.Recent(c.Request().Context(), u.Username)
		if err != nil {
			middleware.GetLogger(c).Warn().Err(err).
				Str("username", u.Username).
				Msg("read activity feed failed")
		} else if recent != nil {
			events = recent
		}
	}
	return c.JSON(http.StatusOK, events)
}
