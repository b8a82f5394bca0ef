package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leetcode-tracker/internal/errs"
	"github.com/iliyamo/leetcode-tracker/internal/middleware"
	"github.com/iliyamo/leetcode-tracker/internal/model"
	"github.com/iliyamo/leetcode-tracker/internal/queue"
	"github.com/iliyamo/leetcode-tracker/internal/repository"
	"github.com/iliyamo/leetcode-tracker/internal/validation"
)

const msgDuplicateProblem = "Problem with this name already exists for this user"

// ProblemHandler serves /problems and /stats. Events may be nil.
type ProblemHandler struct {
	Events EventPublisher
}

func NewProblemHandler(events EventPublisher) *ProblemHandler {
	return &ProblemHandler{Events: events}
}

// Create handles POST /problems.
func (h *ProblemHandler) Create(c echo.Context) error {
	var req model.ProblemCreate
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	s := middleware.Session(c)
	problems := repository.NewProblemRepo(s)

	owner, err := lookupUser(c, repository.NewUserRepo(s), req.Username)
	if err != nil {
		return err
	}
	if _, err := problems.IDByUserAndName(ctx, owner.ID, req.Name); err == nil {
		return errs.NewConflictError(msgDuplicateProblem)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	p := req.Problem(owner.ID)
	p.Username = owner.Username
	if err := problems.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errs.NewConflictError(msgDuplicateProblem)
		}
		return err
	}
	if err := s.Commit(); err != nil {
		return err
	}

	publish(c, h.Events, queue.ProblemCreated, p)
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /problems.
func (h *ProblemHandler) List(c echo.Context) error {
	s := middleware.Session(c)
	items, err := repository.NewProblemRepo(s).List(c.Request().Context())
	if err != nil {
		return err
	}
	if err := s.Commit(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Filter handles GET /problems/filter. Filtering by difficulty or topic is
// not implemented; the endpoint ignores its query, never touches storage and
// always answers with an empty list.
func (h *ProblemHandler) Filter(c echo.Context) error {
	return c.JSON(http.StatusOK, []*model.Problem{})
}

// find resolves the :name path parameter, optionally scoped by ?username=.
func find(c echo.Context, problems *repository.ProblemRepo) (*model.Problem, error) {
	p, err := problems.GetByName(c.Request().Context(), pathParam(c, "name"), c.QueryParam("username"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError("Problem not found")
		}
		return nil, err
	}
	return p, nil
}

// Get handles GET /problems/:name.
func (h *ProblemHandler) Get(c echo.Context) error {
	s := middleware.Session(c)
	p, err := find(c, repository.NewProblemRepo(s))
	if err != nil {
		return err
	}
	if err := s.Commit(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Update handles PUT /problems/:name. Every field is replaced, including the
// owner, which is resolved from the payload's username.
func (h *ProblemHandler) Update(c echo.Context) error {
	var req model.ProblemCreate
	if err := validation.BindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	s := middleware.Session(c)
	problems := repository.NewProblemRepo(s)

	current, err := find(c, problems)
	if err != nil {
		return err
	}
	owner, err := lookupUser(c, repository.NewUserRepo(s), req.Username)
	if err != nil {
		return err
	}
	if id, err := problems.IDByUserAndName(ctx, owner.ID, req.Name); err == nil && id != current.ID {
		return errs.NewConflictError(msgDuplicateProblem)
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	p := req.Problem(owner.ID)
	p.Username = owner.Username
	if err := problems.Update(ctx, current.ID, p); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errs.NewConflictError(msgDuplicateProblem)
		}
		return err
	}
	if err := s.Commit(); err != nil {
		return err
	}

	publish(c, h.Events, queue.ProblemUpdated, p)
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /problems/:name.
func (h *ProblemHandler) Delete(c echo.Context) error {
	s := middleware.Session(c)
	problems := repository.NewProblemRepo(s)

	p, err := find(c, problems)
	if err != nil {
		return err
	}
	if err := problems.Delete(c.Request().Context(), p.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errs.NewNotFoundError("Problem not found")
		}
		return err
	}
	if err := s.Commit(); err != nil {
		return err
	}

	publish(c, h.Events, queue.ProblemDeleted, p)
	return c.JSON(http.StatusOK, model.Message{Message: fmt.Sprintf("Problem '%s' deleted", p.Name)})
}

// Stats handles GET /stats. Counts are computed on every request.
func (h *ProblemHandler) Stats(c echo.Context) error {
	s := middleware.Session(c)
	stats, err := repository.NewProblemRepo(s).Stats(c.Request().Context())
	if err != nil {
		return err
	}
	if err := s.Commit(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
