package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/leetcode-tracker/internal/model"
)

// Root is the liveness message served at GET /.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Message{Message: "Leetcode Tracker API is running"})
}

// Health is a plain-text check for load balancers.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
