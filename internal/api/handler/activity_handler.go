package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/webstore/storefront-api/internal/core/ports"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ActivityHandler exposes the auth activity trail to administrators.
type ActivityHandler struct {
	repo ports.ActivityRepository
}

func NewActivityHandler(repo ports.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{repo: repo}
}

// List returns the most recent auth activity entries.
//
// @Summary      Recent auth activity
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries to return (default 50, max 200)"
// @Success      200    {object}  response
// @Failure      401    {object}  response
// @Failure      403    {object}  response
// @Failure      500    {object}  response
// @Router       /admin/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	limit := defaultActivityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusForbidden, response{Code: http.StatusForbidden, Msg: "Invalid params"})
		}
		limit = n
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	entries, err := h.repo.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response{Code: http.StatusInternalServerError, Msg: err.Error()})
	}

	return c.JSON(http.StatusOK, response{Code: http.StatusOK, Msg: "OK", Data: activityData{Activities: entries}})
}
