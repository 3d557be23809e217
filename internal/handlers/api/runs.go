package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"asn2ip/internal/db"
	"asn2ip/internal/handlers"
)

// RunsHandler exposes run history via JSON API.
type RunsHandler struct {
	store handlers.HistoryStore
}

// NewRunsHandler creates a new API runs handler.
func NewRunsHandler(store handlers.HistoryStore) *RunsHandler {
	return &RunsHandler{store: store}
}

// List returns the most recent runs. ?limit= defaults to 20, max 200.
func (h *RunsHandler) List(c fiber.Ctx) error {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return jsonError(c, fiber.StatusBadRequest, "invalid limit")
		}
		limit = min(n, 200)
	}

	runs, err := h.store.ListRecentRuns(c.Context(), limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list runs")
	}

	return jsonSuccess(c, runs)
}

// Get returns a single run by ID.
func (h *RunsHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid run id")
	}

	run, err := h.store.GetRun(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrRunNotFound) {
			return jsonError(c, fiber.StatusNotFound, "run not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to get run")
	}

	return jsonSuccess(c, run)
}
