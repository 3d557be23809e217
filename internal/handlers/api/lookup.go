package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"asn2ip/internal/handlers"
	"asn2ip/internal/validation"
)

// LookupHandler runs lookups via JSON API.
type LookupHandler struct {
	runner handlers.Runner
}

// NewLookupHandler creates a new API lookup handler.
func NewLookupHandler(runner handlers.Runner) *LookupHandler {
	return &LookupHandler{runner: runner}
}

// Lookup runs the pipeline for ?org= and returns the full report. Empty
// results and upstream failures are reported in the report's notices.
func (h *LookupHandler) Lookup(c fiber.Ctx) error {
	org := c.Query("org")
	if ok, msg := validation.ValidateOrganization(org); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	report, err := h.runner.Run(c.Context(), org)
	if err != nil {
		slog.Error("api lookup failed", "organization", org, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "lookup could not be completed")
	}

	return jsonSuccess(c, report)
}
