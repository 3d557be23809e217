package handlers

import (
	"github.com/gofiber/fiber/v3"

	"asn2ip/internal/config"
)

// HistoryHandler renders recently recorded runs.
type HistoryHandler struct {
	store HistoryStore
	cfg   *config.Config
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(store HistoryStore, cfg *config.Config) *HistoryHandler {
	return &HistoryHandler{store: store, cfg: cfg}
}

// Index renders the 50 most recent runs.
func (h *HistoryHandler) Index(c fiber.Ctx) error {
	runs, err := h.store.ListRecentRuns(c.Context(), 50)
	if err != nil {
		return err
	}

	return c.Render("history", MergeBranding(fiber.Map{
		"User": c.Locals("user"),
		"Runs": runs,
	}, h.cfg))
}
