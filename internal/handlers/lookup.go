package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"asn2ip/internal/artifact"
	"asn2ip/internal/config"
	"asn2ip/internal/models"
	"asn2ip/internal/validation"
)

// LookupHandler serves the lookup form, its results and the prefix download.
type LookupHandler struct {
	runner   Runner
	artifact ArtifactReader
	cfg      *config.Config
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(runner Runner, art ArtifactReader, cfg *config.Config) *LookupHandler {
	return &LookupHandler{runner: runner, artifact: art, cfg: cfg}
}

// Index renders the lookup form prefilled with the default organization,
// with a link to the current artifact when one exists.
func (h *LookupHandler) Index(c fiber.Ctx) error {
	data := fiber.Map{
		"User":         c.Locals("user"),
		"Organization": h.cfg.DefaultOrgName,
	}
	if runID, ok := h.artifact.LastRun(); ok {
		data["LatestRun"] = runID
	}
	return c.Render("index", MergeBranding(data, h.cfg))
}

// Run executes a lookup for the submitted organization and renders the
// results below the form.
func (h *LookupHandler) Run(c fiber.Ctx) error {
	org := c.FormValue("organization")
	if ok, msg := validation.ValidateOrganization(org); !ok {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	report, err := h.runner.Run(c.Context(), org)
	if err != nil {
		slog.Error("lookup run failed", "organization", org, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "The lookup could not be completed. Please try again.")
	}

	return c.Render("index", MergeBranding(fiber.Map{
		"User":         c.Locals("user"),
		"Organization": report.Organization,
		"Report":       report,
		"Columns":      models.TableColumns,
	}, h.cfg))
}

// Download serves the prefix artifact for a run as a text attachment.
func (h *LookupHandler) Download(c fiber.Ctx) error {
	runID, err := uuid.Parse(c.Query("run"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid run id")
	}

	data, err := h.artifact.Read(runID)
	if err != nil {
		switch {
		case errors.Is(err, artifact.ErrNoArtifact):
			return fiber.NewError(fiber.StatusNotFound, "No results are available for download yet.")
		case errors.Is(err, artifact.ErrSuperseded):
			return fiber.NewError(fiber.StatusConflict, "These results were replaced by a newer lookup. Run the lookup again to download them.")
		default:
			return err
		}
	}

	c.Attachment(artifact.FileName)
	c.Set(fiber.HeaderContentType, artifact.MediaType+"; charset=utf-8")
	return c.Send(data)
}
