package api

import (
	"github.com/gofiber/fiber/v3"
)

// envelope is the body of every JSON API response. Exactly one of Data and
// Error is set.
type envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

const (
	statusOK    = "ok"
	statusError = "error"
)

func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(envelope{Status: statusOK, Data: data})
}

func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{Status: statusError, Error: message})
}
