package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sq-invest/crm-service/internal/api/dto"
	"github.com/sq-invest/crm-service/internal/service"
	apperrors "github.com/sq-invest/crm-service/pkg/util/errorutil"
)

// DirectoryHandler exposes the roster.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// List handles GET /directory.
func (h *DirectoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.directory.List()})
}

// Update handles PUT /directory/:id.
func (h *DirectoryHandler) Update(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	var req dto.DirectoryEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	entry, err := h.directory.Update(c.UserContext(), principal, req.Entry(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": entry})
}

// Remove handles DELETE /directory/:id.
func (h *DirectoryHandler) Remove(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	if err := h.directory.Remove(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
