package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sq-invest/crm-service/internal/api/dto"
	"github.com/sq-invest/crm-service/internal/pipeline"
	"github.com/sq-invest/crm-service/internal/service"
	apperrors "github.com/sq-invest/crm-service/pkg/util/errorutil"
)

// PipelineHandler exposes the caller's pipeline board.
type PipelineHandler struct {
	pipeline *service.PipelineService
}

// NewPipelineHandler constructs handler.
func NewPipelineHandler(pipelineService *service.PipelineService) *PipelineHandler {
	return &PipelineHandler{pipeline: pipelineService}
}

// Board handles GET /pipeline?search=&priority=&investmentType=.
func (h *PipelineHandler) Board(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	criteria := pipeline.Criteria{
		Search:         c.Query("search"),
		Priority:       c.Query("priority", pipeline.AllPriorities),
		InvestmentType: c.Query("investmentType", pipeline.AllInvestmentTypes),
	}
	cols := h.pipeline.Columns(principal, criteria)
	resp := dto.BoardResponse{
		Columns: []dto.ColumnResponse{
			{ID: pipeline.BucketLeads, Title: pipeline.BucketLeads.Title(), Contacts: cols.Leads},
			{ID: pipeline.BucketProspects, Title: pipeline.BucketProspects.Title(), Contacts: cols.Prospects},
			{ID: pipeline.BucketClients, Title: pipeline.BucketClients.Title(), Contacts: cols.Clients},
		},
		InvestmentTypes: h.pipeline.InvestmentTypes(principal),
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Stats handles GET /pipeline/stats.
func (h *PipelineHandler) Stats(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.pipeline.Stats(principal)})
}

// Templates handles GET /pipeline/templates.
func (h *PipelineHandler) Templates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.pipeline.Templates()})
}

// Move handles POST /pipeline/move.
func (h *PipelineHandler) Move(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	var req dto.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	move, err := h.pipeline.Move(c.UserContext(), principal, service.MoveRequest{
		ContactID:   req.ContactID,
		Source:      req.Source,
		Destination: req.Destination,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.MoveResponse{
		Contact:    move.Contact,
		FromStatus: move.FromStatus,
		ToStatus:   move.ToStatus,
		Changed:    move.Changed,
	}})
}

// Bulk handles POST /pipeline/bulk.
func (h *PipelineHandler) Bulk(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	var req dto.BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	affected, err := h.pipeline.Bulk(c.UserContext(), principal, req.IDs, req.Action)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"affected": affected}})
}

// AddContact handles POST /pipeline/contacts.
func (h *PipelineHandler) AddContact(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	contact, err := h.pipeline.AddContact(c.UserContext(), principal, req.Input(), req.Template)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": contact})
}

// EditContact handles PUT /pipeline/contacts/:id.
func (h *PipelineHandler) EditContact(c *fiber.Ctx) error {
	principal, err := principalOf(c)
	if err != nil {
		return err
	}
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	contact, err := h.pipeline.UpdateContact(principal, c.Params("id"), req.Apply)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": contact})
}
