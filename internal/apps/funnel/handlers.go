package funnel

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mathaussantos/funipro-backend/internal/tenant"
)

type DealHandler struct {
	service *DealService
}

func NewDealHandler(service *DealService) *DealHandler {
	return &DealHandler{service: service}
}

func (h *DealHandler) List(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	deals, err := h.service.List(userID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(deals)
}

func (h *DealHandler) ListArchived(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	deals, err := h.service.ListArchived(userID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(deals)
}

func (h *DealHandler) Get(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	dealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid deal id")
	}
	deal, err := h.service.Get(userID, dealID)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(deal)
}

func (h *DealHandler) Create(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req CreateDealRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	deal, err := h.service.Create(userID, &req)
	if err != nil {
		return dealError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(deal)
}

func (h *DealHandler) Update(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	dealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid deal id")
	}
	var req UpdateDealRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	deal, err := h.service.Update(userID, dealID, &req)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(deal)
}

func (h *DealHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	dealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid deal id")
	}
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Status == nil {
		return badRequest(c, "status is required")
	}
	deal, err := h.service.UpdateStatus(userID, dealID, *req.Status)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(deal)
}

func (h *DealHandler) Archive(c *fiber.Ctx) error {
	return h.setArchived(c, true)
}

func (h *DealHandler) Unarchive(c *fiber.Ctx) error {
	return h.setArchived(c, false)
}

func (h *DealHandler) setArchived(c *fiber.Ctx, archived bool) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	dealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid deal id")
	}
	deal, err := h.service.SetArchived(userID, dealID, archived)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(deal)
}

func (h *DealHandler) Delete(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	dealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid deal id")
	}
	if err := h.service.Delete(userID, dealID); err != nil {
		return dealError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DealHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	dashboard, err := h.service.Dashboard(userID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(dashboard)
}

func dealError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrDealNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrNotesTooLong),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidPriority),
		errors.Is(err, ErrInvalidPaymentMethod):
		return badRequest(c, err.Error())
	}
	return internalError(c)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
