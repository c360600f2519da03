package inventory

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mathaussantos/funipro-backend/internal/tenant"
)

type ItemHandler struct {
	service *ItemService
}

func NewItemHandler(service *ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

func (h *ItemHandler) List(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	items, err := h.service.List(userID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(items)
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid item id")
	}
	item, err := h.service.Get(userID, itemID)
	if err != nil {
		return itemError(c, err)
	}
	return c.JSON(item)
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	item, err := h.service.Create(userID, &req)
	if err != nil {
		return itemError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid item id")
	}
	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	item, err := h.service.Update(userID, itemID, &req)
	if err != nil {
		return itemError(c, err)
	}
	return c.JSON(item)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid item id")
	}
	if err := h.service.Delete(userID, itemID); err != nil {
		return itemError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ItemHandler) Entry(c *fiber.Ctx) error {
	return h.movement(c, h.service.Entry)
}

func (h *ItemHandler) Exit(c *fiber.Ctx) error {
	return h.movement(c, h.service.Exit)
}

func (h *ItemHandler) movement(c *fiber.Ctx, apply func(userID, itemID uuid.UUID, quantity int) (*MovementResponse, error)) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid item id")
	}
	var req MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	resp, err := apply(userID, itemID, req.Quantity)
	if err != nil {
		return itemError(c, err)
	}
	return c.JSON(resp)
}

func itemError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInsufficientStock):
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
