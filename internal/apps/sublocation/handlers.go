package sublocation

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mathaussantos/funipro-backend/internal/tenant"
)

type RecordHandler struct {
	service *RecordService
}

func NewRecordHandler(service *RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

func (h *RecordHandler) List(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	records, err := h.service.List(userID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(records)
}

func (h *RecordHandler) Get(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record id")
	}
	record, err := h.service.Get(userID, recordID)
	if err != nil {
		return recordError(c, err)
	}
	return c.JSON(record)
}

func (h *RecordHandler) Create(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	var req RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	record, err := h.service.Create(userID, &req)
	if err != nil {
		return recordError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

func (h *RecordHandler) Update(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record id")
	}
	var req RecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	record, err := h.service.Update(userID, recordID, &req)
	if err != nil {
		return recordError(c, err)
	}
	return c.JSON(record)
}

func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record id")
	}
	if err := h.service.Delete(userID, recordID); err != nil {
		return recordError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func recordError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrInvalidDiscountPct):
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
