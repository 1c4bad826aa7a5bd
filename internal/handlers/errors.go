package handlers

import (
	"strconv"

	"github.com/anotherclass/colortherock/internal/dto"
	"github.com/anotherclass/colortherock/internal/services"
	"github.com/gofiber/fiber/v2"
)

// serviceError writes the response for an error returned by the services package.
// Persistence failures never leak driver details.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := err.Error()

	switch services.KindOf(err) {
	case services.KindSelfReport, services.KindInvalidInput:
		status = fiber.StatusBadRequest
	case services.KindDuplicate:
		status = fiber.StatusConflict
	case services.KindPostNotFound, services.KindMemberNotFound:
		status = fiber.StatusNotFound
	case services.KindForbidden:
		status = fiber.StatusForbidden
	case services.KindPersistence:
		status = fiber.StatusServiceUnavailable
		message = services.ErrPersistence.Error()
		c.Set(fiber.HeaderRetryAfter, "1")
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

// parseBody decodes and validates a JSON request body. It writes the 400
// response itself and reports false when the handler should stop.
func parseBody(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(req); err != nil {
		return false, badRequest(c, err.Error())
	}
	return true, nil
}

func postIDParam(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
