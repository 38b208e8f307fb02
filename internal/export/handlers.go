package export

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/faist23/rideweather/internal/course"
	"github.com/faist23/rideweather/internal/garmin"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Request
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.RouteID == "" || req.CourseName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "route_id and course_name required")
		}
		userID, _ := c.Locals("user_id").(string)

		exp, err := svc.Export(c.Context(), userID, req)
		if err != nil {
			status := statusFor(err)
			if exp.ID != "" {
				// the export row exists; return it alongside the error kind
				return c.Status(status).JSON(exp)
			}
			return fiber.NewError(status, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(exp)
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		exp, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "export not found")
		}
		return c.JSON(exp)
	})

	r.Get("/:id/payload", authMiddleware, func(c *fiber.Ctx) error {
		payload, err := svc.CachedPayload(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "payload no longer cached")
		}
		return c.JSON(payload)
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, course.ErrInvalidRoute):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, course.ErrPayloadTooLarge):
		return fiber.StatusInternalServerError
	case errors.Is(err, garmin.ErrRateLimited):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, garmin.ErrUnauthorized),
		errors.Is(err, garmin.ErrInsufficientPermission),
		errors.Is(err, garmin.ErrNoToken),
		errors.Is(err, garmin.ErrAPI):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
