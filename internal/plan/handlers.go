package plan

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/faist23/rideweather/internal/course"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Plan
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.RouteID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "route_id required")
		}
		req.UserID, _ = c.Locals("user_id").(string)

		created, err := svc.Create(c.Context(), req)
		if err != nil {
			if errors.Is(err, ErrInvalidSegments) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Post("/generate", authMiddleware, func(c *fiber.Ctx) error {
		var req struct {
			RouteID                  string  `json:"route_id"`
			FTPWatts                 float64 `json:"ftp_watts"`
			Units                    string  `json:"units"`
			CheckpointsEnabled       bool    `json:"checkpoints_enabled"`
			CheckpointIntervalMeters float64 `json:"checkpoint_interval_m"`
		}
		if err := c.BodyParser(&req); err != nil || req.RouteID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "route_id required")
		}
		userID, _ := c.Locals("user_id").(string)

		settings := Plan{
			Units:                    course.UnitSystem(req.Units),
			CheckpointsEnabled:       req.CheckpointsEnabled,
			CheckpointIntervalMeters: req.CheckpointIntervalMeters,
		}
		created, err := svc.Generate(c.Context(), req.RouteID, userID, req.FTPWatts, settings)
		if err != nil {
			if errors.Is(err, ErrInvalidSegments) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		p, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "plan not found")
		}
		return c.JSON(p)
	})

	r.Get("/route/:routeID", func(c *fiber.Ctx) error {
		plans, err := svc.ListByRoute(c.Context(), c.Params("routeID"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(plans)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
