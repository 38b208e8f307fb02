package garmin

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const defaultTokenTTL = 30 * 24 * time.Hour

type tokenRequest struct {
	Token      string `json:"token"`
	TTLSeconds int64  `json:"ttl_seconds"`
}

// RegisterRoutes exposes the vendor connection endpoints: storing the
// rider's OAuth token and disconnecting.
func RegisterRoutes(r fiber.Router, store *TokenStore, authMiddleware fiber.Handler) {
	r.Put("/token", authMiddleware, func(c *fiber.Ctx) error {
		var req tokenRequest
		if err := c.BodyParser(&req); err != nil || req.Token == "" {
			return fiber.NewError(fiber.StatusBadRequest, "token required")
		}
		userID, _ := c.Locals("user_id").(string)

		ttl := defaultTokenTTL
		if req.TTLSeconds > 0 {
			ttl = time.Duration(req.TTLSeconds) * time.Second
		}
		if err := store.Save(c.Context(), userID, req.Token, ttl); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"status": "connected"})
	})

	r.Delete("/token", authMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := store.Delete(c.Context(), userID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
