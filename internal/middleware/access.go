package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trackmasterhq/trackmaster-backend/internal/dto"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
)

// ModuleRequired gates a route group behind per-user module access. The
// role and module set are read once from the verified JWT; ADMIN passes
// every check.
func ModuleRequired(module string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) == models.RoleAdmin {
			return c.Next()
		}
		for _, m := range tokenModules(c) {
			if m == module {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "You do not have access to this module",
		})
	}
}

// AdminRequired restricts a route to ADMIN users.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
