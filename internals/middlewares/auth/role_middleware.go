package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "capstonehub_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError validates the principal role + custom message
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok {
			return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}

		return helper.Error(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// OnlyRoles is the short form used when wiring routes
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
