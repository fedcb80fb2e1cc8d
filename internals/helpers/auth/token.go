// internals/helpers/auth/token.go
package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"capstonehub_backend/internals/constants"
)

// GetUserIDFromToken reads the principal's user id stored by the auth
// middleware. Controllers must not parse the JWT themselves.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("user_id")
	if raw == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user id")
	}

	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid user id")
		}
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid user id")
}

func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("user_role").(string)
	if !ok || role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing role information")
	}
	return role, nil
}

func IsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("user_role").(string)
	return role == constants.RoleAdmin
}

func IsAdvisor(c *fiber.Ctx) bool {
	role, _ := c.Locals("user_role").(string)
	return role == constants.RoleAdvisor
}
