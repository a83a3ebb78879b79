package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/trackmasterhq/trackmaster-backend/internal/models"
)

var errNoToken = errors.New("no token in request context")

func tokenClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errNoToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errNoToken
	}
	return claims, nil
}

// GetUserID extracts the authenticated user's id from the JWT.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := tokenClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	sub, _ := claims["sub"].(string)
	return uuid.Parse(sub)
}

// GetRole extracts the authenticated user's role from the JWT.
func GetRole(c *fiber.Ctx) models.Role {
	claims, err := tokenClaims(c)
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return models.Role(role)
}

func tokenModules(c *fiber.Ctx) []string {
	claims, err := tokenClaims(c)
	if err != nil {
		return nil
	}
	raw, _ := claims["modules"].([]interface{})
	modules := make([]string, 0, len(raw))
	for _, m := range raw {
		if s, ok := m.(string); ok {
			modules = append(modules, s)
		}
	}
	return modules
}
