package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireUser validates the session token and sets the user context.
// API requests get a 401 JSON body; browser requests redirect to /login.
func (g *Guard) RequireUser(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

	if tokenString == "" {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized access"})
		}
		return c.Redirect("/login")
	}

	claims, err := g.ValidateToken(tokenString)
	if err != nil {
		if isAPIRequest {
			return c.Status(401).JSON(fiber.Map{"success": false, "message": "Invalid token"})
		}
		return c.Redirect("/login")
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("username", claims.Username)
	c.Locals("role", claims.Role)

	return c.Next()
}

// RequireAdmin gates admin-only views. It runs after RequireUser.
func (g *Guard) RequireAdmin(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(string)
	if role == "admin" {
		return c.Next()
	}

	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(403).JSON(fiber.Map{"success": false, "message": "Admin privileges required"})
	}

	return c.Status(403).Render("error", fiber.Map{
		"Title":        "Access Forbidden",
		"ErrorCode":    "403",
		"ErrorTitle":   "Access Forbidden",
		"ErrorMessage": "Admin privileges required to access this page.",
	})
}
