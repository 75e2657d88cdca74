package auth

import (
	"database/sql"
	"time"

	"github.com/abhiishekbisht/Marksheet-Generator/app/config"
	"github.com/abhiishekbisht/Marksheet-Generator/app/database"
	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes wires the session lifecycle endpoints.
func SetupAuthRoutes(app *fiber.App, cfg *config.Config, guard *Guard) {
	app.Get("/login", func(c *fiber.Ctx) error { return ShowLoginPage(c, cfg, guard) })
	app.Post("/login", func(c *fiber.Ctx) error { return Login(c, cfg, guard) })
	app.Get("/logout", Logout)
}

func ShowLoginPage(c *fiber.Ctx, cfg *config.Config, guard *Guard) error {
	// Already logged in, skip the form
	if tokenString := c.Cookies("jwt_token"); tokenString != "" {
		if _, err := guard.ValidateToken(tokenString); err == nil {
			return c.Redirect("/")
		}
	}

	return c.Render("auth/login", fiber.Map{
		"Title":       "Login - " + cfg.CollegeName,
		"CollegeName": cfg.CollegeName,
	}, "")
}

func Login(c *fiber.Ctx, cfg *config.Config, guard *Guard) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return renderLoginError(c, cfg, "Username and password are required")
	}

	user, err := database.GetUserByUsername(cfg.DB, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return renderLoginError(c, cfg, "Invalid username or password!")
		}
		return renderLoginError(c, cfg, "Database connection error!")
	}

	if !CheckPasswordHash(password, user.PasswordHash) {
		return renderLoginError(c, cfg, "Invalid username or password!")
	}

	token, err := guard.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return renderLoginError(c, cfg, "Failed to start session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect("/")
}

func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.Redirect("/login")
}

func renderLoginError(c *fiber.Ctx, cfg *config.Config, message string) error {
	return c.Status(fiber.StatusUnauthorized).Render("auth/login", fiber.Map{
		"Title":       "Login - " + cfg.CollegeName,
		"CollegeName": cfg.CollegeName,
		"Error":       message,
	}, "")
}
