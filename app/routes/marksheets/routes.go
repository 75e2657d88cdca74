package marksheets

import (
	"github.com/abhiishekbisht/Marksheet-Generator/app/config"
	"github.com/abhiishekbisht/Marksheet-Generator/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupMarksheetRoutes wires the entry form, record views and downloads.
// Verification is public; everything else needs a session.
func SetupMarksheetRoutes(app *fiber.App, cfg *config.Config, guard *auth.Guard) {
	app.Get("/", guard.RequireUser, func(c *fiber.Ctx) error { return ShowIndexPage(c, cfg) })
	app.Post("/generate_marksheet", guard.RequireUser, func(c *fiber.Ctx) error { return GenerateMarksheet(c, cfg) })
	app.Get("/history", guard.RequireUser, func(c *fiber.Ctx) error { return History(c, cfg) })
	app.Get("/download_pdf/:id", guard.RequireUser, func(c *fiber.Ctx) error { return DownloadPDF(c, cfg) })
	app.Get("/download_html_pdf/:id", guard.RequireUser, func(c *fiber.Ctx) error { return DownloadPrintView(c, cfg) })

	// Public verification, no session required
	app.Get("/verify", func(c *fiber.Ctx) error { return ShowVerifyPage(c, cfg) })
	app.Post("/verify", func(c *fiber.Ctx) error { return VerifyByRollNo(c, cfg) })
	app.Get("/verify/:id", func(c *fiber.Ctx) error { return VerifyByID(c, cfg) })
}
