package importer

import (
	"github.com/abhiishekbisht/Marksheet-Generator/app/config"
	"github.com/abhiishekbisht/Marksheet-Generator/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupImportRoutes wires bulk import and the admin spreadsheet export.
func SetupImportRoutes(app *fiber.App, cfg *config.Config, guard *auth.Guard) {
	app.Post("/import_excel", guard.RequireUser, func(c *fiber.Ctx) error { return ImportExcel(c, cfg) })
	app.Post("/bulk_create_marksheets", guard.RequireUser, func(c *fiber.Ctx) error { return BulkCreateMarksheets(c, cfg) })
	app.Get("/export_data", guard.RequireUser, guard.RequireAdmin, func(c *fiber.Ctx) error { return ExportData(c, cfg) })
}
