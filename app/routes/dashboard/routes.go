package dashboard

import (
	"github.com/abhiishekbisht/Marksheet-Generator/app/config"
	"github.com/abhiishekbisht/Marksheet-Generator/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes wires the admin dashboard page and the analytics APIs.
// Performance metrics and the performer lookups are open to any logged-in
// staff; the rest is admin-only.
func SetupDashboardRoutes(app *fiber.App, cfg *config.Config, guard *auth.Guard) {
	app.Get("/dashboard", guard.RequireUser, guard.RequireAdmin,
		func(c *fiber.Ctx) error { return ShowDashboard(c, cfg) })
	app.Post("/clear_all_data", guard.RequireUser, guard.RequireAdmin,
		func(c *fiber.Ctx) error { return ClearAllData(c, cfg) })

	api := app.Group("/api", guard.RequireUser)
	api.Get("/performance_metrics", func(c *fiber.Ctx) error { return PerformanceMetrics(c, cfg) })
	api.Post("/top_performers", func(c *fiber.Ctx) error { return TopPerformers(c, cfg) })
	api.Post("/performers_by_type", func(c *fiber.Ctx) error { return PerformersByType(c, cfg) })

	admin := api.Group("", guard.RequireAdmin)
	admin.Get("/at_risk_students", func(c *fiber.Ctx) error { return AtRiskStudents(c, cfg) })
	admin.Get("/star_performers", func(c *fiber.Ctx) error { return StarPerformers(c, cfg) })
	admin.Get("/grade_distribution", func(c *fiber.Ctx) error { return GradeDistribution(c, cfg) })
	admin.Get("/semester_stats", func(c *fiber.Ctx) error { return SemesterStats(c, cfg) })
	admin.Get("/export_at_risk_students", func(c *fiber.Ctx) error { return ExportAtRiskCSV(c, cfg) })
}
