package dashboard

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/abhiishekbisht/Marksheet-Generator/app/config"
	"github.com/abhiishekbisht/Marksheet-Generator/app/database"
	"github.com/abhiishekbisht/Marksheet-Generator/app/models"
	"github.com/gofiber/fiber/v2"
)

// ShowDashboard renders the admin statistics page in one pass over the
// aggregate queries.
func ShowDashboard(c *fiber.Ctx, cfg *config.Config) error {
	stats, err := collectStats(cfg)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database connection error!")
	}

	return c.Render("dashboard/index", fiber.Map{
		"Title":       "Dashboard - " + cfg.CollegeName,
		"CollegeName": cfg.CollegeName,
		"Stats":       stats,
		"Username":    c.Locals("username"),
		"Role":        c.Locals("role"),
	})
}

func collectStats(cfg *config.Config) (*models.DashboardStats, error) {
	db := cfg.DB
	stats := &models.DashboardStats{}

	var err error
	if stats.TotalStudents, err = database.CountStudents(db); err != nil {
		return nil, err
	}
	if stats.PassedStudents, stats.FailedStudents, err = database.PassFailCounts(db); err != nil {
		return nil, err
	}
	if stats.AvgPercentage, err = database.AveragePercentage(db); err != nil {
		return nil, err
	}
	if stats.BranchStats, err = database.GetBranchStats(db); err != nil {
		return nil, err
	}
	if stats.SemesterStats, err = database.GetSemesterStats(db); err != nil {
		return nil, err
	}
	if stats.TopPerformers, err = database.GetTopPerformers(db, database.TopPerformerFilters{}, 10); err != nil {
		return nil, err
	}
	if stats.GradeDistribution, err = database.GetGradeDistribution(db); err != nil {
		return nil, err
	}
	if stats.AtRiskCount, err = database.CountAtRisk(db); err != nil {
		return nil, err
	}
	if stats.StarCount, err = database.CountStars(db); err != nil {
		return nil, err
	}
	if stats.Performance, err = database.GetPerformanceMetrics(db); err != nil {
		return nil, err
	}

	// Placeholder trend figures; there is no historical data to derive
	// these from yet.
	if stats.TotalStudents > 0 {
		stats.ImprovementRate = 12.5
		spread := stats.Performance.HighestScore - stats.Performance.LowestScore
		score := 100 - spread/2
		if score > 95 {
			score = 95
		}
		if score < 60 {
			score = 60
		}
		stats.ConsistencyScore = score
	} else {
		stats.ConsistencyScore = 85
	}

	return stats, nil
}

func PerformanceMetrics(c *fiber.Ctx, cfg *config.Config) error {
	metrics, err := database.GetPerformanceMetrics(cfg.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Error fetching metrics"})
	}
	return c.JSON(fiber.Map{"success": true, "metrics": metrics})
}

func TopPerformers(c *fiber.Ctx, cfg *config.Config) error {
	var filters database.TopPerformerFilters
	if err := c.BodyParser(&filters); err != nil && len(c.Body()) > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid request"})
	}

	performers, err := database.GetTopPerformers(cfg.DB, filters, 10)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Error fetching top performers"})
	}
	return c.JSON(fiber.Map{"success": true, "performers": performers})
}

// PerformersByType answers grouped leaderboards: per branch, per subject, or
// the overall top ten.
func PerformersByType(c *fiber.Ctx, cfg *config.Config) error {
	var req struct {
		Type string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid request"})
	}

	switch req.Type {
	case "branch":
		stats, err := database.GetBranchStats(cfg.DB)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "message": "Error fetching performers"})
		}
		return c.JSON(fiber.Map{"success": true, "performers": stats})
	case "subject":
		stats, err := database.GetSubjectStats(cfg.DB)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "message": "Error fetching performers"})
		}
		return c.JSON(fiber.Map{"success": true, "performers": stats})
	default:
		performers, err := database.GetTopPerformers(cfg.DB, database.TopPerformerFilters{}, 10)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "message": "Error fetching performers"})
		}
		return c.JSON(fiber.Map{"success": true, "performers": performers})
	}
}

func AtRiskStudents(c *fiber.Ctx, cfg *config.Config) error {
	students, err := database.GetAtRiskStudents(cfg.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Database connection failed"})
	}
	return c.JSON(fiber.Map{"success": true, "students": students})
}

func StarPerformers(c *fiber.Ctx, cfg *config.Config) error {
	students, err := database.GetStarPerformers(cfg.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Database connection failed"})
	}
	return c.JSON(fiber.Map{"success": true, "students": students})
}

func GradeDistribution(c *fiber.Ctx, cfg *config.Config) error {
	dist, err := database.GetGradeDistribution(cfg.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Database connection failed"})
	}
	return c.JSON(fiber.Map{"success": true, "data": dist})
}

func SemesterStats(c *fiber.Ctx, cfg *config.Config) error {
	stats, err := database.GetSemesterStats(cfg.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Database connection failed"})
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}

// ExportAtRiskCSV streams the at-risk listing as a CSV attachment.
func ExportAtRiskCSV(c *fiber.Ctx, cfg *config.Config) error {
	students, err := database.GetAtRiskStudents(cfg.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Database connection failed"})
	}
	if len(students) == 0 {
		return c.JSON(fiber.Map{"success": false, "message": "No at-risk students found"})
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Write([]string{"Name", "Roll Number", "Branch", "Semester", "Exam Type", "Percentage"})
	for _, s := range students {
		writer.Write([]string{
			s.Name, s.RollNo, s.Branch, s.Semester, s.ExamType,
			fmt.Sprintf("%.2f", s.Percentage),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to build CSV"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="at_risk_students.csv"`)
	return c.Send(buf.Bytes())
}

// ClearAllData wipes every student and subject row and resets the id
// sequences. Irreversible, admin only.
func ClearAllData(c *fiber.Ctx, cfg *config.Config) error {
	studentsDeleted, subjectsDeleted, err := database.ClearAllData(cfg.DB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Database connection error"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Successfully deleted %d students and %d subjects from database",
			studentsDeleted, subjectsDeleted),
	})
}
