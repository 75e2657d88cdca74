package database

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/abhiishekbisht/Marksheet-Generator/app/models"
)

func CountStudents(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&count)
	return count, err
}

// PassFailCounts counts passed (grade != 'F') and failed records.
func PassFailCounts(db *sql.DB) (passed, failed int, err error) {
	err = db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN grade != 'F' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN grade = 'F' THEN 1 ELSE 0 END), 0)
		FROM students
	`).Scan(&passed, &failed)
	return passed, failed, err
}

func AveragePercentage(db *sql.DB) (float64, error) {
	var avg sql.NullFloat64
	err := db.QueryRow(`SELECT ROUND(AVG(percentage), 2) FROM students`).Scan(&avg)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

func GetBranchStats(db *sql.DB) ([]models.BranchStat, error) {
	rows, err := db.Query(`
		SELECT branch, COUNT(*), ROUND(AVG(percentage), 2), MAX(percentage)
		FROM students
		GROUP BY branch
		ORDER BY branch
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch branch stats: %w", err)
	}
	defer rows.Close()

	var stats []models.BranchStat
	for rows.Next() {
		var s models.BranchStat
		if err := rows.Scan(&s.Branch, &s.Count, &s.AvgPercentage, &s.TopPercentage); err != nil {
			return nil, fmt.Errorf("failed to scan branch stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func GetSemesterStats(db *sql.DB) ([]models.SemesterStat, error) {
	rows, err := db.Query(`
		SELECT semester, COUNT(*), ROUND(AVG(percentage), 2)
		FROM students
		GROUP BY semester
		ORDER BY semester
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch semester stats: %w", err)
	}
	defer rows.Close()

	var stats []models.SemesterStat
	for rows.Next() {
		var s models.SemesterStat
		if err := rows.Scan(&s.Semester, &s.Count, &s.AvgPercentage); err != nil {
			return nil, fmt.Errorf("failed to scan semester stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// TopPerformerFilters narrows the top-performers query. Empty or "all" values
// are ignored.
type TopPerformerFilters struct {
	Branch   string `json:"branch"`
	Semester string `json:"semester"`
	ExamType string `json:"exam_type"`
}

// buildTopPerformersQuery assembles the filtered query with positional
// parameters. Filter values never reach the SQL text.
func buildTopPerformersQuery(filters TopPerformerFilters, limit int) (string, []interface{}) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	var args []interface{}

	if filters.Branch != "" && filters.Branch != "all" {
		args = append(args, filters.Branch)
		query += ` AND branch = $` + strconv.Itoa(len(args))
	}
	if filters.Semester != "" && filters.Semester != "all" {
		args = append(args, filters.Semester)
		query += ` AND semester = $` + strconv.Itoa(len(args))
	}
	if filters.ExamType != "" && filters.ExamType != "all" {
		args = append(args, filters.ExamType)
		query += ` AND exam_type = $` + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	query += ` ORDER BY percentage DESC LIMIT $` + strconv.Itoa(len(args))
	return query, args
}

func GetTopPerformers(db *sql.DB, filters TopPerformerFilters, limit int) ([]*models.Student, error) {
	query, args := buildTopPerformersQuery(filters, limit)
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top performers: %w", err)
	}
	defer rows.Close()
	return collectStudents(rows)
}

// GetGradeDistribution fills the dashboard histogram. Its bands are the
// dashboard's own and intentionally not the marksheet letter-grade table.
func GetGradeDistribution(db *sql.DB) (*models.GradeDistribution, error) {
	dist := &models.GradeDistribution{}
	err := db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN percentage >= 90 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN percentage >= 85 AND percentage < 90 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN percentage >= 75 AND percentage < 85 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN percentage >= 65 AND percentage < 75 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN percentage >= 55 AND percentage < 65 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN percentage >= 40 AND percentage < 55 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN percentage < 40 THEN 1 ELSE 0 END), 0),
			COUNT(*)
		FROM students
	`).Scan(&dist.APlus, &dist.AGrade, &dist.BPlus, &dist.BGrade,
		&dist.CGrade, &dist.DGrade, &dist.FGrade, &dist.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grade distribution: %w", err)
	}
	return dist, nil
}

// GetAtRiskStudents lists records below 40%, worst first.
func GetAtRiskStudents(db *sql.DB) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
			  WHERE percentage < 40 ORDER BY percentage ASC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch at-risk students: %w", err)
	}
	defer rows.Close()
	return collectStudents(rows)
}

// GetStarPerformers lists records at or above 90%, best first.
func GetStarPerformers(db *sql.DB) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
			  WHERE percentage >= 90 ORDER BY percentage DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch star performers: %w", err)
	}
	defer rows.Close()
	return collectStudents(rows)
}

func CountAtRisk(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE percentage < 40`).Scan(&count)
	return count, err
}

func CountStars(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE percentage >= 90`).Scan(&count)
	return count, err
}

func GetPerformanceMetrics(db *sql.DB) (*models.PerformanceMetrics, error) {
	m := &models.PerformanceMetrics{}
	var avg, min, max sql.NullFloat64
	err := db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN percentage >= 85 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN percentage >= 70 AND percentage < 85 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN percentage >= 55 AND percentage < 70 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN percentage < 55 THEN 1 ELSE 0 END), 0),
			COUNT(*),
			ROUND(AVG(percentage), 2),
			MIN(percentage),
			MAX(percentage)
		FROM students
	`).Scan(&m.Excellent, &m.Good, &m.Average, &m.Poor, &m.Total, &avg, &min, &max)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch performance metrics: %w", err)
	}
	m.AveragePercentage = avg.Float64
	m.LowestScore = min.Float64
	m.HighestScore = max.Float64
	return m, nil
}

// GetSubjectStats aggregates performance per subject name across all records.
func GetSubjectStats(db *sql.DB) ([]models.SubjectStat, error) {
	rows, err := db.Query(`
		SELECT s.subject_name, COUNT(*),
			   ROUND(AVG(s.marks * 100.0 / s.max_marks), 2),
			   ROUND(MAX(s.marks * 100.0 / s.max_marks), 2)
		FROM subjects s
		JOIN students st ON s.student_id = st.id
		GROUP BY s.subject_name
		ORDER BY AVG(s.marks * 100.0 / s.max_marks) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subject stats: %w", err)
	}
	defer rows.Close()

	var stats []models.SubjectStat
	for rows.Next() {
		var s models.SubjectStat
		if err := rows.Scan(&s.SubjectName, &s.StudentCount, &s.AvgPercentage, &s.TopPercentage); err != nil {
			return nil, fmt.Errorf("failed to scan subject stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
