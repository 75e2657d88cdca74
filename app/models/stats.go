package models

// BranchStat is the per-branch record count, average and best percentage.
type BranchStat struct {
	Branch        string  `json:"branch"`
	Count         int     `json:"count"`
	AvgPercentage float64 `json:"avg_percentage"`
	TopPercentage float64 `json:"top_percentage"`
}

// SemesterStat is the per-semester record count and average percentage.
type SemesterStat struct {
	Semester      string  `json:"semester"`
	Count         int     `json:"count"`
	AvgPercentage float64 `json:"avg_perc"`
}

// SubjectStat aggregates performance across all students of one subject.
type SubjectStat struct {
	SubjectName   string  `json:"subject_name"`
	StudentCount  int     `json:"student_count"`
	AvgPercentage float64 `json:"avg_percentage"`
	TopPercentage float64 `json:"top_percentage"`
}

// GradeDistribution is the dashboard histogram. Its bands deliberately differ
// from the letter-grade thresholds used on individual marksheets.
type GradeDistribution struct {
	APlus  int `json:"a_plus"`  // >= 90
	AGrade int `json:"a_grade"` // 85-90
	BPlus  int `json:"b_plus"`  // 75-85
	BGrade int `json:"b_grade"` // 65-75
	CGrade int `json:"c_grade"` // 55-65
	DGrade int `json:"d_grade"` // 40-55
	FGrade int `json:"f_grade"` // < 40
	Total  int `json:"total"`
}

// PerformanceMetrics backs the /api/performance_metrics quadrant view.
type PerformanceMetrics struct {
	Excellent         int     `json:"excellent"` // >= 85
	Good              int     `json:"good"`      // 70-85
	Average           int     `json:"average"`   // 55-70
	Poor              int     `json:"poor"`      // < 55
	Total             int     `json:"total"`
	AveragePercentage float64 `json:"average_percentage"`
	LowestScore       float64 `json:"lowest_score"`
	HighestScore      float64 `json:"highest_score"`
}

// DashboardStats is everything the admin dashboard page renders in one go.
type DashboardStats struct {
	TotalStudents     int                `json:"total_students"`
	PassedStudents    int                `json:"passed_students"`
	FailedStudents    int                `json:"failed_students"`
	AvgPercentage     float64            `json:"avg_percentage"`
	BranchStats       []BranchStat       `json:"branch_stats"`
	SemesterStats     []SemesterStat     `json:"semester_stats"`
	TopPerformers     []*Student         `json:"top_performers"`
	GradeDistribution *GradeDistribution `json:"grade_distribution"`
	AtRiskCount       int                `json:"at_risk_count"`
	StarCount         int                `json:"star_count"`
	Performance       *PerformanceMetrics `json:"performance_stats"`
	ImprovementRate   float64            `json:"improvement_rate"`
	ConsistencyScore  float64            `json:"consistency_score"`
}
