// Package grades holds the marksheet arithmetic: the letter-grade table and
// the aggregation of per-subject scores into one overall result.
package grades

import (
	"fmt"
	"math"
)

// Grade maps a percentage to its letter grade and remark. Thresholds are
// closed below: exactly 90 is A+, 89.999 is A. Defined for every real input;
// bounding to [0,100] is the caller's job.
func Grade(percentage float64) (letter, remark string) {
	switch {
	case percentage >= 90:
		return "A+", "Outstanding Performance"
	case percentage >= 80:
		return "A", "Excellent Performance"
	case percentage >= 70:
		return "B+", "Very Good Performance"
	case percentage >= 60:
		return "B", "Good Performance"
	case percentage >= 50:
		return "C", "Satisfactory Performance"
	case percentage >= 40:
		return "D", "Needs Improvement"
	default:
		return "F", "Failed - Requires Re-examination"
	}
}

// SubjectEntry is one scored subject as entered on the form or import sheet.
type SubjectEntry struct {
	Name     string
	Marks    int
	MaxMarks int
}

// SubjectResult is a SubjectEntry with its computed letter grade.
type SubjectResult struct {
	Name     string
	Marks    int
	MaxMarks int
	Grade    string
}

// Marksheet is the aggregated result persisted as one student record plus its
// subject rows.
type Marksheet struct {
	Subjects   []SubjectResult
	TotalMarks int
	MaxMarks   int
	Percentage float64
	Grade      string
	Remarks    string
}

// Aggregate grades each subject, accumulates totals and computes the overall
// percentage and grade. Every entry must have MaxMarks > 0 and at least one
// entry is required.
func Aggregate(entries []SubjectEntry) (*Marksheet, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("at least one subject is required")
	}

	sheet := &Marksheet{Subjects: make([]SubjectResult, 0, len(entries))}
	for _, e := range entries {
		if e.MaxMarks <= 0 {
			return nil, fmt.Errorf("subject %q: max marks must be positive", e.Name)
		}

		pct := float64(e.Marks) / float64(e.MaxMarks) * 100
		letter, _ := Grade(pct)
		sheet.Subjects = append(sheet.Subjects, SubjectResult{
			Name:     e.Name,
			Marks:    e.Marks,
			MaxMarks: e.MaxMarks,
			Grade:    letter,
		})

		sheet.TotalMarks += e.Marks
		sheet.MaxMarks += e.MaxMarks
	}

	if sheet.MaxMarks > 0 {
		sheet.Percentage = round2(float64(sheet.TotalMarks) / float64(sheet.MaxMarks) * 100)
	}
	sheet.Grade, sheet.Remarks = Grade(sheet.Percentage)

	return sheet, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
