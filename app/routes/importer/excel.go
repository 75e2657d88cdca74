package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RequiredColumns are the headers every import sheet must carry. Any other
// column is treated as a subject scored out of 100.
var RequiredColumns = []string{"Student Name", "Roll Number", "Branch", "Semester", "Exam Type"}

// Candidate is one parsed row awaiting confirmation before creation.
type Candidate struct {
	StudentName string             `json:"student_name"`
	RollNo      string             `json:"roll_no"`
	Branch      string             `json:"branch"`
	Semester    string             `json:"semester"`
	ExamType    string             `json:"exam_type"`
	Subjects    []CandidateSubject `json:"subjects"`
}

type CandidateSubject struct {
	Name     string `json:"name"`
	Marks    int    `json:"marks"`
	MaxMarks int    `json:"max_marks"`
}

// MissingColumnsError rejects the whole workbook and names what is absent.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "Missing required columns: " + strings.Join(e.Columns, ", ")
}

// ParseWorkbook reads the first sheet into candidate records. A sheet without
// all required columns fails wholesale; a cell with a non-numeric or
// out-of-range mark drops just that subject; a row left with no subjects is
// dropped entirely.
func ParseWorkbook(r io.Reader) ([]Candidate, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error reading Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("error reading Excel file: %w", err)
	}
	if len(rows) == 0 {
		return nil, &MissingColumnsError{Columns: RequiredColumns}
	}

	header := rows[0]
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := colIndex[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	requiredSet := make(map[string]bool, len(RequiredColumns))
	for _, name := range RequiredColumns {
		requiredSet[name] = true
	}

	var candidates []Candidate
	for _, row := range rows[1:] {
		candidate := Candidate{
			StudentName: cell(row, colIndex["Student Name"]),
			RollNo:      cell(row, colIndex["Roll Number"]),
			Branch:      cell(row, colIndex["Branch"]),
			Semester:    cell(row, colIndex["Semester"]),
			ExamType:    cell(row, colIndex["Exam Type"]),
		}
		if candidate.StudentName == "" || candidate.RollNo == "" {
			continue
		}

		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" || requiredSet[name] {
				continue
			}
			value := cell(row, i)
			if value == "" {
				continue
			}
			marks, err := strconv.ParseFloat(value, 64)
			if err != nil || marks < 0 || marks > 100 {
				continue // invalid mark drops only this subject
			}
			candidate.Subjects = append(candidate.Subjects, CandidateSubject{
				Name:     name,
				Marks:    int(marks),
				MaxMarks: 100,
			})
		}

		if len(candidate.Subjects) > 0 {
			candidates = append(candidates, candidate)
		}
	}

	return candidates, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
