package marksheets

import (
	"bytes"
	"testing"
	"time"

	"github.com/abhiishekbisht/Marksheet-Generator/app/config"
	"github.com/abhiishekbisht/Marksheet-Generator/app/models"
)

func sampleRecord() (*models.Student, []*models.Subject) {
	student := &models.Student{
		ID:               12,
		Name:             "Asha Verma",
		RollNo:           "CS-2024-012",
		Branch:           "Computer Science",
		Semester:         "3",
		ExamType:         "End Semester Examination",
		TotalMarks:       70,
		MaxMarks:         100,
		Percentage:       70.0,
		Grade:            "B+",
		Remarks:          "Very Good Performance",
		ClassTeacher:     "R. Iyer",
		Principal:        "S. Nair",
		IncludeSignature: true,
		DateCreated:      time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	subjects := []*models.Subject{
		{SubjectName: "Math", Marks: 40, MaxMarks: 50, Grade: "A"},
		{SubjectName: "Eng", Marks: 30, MaxMarks: 50, Grade: "B"},
	}
	return student, subjects
}

func TestBuildMarksheetPDF(t *testing.T) {
	cfg := &config.Config{
		CollegeName:     "GULZAR GROUP OF INSTITUTIONS",
		CollegeSubtitle: "Academic Excellence Since 1995",
	}
	student, subjects := sampleRecord()

	pdfBytes, err := BuildMarksheetPDF(cfg, student, subjects)
	if err != nil {
		t.Fatal(err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("empty PDF output")
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header: %q", pdfBytes[:8])
	}
}

func TestBuildMarksheetPDFWithoutSignatures(t *testing.T) {
	cfg := &config.Config{CollegeName: "Test College", CollegeSubtitle: "Subtitle"}
	student, subjects := sampleRecord()
	student.IncludeSignature = false

	pdfBytes, err := BuildMarksheetPDF(cfg, student, subjects)
	if err != nil {
		t.Fatal(err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("empty PDF output")
	}
}
