package marksheets

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/abhiishekbisht/Marksheet-Generator/app/config"
	"github.com/abhiishekbisht/Marksheet-Generator/app/models"
	"github.com/jung-kurt/gofpdf"
)

// BuildMarksheetPDF lays out the marksheet on A4 with the same fields, order
// and values as the HTML view, so the download is a faithful offline copy.
func BuildMarksheetPDF(cfg *config.Config, student *models.Student, subjects []*models.Subject) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(13, 13, 13)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(37, 99, 235)
	pdf.CellFormat(0, 12, cfg.CollegeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 12)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 7, cfg.CollegeSubtitle, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 9, "ACADEMIC MARKSHEET", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 8, student.ExamType, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Student details
	pdf.SetTextColor(0, 0, 0)
	details := [][4]string{
		{"Student Name:", student.Name, "Roll Number:", student.RollNo},
		{"Branch:", student.Branch, "Semester:", student.Semester},
		{"Exam Type:", student.ExamType, "Result Date:", student.DateCreated.Format("January 2, 2006")},
	}
	for _, row := range details {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(38, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(56, 8, row[1], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(38, 8, row[2], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, row[3], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Subjects table
	colWidths := []float64{20, 72, 32, 32, 28}
	headers := []string{"S.No.", "Subject", "Marks Obtained", "Maximum Marks", "Grade"}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(59, 130, 246)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, subject := range subjects {
		pdf.CellFormat(colWidths[0], 8, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, subject.SubjectName, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, strconv.Itoa(subject.Marks), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, strconv.Itoa(subject.MaxMarks), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[4], 8, subject.Grade, "1", 1, "C", false, 0, "")
	}

	// Totals row
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(59, 130, 246)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(colWidths[0]+colWidths[1], 9, "TOTAL", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colWidths[2], 9, strconv.Itoa(student.TotalMarks), "1", 0, "C", true, 0, "")
	pdf.CellFormat(colWidths[3], 9, strconv.Itoa(student.MaxMarks), "1", 0, "C", true, 0, "")
	pdf.CellFormat(colWidths[4], 9, student.Grade, "1", 1, "C", true, 0, "")
	pdf.Ln(8)

	// Summary
	pdf.SetTextColor(0, 0, 0)
	summary := [][2]string{
		{"Total Marks:", fmt.Sprintf("%d/%d", student.TotalMarks, student.MaxMarks)},
		{"Percentage:", fmt.Sprintf("%.2f%%", student.Percentage)},
		{"Grade:", student.Grade},
		{"Remarks:", student.Remarks},
	}
	for _, row := range summary {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(10)

	// Signatures, only when stored names opted in
	if student.IncludeSignature && (student.ClassTeacher != "" || student.Principal != "") {
		pdf.SetFont("Helvetica", "", 10)
		left, right := "", "Principal"
		leftName, rightName := "", student.Principal
		if student.ClassTeacher != "" {
			left, leftName = "Class Teacher", student.ClassTeacher
		}

		pdf.CellFormat(64, 6, left, "", 0, "C", false, 0, "")
		pdf.CellFormat(26, 6, "", "", 0, "C", false, 0, "")
		pdf.CellFormat(64, 6, right, "", 1, "C", false, 0, "")

		pdf.CellFormat(64, 6, leftName, "", 0, "C", false, 0, "")
		pdf.CellFormat(26, 6, "", "", 0, "C", false, 0, "")
		pdf.CellFormat(64, 6, rightName, "", 1, "C", false, 0, "")

		pdf.CellFormat(64, 6, "_________________", "", 0, "C", false, 0, "")
		pdf.CellFormat(26, 6, "", "", 0, "C", false, 0, "")
		pdf.CellFormat(64, 6, "_________________", "", 1, "C", false, 0, "")
		pdf.Ln(8)
	}

	// Verification footer
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, "Digital Verification", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "This marksheet is digitally verified and authentic.", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, "Verified by "+cfg.CollegeName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("Student ID: %d", student.ID), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build PDF: %w", err)
	}
	return buf.Bytes(), nil
}
