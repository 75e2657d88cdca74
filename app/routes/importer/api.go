package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/abhiishekbisht/Marksheet-Generator/app/config"
	"github.com/abhiishekbisht/Marksheet-Generator/app/database"
	"github.com/abhiishekbisht/Marksheet-Generator/app/grades"
	"github.com/abhiishekbisht/Marksheet-Generator/app/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ImportExcel parses an uploaded spreadsheet into candidate records for
// confirmation. The upload is read fully into memory and nothing is left on
// disk afterwards.
func ImportExcel(c *fiber.Ctx, cfg *config.Config) error {
	fileHeader, err := c.FormFile("excel_file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "No file uploaded"})
	}
	if fileHeader.Filename == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "No file selected"})
	}

	lower := strings.ToLower(fileHeader.Filename)
	if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid file format. Please upload .xlsx or .xls file",
		})
	}
	if fileHeader.Size > cfg.MaxUploadSize {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "File too large"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Error reading uploaded file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Error reading uploaded file"})
	}

	candidates, err := ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		var missing *MissingColumnsError
		if errors.As(err, &missing) {
			return c.Status(400).JSON(fiber.Map{"success": false, "message": missing.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Error reading Excel file"})
	}

	if len(candidates) == 0 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "No valid student data found in Excel file",
		})
	}

	batchID := uuid.New().String()
	log.Printf("Parsed import batch %s: %d candidates from %s", batchID, len(candidates), fileHeader.Filename)

	return c.JSON(fiber.Map{
		"success":  true,
		"batch_id": batchID,
		"data":     candidates,
		"message":  fmt.Sprintf("Successfully processed %d students", len(candidates)),
	})
}

// BulkCreateMarksheets creates one record per confirmed candidate. Duplicate
// roll numbers and malformed entries are skipped and counted, never fatal to
// the batch.
func BulkCreateMarksheets(c *fiber.Ctx, cfg *config.Config) error {
	var req struct {
		Students []Candidate `json:"students"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}
	if len(req.Students) == 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "No student data provided"})
	}

	created, skipped := 0, 0
	for _, candidate := range req.Students {
		entries := make([]grades.SubjectEntry, 0, len(candidate.Subjects))
		for _, s := range candidate.Subjects {
			entries = append(entries, grades.SubjectEntry{Name: s.Name, Marks: s.Marks, MaxMarks: s.MaxMarks})
		}

		sheet, err := grades.Aggregate(entries)
		if err != nil {
			log.Printf("Skipping %s: %v", candidate.RollNo, err)
			skipped++
			continue
		}

		student := &models.Student{
			Name:             candidate.StudentName,
			RollNo:           candidate.RollNo,
			Branch:           candidate.Branch,
			Semester:         candidate.Semester,
			ExamType:         candidate.ExamType,
			TotalMarks:       sheet.TotalMarks,
			MaxMarks:         sheet.MaxMarks,
			Percentage:       sheet.Percentage,
			Grade:            sheet.Grade,
			Remarks:          sheet.Remarks,
			IncludeSignature: true,
			IncludeSeal:      true,
		}

		subjects := make([]*models.Subject, 0, len(sheet.Subjects))
		for _, s := range sheet.Subjects {
			subjects = append(subjects, &models.Subject{
				SubjectName: s.Name,
				Marks:       s.Marks,
				MaxMarks:    s.MaxMarks,
				Grade:       s.Grade,
			})
		}

		if err := database.CreateStudentWithSubjects(cfg.DB, student, subjects); err != nil {
			if err != database.ErrDuplicateRoll {
				log.Printf("Error creating marksheet for %s: %v", candidate.StudentName, err)
			}
			skipped++
			continue
		}
		created++
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"created_count": created,
		"skipped_count": skipped,
		"message":       fmt.Sprintf("Successfully created %d marksheets", created),
	})
}

// ExportData streams every student and subject row as an xlsx workbook with
// one sheet per table.
func ExportData(c *fiber.Ctx, cfg *config.Config) error {
	students, err := database.ListAllStudents(cfg.DB)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database connection error!")
	}
	subjects, err := database.ListAllSubjects(cfg.DB)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database connection error!")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeStudentsSheet(f, students); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}
	if err := writeSubjectsSheet(f, subjects); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}

	filename := fmt.Sprintf("marksheet_data_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func writeStudentsSheet(f *excelize.File, students []*models.Student) error {
	const sheet = "Students"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	header := []interface{}{"ID", "Name", "Roll Number", "Branch", "Semester", "Exam Type",
		"Total Marks", "Max Marks", "Percentage", "Grade", "Remarks", "Date Created"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, s := range students {
		row := []interface{}{s.ID, s.Name, s.RollNo, s.Branch, s.Semester, s.ExamType,
			s.TotalMarks, s.MaxMarks, s.Percentage, s.Grade, s.Remarks,
			s.DateCreated.Format("2006-01-02 15:04:05")}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeSubjectsSheet(f *excelize.File, subjects []*models.Subject) error {
	const sheet = "Subjects"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"ID", "Student ID", "Subject Name", "Marks", "Max Marks", "Grade"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, s := range subjects {
		row := []interface{}{s.ID, s.StudentID, s.SubjectName, s.Marks, s.MaxMarks, s.Grade}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
