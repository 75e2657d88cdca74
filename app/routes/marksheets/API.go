package marksheets

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abhiishekbisht/Marksheet-Generator/app/config"
	"github.com/abhiishekbisht/Marksheet-Generator/app/database"
	"github.com/abhiishekbisht/Marksheet-Generator/app/grades"
	"github.com/abhiishekbisht/Marksheet-Generator/app/models"
	"github.com/gofiber/fiber/v2"
)

// ShowIndexPage renders the marksheet entry form.
func ShowIndexPage(c *fiber.Ctx, cfg *config.Config) error {
	return c.Render("marksheets/index", fiber.Map{
		"Title":       "Generate Marksheet - " + cfg.CollegeName,
		"CollegeName": cfg.CollegeName,
		"Username":    c.Locals("username"),
		"Role":        c.Locals("role"),
	})
}

// GenerateMarksheet creates one record from the entry form and renders the
// result view. Subject fields come in as parallel arrays.
func GenerateMarksheet(c *fiber.Ctx, cfg *config.Config) error {
	name := strings.TrimSpace(c.FormValue("student_name"))
	rollNo := strings.TrimSpace(c.FormValue("roll_no"))
	branch := strings.TrimSpace(c.FormValue("branch"))
	semester := strings.TrimSpace(c.FormValue("semester"))
	examType := strings.TrimSpace(c.FormValue("exam_type"))
	if name == "" || rollNo == "" || branch == "" || semester == "" || examType == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Student name, roll number, branch, semester and exam type are required")
	}

	subjectNames := formList(c, "subject_name[]")
	marksList := formList(c, "marks[]")
	maxMarksList := formList(c, "max_marks[]")

	var entries []grades.SubjectEntry
	for i, subject := range subjectNames {
		if strings.TrimSpace(subject) == "" {
			continue
		}
		if i >= len(marksList) || i >= len(maxMarksList) {
			return fiber.NewError(fiber.StatusBadRequest, "Subject rows are incomplete")
		}
		marks, err := strconv.Atoi(strings.TrimSpace(marksList[i]))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Marks for %s must be a number", subject))
		}
		maxMarks, err := strconv.Atoi(strings.TrimSpace(maxMarksList[i]))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Max marks for %s must be a number", subject))
		}
		entries = append(entries, grades.SubjectEntry{
			Name:     strings.TrimSpace(subject),
			Marks:    marks,
			MaxMarks: maxMarks,
		})
	}

	sheet, err := grades.Aggregate(entries)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	student := &models.Student{
		Name:             name,
		RollNo:           rollNo,
		Branch:           branch,
		Semester:         semester,
		ExamType:         examType,
		TotalMarks:       sheet.TotalMarks,
		MaxMarks:         sheet.MaxMarks,
		Percentage:       sheet.Percentage,
		Grade:            sheet.Grade,
		Remarks:          sheet.Remarks,
		ClassTeacher:     strings.TrimSpace(c.FormValue("class_teacher")),
		Principal:        strings.TrimSpace(c.FormValue("principal")),
		IncludeSignature: c.FormValue("include_signature") == "1",
		IncludeSeal:      c.FormValue("include_seal") == "1",
	}
	subjects := subjectRows(sheet)

	if err := database.CreateStudentWithSubjects(cfg.DB, student, subjects); err != nil {
		if err == database.ErrDuplicateRoll {
			return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("A marksheet for roll number %s already exists", rollNo))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Database connection error! Could not save the marksheet.")
	}

	return renderStudentView(c, cfg, "marksheets/result", student, subjects)
}

// subjectRows converts the aggregated sheet into persistable subject rows.
func subjectRows(sheet *grades.Marksheet) []*models.Subject {
	subjects := make([]*models.Subject, 0, len(sheet.Subjects))
	for _, s := range sheet.Subjects {
		subjects = append(subjects, &models.Subject{
			SubjectName: s.Name,
			Marks:       s.Marks,
			MaxMarks:    s.MaxMarks,
			Grade:       s.Grade,
		})
	}
	return subjects
}

// History lists recent records, or search matches when ?search= is given.
func History(c *fiber.Ctx, cfg *config.Config) error {
	search := strings.TrimSpace(c.Query("search"))

	var (
		students []*models.Student
		err      error
	)
	if search != "" {
		students, err = database.SearchStudents(cfg.DB, search)
	} else {
		students, err = database.ListRecentStudents(cfg.DB, 50)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database connection error!")
	}

	return c.Render("marksheets/history", fiber.Map{
		"Title":       "Marksheet History - " + cfg.CollegeName,
		"CollegeName": cfg.CollegeName,
		"Students":    students,
		"SearchQuery": search,
		"Username":    c.Locals("username"),
		"Role":        c.Locals("role"),
	})
}

func ShowVerifyPage(c *fiber.Ctx, cfg *config.Config) error {
	return c.Render("marksheets/verify", fiber.Map{
		"Title":       "Verify Result - " + cfg.CollegeName,
		"CollegeName": cfg.CollegeName,
	})
}

// VerifyByRollNo is the public lookup by the human-facing identifier.
func VerifyByRollNo(c *fiber.Ctx, cfg *config.Config) error {
	code := strings.TrimSpace(c.FormValue("verification_code"))
	if code == "" {
		return c.Render("marksheets/verify", fiber.Map{
			"Title":       "Verify Result - " + cfg.CollegeName,
			"CollegeName": cfg.CollegeName,
			"Error":       "Please enter a roll number to verify.",
		})
	}

	student, err := database.GetStudentByRollNo(cfg.DB, code)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database connection error!")
	}
	if student == nil {
		return c.Render("marksheets/verify", fiber.Map{
			"Title":       "Verify Result - " + cfg.CollegeName,
			"CollegeName": cfg.CollegeName,
			"Error":       "Invalid verification code or result not found.",
		})
	}

	return renderVerified(c, cfg, student)
}

// VerifyByID is the public lookup by record id, linked from the PDF footer.
func VerifyByID(c *fiber.Ctx, cfg *config.Config) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid record id")
	}

	student, err := database.GetStudentByID(cfg.DB, id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database connection error!")
	}
	if student == nil {
		return c.Render("marksheets/verify", fiber.Map{
			"Title":       "Verify Result - " + cfg.CollegeName,
			"CollegeName": cfg.CollegeName,
			"Error":       "Invalid verification code or result not found.",
		})
	}

	return renderVerified(c, cfg, student)
}

func renderVerified(c *fiber.Ctx, cfg *config.Config, student *models.Student) error {
	subjects, err := database.GetStudentSubjects(cfg.DB, student.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Database connection error!")
	}
	return renderStudentView(c, cfg, "marksheets/verify", student, subjects)
}

// DownloadPDF streams the record as a PDF attachment.
func DownloadPDF(c *fiber.Ctx, cfg *config.Config) error {
	student, subjects, err := loadRecord(c, cfg)
	if err != nil {
		return err
	}

	pdfBytes, err := BuildMarksheetPDF(cfg, student, subjects)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate PDF")
	}

	filename := fmt.Sprintf("marksheet_%s_%s.pdf", student.RollNo, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// DownloadPrintView renders the print-optimized HTML copy of the marksheet.
// Signature and seal are always shown when the assets exist, matching the PDF.
func DownloadPrintView(c *fiber.Ctx, cfg *config.Config) error {
	student, subjects, err := loadRecord(c, cfg)
	if err != nil {
		return err
	}

	student.IncludeSignature = true
	student.IncludeSeal = true
	// Print view is a standalone page, skip the site layout.
	return renderStudentView(c, cfg, "marksheets/print", student, subjects, "")
}

func loadRecord(c *fiber.Ctx, cfg *config.Config) (*models.Student, []*models.Subject, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid record id")
	}

	student, err := database.GetStudentByID(cfg.DB, id)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Database connection error!")
	}
	if student == nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Student record not found!")
	}

	subjects, err := database.GetStudentSubjects(cfg.DB, student.ID)
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Database connection error!")
	}
	return student, subjects, nil
}

// renderStudentView renders any of the marksheet templates with the shared
// field set so the HTML, print and verify views stay consistent.
func renderStudentView(c *fiber.Ctx, cfg *config.Config, template string, student *models.Student, subjects []*models.Subject, layouts ...string) error {
	teacherSigURL, principalSigURL, sealURL := signatureAssets(cfg, student)

	return c.Render(template, fiber.Map{
		"Title":                 "Marksheet - " + student.Name,
		"CollegeName":           cfg.CollegeName,
		"CollegeSubtitle":       cfg.CollegeSubtitle,
		"Student":               student,
		"Subjects":              subjects,
		"ResultDate":            student.DateCreated.Format("January 2, 2006"),
		"TeacherSignatureURL":   teacherSigURL,
		"PrincipalSignatureURL": principalSigURL,
		"CollegeSealURL":        sealURL,
		"Username":              c.Locals("username"),
		"Role":                  c.Locals("role"),
	}, layouts...)
}

// signatureAssets resolves the fixed-name signature and seal images under the
// uploads dir, honoring the stored include flags.
func signatureAssets(cfg *config.Config, student *models.Student) (teacherSig, principalSig, seal string) {
	if student.IncludeSignature && student.ClassTeacher != "" {
		if _, err := os.Stat(filepath.Join(cfg.UploadDir, "teachersign.png")); err == nil {
			teacherSig = "/static/uploads/teachersign.png"
		}
	}
	if student.IncludeSignature && student.Principal != "" {
		if _, err := os.Stat(filepath.Join(cfg.UploadDir, "principalsign.png")); err == nil {
			principalSig = "/static/uploads/principalsign.png"
		}
	}
	if student.IncludeSeal {
		if _, err := os.Stat(filepath.Join(cfg.UploadDir, "collegeseal.png")); err == nil {
			seal = "/static/uploads/collegeseal.png"
		}
	}
	return teacherSig, principalSig, seal
}

// formList reads repeated form fields, covering both urlencoded and
// multipart submissions.
func formList(c *fiber.Ctx, key string) []string {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if values, ok := form.Value[key]; ok {
			return values
		}
	}

	var values []string
	for _, v := range c.Context().PostArgs().PeekMulti(key) {
		values = append(values, string(v))
	}
	return values
}
