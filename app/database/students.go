package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhiishekbisht/Marksheet-Generator/app/models"
	"github.com/lib/pq"
)

// ErrDuplicateRoll is returned when a create hits the roll_no unique
// constraint. Single creates surface it to the user; bulk creates skip it.
var ErrDuplicateRoll = errors.New("roll number already exists")

// CreateStudentWithSubjects inserts the student row and all of its subject
// rows in one transaction. Either everything is written or nothing is.
func CreateStudentWithSubjects(db *sql.DB, student *models.Student, subjects []*models.Subject) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO students (name, roll_no, branch, semester, exam_type,
			total_marks, max_marks, percentage, grade, remarks,
			class_teacher, principal, include_signature, include_seal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, date_created
	`,
		student.Name, student.RollNo, student.Branch, student.Semester, student.ExamType,
		student.TotalMarks, student.MaxMarks, student.Percentage, student.Grade, student.Remarks,
		student.ClassTeacher, student.Principal, student.IncludeSignature, student.IncludeSeal,
	).Scan(&student.ID, &student.DateCreated)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateRoll
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	for _, subject := range subjects {
		subject.StudentID = student.ID
		err = tx.QueryRow(`
			INSERT INTO subjects (student_id, subject_name, marks, max_marks, grade)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, subject.StudentID, subject.SubjectName, subject.Marks, subject.MaxMarks, subject.Grade).Scan(&subject.ID)
		if err != nil {
			return fmt.Errorf("failed to create subject %s: %w", subject.SubjectName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit marksheet: %w", err)
	}
	student.Subjects = subjects
	return nil
}

const studentColumns = `id, name, roll_no, branch, semester, exam_type,
	total_marks, max_marks, percentage, grade, remarks,
	class_teacher, principal, include_signature, include_seal, date_created`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.Name, &s.RollNo, &s.Branch, &s.Semester, &s.ExamType,
		&s.TotalMarks, &s.MaxMarks, &s.Percentage, &s.Grade, &s.Remarks,
		&s.ClassTeacher, &s.Principal, &s.IncludeSignature, &s.IncludeSeal, &s.DateCreated,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetStudentByID returns the student row, or (nil, nil) when it does not exist.
func GetStudentByID(db *sql.DB, id int) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	student, err := scanStudent(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}
	return student, nil
}

// GetStudentByRollNo is the public-verification lookup.
func GetStudentByRollNo(db *sql.DB, rollNo string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE roll_no = $1`
	student, err := scanStudent(db.QueryRow(query, rollNo))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student: %w", err)
	}
	return student, nil
}

func GetStudentSubjects(db *sql.DB, studentID int) ([]*models.Subject, error) {
	query := `SELECT id, student_id, subject_name, marks, max_marks, grade
			  FROM subjects WHERE student_id = $1 ORDER BY id`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		err := rows.Scan(&subject.ID, &subject.StudentID, &subject.SubjectName,
			&subject.Marks, &subject.MaxMarks, &subject.Grade)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// SearchStudents does a case-insensitive substring match on name or roll
// number, newest first.
func SearchStudents(db *sql.DB, search string) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
			  WHERE name ILIKE $1 OR roll_no ILIKE $1
			  ORDER BY date_created DESC`

	rows, err := db.Query(query, "%"+search+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search students: %w", err)
	}
	defer rows.Close()
	return collectStudents(rows)
}

// ListRecentStudents returns the newest records, bounded by limit.
func ListRecentStudents(db *sql.DB, limit int) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students
			  ORDER BY date_created DESC LIMIT $1`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()
	return collectStudents(rows)
}

// ListAllStudents returns every record, used by the spreadsheet export.
func ListAllStudents(db *sql.DB) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY id`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()
	return collectStudents(rows)
}

// ListAllSubjects returns every subject row, used by the spreadsheet export.
func ListAllSubjects(db *sql.DB) ([]*models.Subject, error) {
	query := `SELECT id, student_id, subject_name, marks, max_marks, grade
			  FROM subjects ORDER BY student_id, id`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		err := rows.Scan(&subject.ID, &subject.StudentID, &subject.SubjectName,
			&subject.Marks, &subject.MaxMarks, &subject.Grade)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func collectStudents(rows *sql.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// ClearAllData removes every student and subject row and resets the identity
// sequences. Subjects go with their students via the cascade. Counting and
// truncating happen in one transaction so the reported counts match what was
// actually deleted even with concurrent writers.
func ClearAllData(db *sql.DB) (studentsDeleted, subjectsDeleted int, err error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err = tx.QueryRow(`SELECT COUNT(*) FROM students`).Scan(&studentsDeleted); err != nil {
		return 0, 0, fmt.Errorf("failed to count students: %w", err)
	}
	if err = tx.QueryRow(`SELECT COUNT(*) FROM subjects`).Scan(&subjectsDeleted); err != nil {
		return 0, 0, fmt.Errorf("failed to count subjects: %w", err)
	}

	if _, err = tx.Exec(`TRUNCATE students, subjects RESTART IDENTITY CASCADE`); err != nil {
		return 0, 0, fmt.Errorf("failed to clear data: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to clear data: %w", err)
	}
	return studentsDeleted, subjectsDeleted, nil
}
