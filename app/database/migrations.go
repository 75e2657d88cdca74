package database

import (
	"database/sql"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// RunMigrations creates the schema if missing and seeds the default accounts.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			roll_no VARCHAR(50) UNIQUE NOT NULL,
			branch VARCHAR(100) NOT NULL,
			semester VARCHAR(20) NOT NULL,
			exam_type VARCHAR(50) NOT NULL,
			total_marks INT NOT NULL,
			max_marks INT NOT NULL,
			percentage NUMERIC(5,2) NOT NULL,
			grade VARCHAR(10) NOT NULL,
			remarks TEXT,
			class_teacher VARCHAR(255) NOT NULL DEFAULT '',
			principal VARCHAR(255) NOT NULL DEFAULT '',
			include_signature BOOLEAN NOT NULL DEFAULT false,
			include_seal BOOLEAN NOT NULL DEFAULT false,
			date_created TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS subjects (
			id SERIAL PRIMARY KEY,
			student_id INT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			subject_name VARCHAR(255) NOT NULL,
			marks INT NOT NULL,
			max_marks INT NOT NULL,
			grade VARCHAR(10)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(100) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'teacher',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_subjects_student_id ON subjects(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_students_date_created ON students(date_created)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	if err := seedDefaultUsers(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// seedDefaultUsers creates the stock admin and teacher logins if they do not
// exist yet.
func seedDefaultUsers(db *sql.DB) error {
	seed := []struct {
		username string
		password string
		role     string
	}{
		{"admin", "admin123", "admin"},
		{"teacher", "teacher123", "teacher"},
	}

	for _, u := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), 14)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		_, err = db.Exec(`
			INSERT INTO users (username, password_hash, role)
			VALUES ($1, $2, $3)
			ON CONFLICT (username) DO NOTHING
		`, u.username, string(hash), u.role)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.username, err)
		}
	}
	return nil
}
