package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Config carries everything the handlers need. It is built once at startup
// and passed into route setup; nothing mutates it afterwards.
type Config struct {
	DB *sql.DB

	JWTSecret       string
	CollegeName     string
	CollegeSubtitle string

	UploadDir     string
	MaxUploadSize int64

	ListenAddr string
}

// Load reads .env (if present) and the environment, opens the database pool
// and verifies connectivity.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		JWTSecret:       getenv("JWT_SECRET", "marksheet-dev-secret-change-in-production"),
		CollegeName:     getenv("COLLEGE_NAME", "GULZAR GROUP OF INSTITUTIONS"),
		CollegeSubtitle: getenv("COLLEGE_ADDRESS", "Academic Excellence Since 1995"),
		UploadDir:       getenv("UPLOAD_DIR", "static/uploads"),
		MaxUploadSize:   16 * 1024 * 1024,
		ListenAddr:      ":" + getenv("PORT", "8080"),
	}

	if v := os.Getenv("MAX_UPLOAD_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE %q: %w", v, err)
		}
		cfg.MaxUploadSize = size
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getenv("DB_HOST", "localhost"),
			getenv("DB_PORT", "5432"),
			getenv("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			getenv("DB_NAME", "marksheet_db"),
			getenv("DB_SSLMODE", "disable"),
		)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("cannot establish database connection: %w", err)
	}
	log.Println("Database connected successfully")

	cfg.DB = db
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
