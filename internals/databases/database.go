package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=hrms&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 plays nice with PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // give the server a moment to come up
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

// EnsureSchedulingConstraints installs the database-side guard behind the conflict
// validator: two concurrent "validate then insert" requests can both pass the read
// phase, so exclusion constraints over (owner, day, minute range) have to reject the
// loser at commit. Controllers map SQLSTATE 23P01 back to a conflict response.
func EnsureSchedulingConstraints() {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`DO $$ BEGIN
			ALTER TABLE schedules ADD CONSTRAINT schedules_no_faculty_overlap
				EXCLUDE USING gist (
					faculty_id WITH =,
					day WITH =,
					int4range(start_min, end_min) WITH &&
				) WHERE (deleted_at IS NULL);
		EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL; END $$`,
		`DO $$ BEGIN
			ALTER TABLE schedules ADD CONSTRAINT schedules_no_section_overlap
				EXCLUDE USING gist (
					class_section_id WITH =,
					day WITH =,
					int4range(start_min, end_min) WITH &&
				) WHERE (deleted_at IS NULL);
		EXCEPTION WHEN duplicate_table OR duplicate_object THEN NULL; END $$`,
	}
	for _, s := range stmts {
		if err := DB.Exec(s).Error; err != nil {
			log.Printf("[MIGRATE] scheduling constraint skipped: %v", err)
		}
	}
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
