package service

import (
	"testing"

	"educonnect_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// The production schema uses MySQL column types, so tests create the tables
// they touch by hand instead of via AutoMigrate.
var serviceTestDDL = []string{
	`CREATE TABLE users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME,
  name TEXT,
  email TEXT,
  role TEXT
)`,
	`CREATE TABLE courses (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME,
  title TEXT,
  description TEXT,
  category TEXT,
  level TEXT,
  tags TEXT,
  thumbnail TEXT,
  tutor_id INTEGER,
  price REAL,
  is_published BOOLEAN,
  published_at DATETIME
)`,
	`CREATE TABLE assessments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME,
  title TEXT,
  description TEXT,
  type TEXT,
  course_id INTEGER,
  time_limit INTEGER,
  due_date DATETIME,
  status TEXT,
  passing_score INTEGER,
  category TEXT,
  creator_id INTEGER
)`,
	`CREATE TABLE assessment_submissions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME,
  user_id INTEGER,
  assessment_id INTEGER,
  answers TEXT,
  score INTEGER,
  passed BOOLEAN,
  time_spent INTEGER,
  start_time DATETIME,
  end_time DATETIME,
  certificate_id INTEGER
)`,
	`CREATE TABLE certificates (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME,
  title TEXT,
  user_id INTEGER,
  course_id INTEGER,
  assessment_id INTEGER,
  issue_date DATETIME,
  expiry_date DATETIME,
  issuer TEXT,
  grade TEXT,
  score INTEGER,
  skills TEXT,
  credential_id TEXT UNIQUE,
  status TEXT,
  UNIQUE (user_id, course_id, assessment_id)
)`,
}

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// One connection so every statement sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	for _, ddl := range serviceTestDDL {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("create test table: %v", err)
		}
	}
	return db
}
