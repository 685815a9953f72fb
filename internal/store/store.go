package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abhisek/skillpath/internal/logger"
)

// ErrNotFound is returned when a requested row does not exist or is not
// owned by the caller.
var ErrNotFound = errors.New("not found")

// Store wraps the gorm handle and hands out repositories.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects to the database for the given driver ("postgres" or
// "sqlite"), runs auto-migration, and returns a ready Store.
func Open(driver, dsn string, log *logger.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown store driver: %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&Course{},
		&Milestone{},
		&ProgressRecord{},
		&Certificate{},
		&LLMRequestLog{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, log: log.With("component", "store")}, nil
}

// DB returns the underlying gorm handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Tx runs fn inside a single database transaction. The Store passed to fn is
// bound to that transaction; repositories obtained from it see and write
// uncommitted state. Multi-record mutations (course graph creation, the
// quiz-pass cascade) must go through here so partial state is never visible.
func (s *Store) Tx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, log: s.log})
	})
}

// Courses returns the course repository.
func (s *Store) Courses() CourseRepo {
	return &courseRepo{db: s.db}
}

// Milestones returns the milestone repository.
func (s *Store) Milestones() MilestoneRepo {
	return &milestoneRepo{db: s.db}
}

// Progress returns the progress-record repository.
func (s *Store) Progress() ProgressRepo {
	return &progressRepo{db: s.db}
}

// Certificates returns the certificate repository.
func (s *Store) Certificates() CertificateRepo {
	return &certificateRepo{db: s.db}
}

// LLMLogs returns the LLM request log repository.
func (s *Store) LLMLogs() LLMLogRepo {
	return &llmLogRepo{db: s.db, log: s.log}
}
