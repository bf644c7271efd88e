package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/teamboard/internal/logging"
	"github.com/balkashynov/teamboard/internal/models"
)

// MemoryDSN keeps the whole database inside the process
const MemoryDSN = ":memory:"

// Options configures Open
type Options struct {
	DSN    string             // defaults to MemoryDSN
	Now    func() time.Time   // defaults to time.Now
	Logger logrus.FieldLogger // defaults to logging.Logger
}

// Store owns every entity of one board session. It is the only writer of its
// database; callers get copies, never references into it.
type Store struct {
	db       *gorm.DB
	now      func() time.Time
	log      logrus.FieldLogger
	identity models.Identity
}

// Open creates an empty session store and runs migrations
func Open(opts Options) (*Store, error) {
	if opts.DSN == "" {
		opts.DSN = MemoryDSN
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Logger
	}

	db, err := gorm.Open(sqlite.Open(opts.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// Every pooled connection to :memory: is a separate database, so pin one
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access session database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	s := &Store{db: db, now: opts.Now, log: opts.Logger}
	if err := s.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// runMigrations creates the schema
func (s *Store) runMigrations() error {
	return s.db.AutoMigrate(
		&models.TeamMember{},
		&models.Task{},
		&models.ChecklistItem{},
		&models.Attachment{},
		&models.Feedback{},
		&models.Notification{},
	)
}

// Close releases the session database; its contents are gone afterwards
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SetIdentity records who is using the session
func (s *Store) SetIdentity(id models.Identity) {
	s.identity = id
	s.log.WithField("identity", id.String()).Info("session identity set")
}

// Identity returns the current session principal
func (s *Store) Identity() models.Identity {
	return s.identity
}

// Now returns the store clock's current time
func (s *Store) Now() time.Time {
	return s.now()
}

// Load inserts seed entities as-is, without authorization checks or
// notifications. Tasks with a zero ID get a fresh one.
func (s *Store) Load(members []models.TeamMember, tasks []models.Task, feedback []models.Feedback) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(members) > 0 {
			if err := tx.Create(&members).Error; err != nil {
				return err
			}
		}
		for i := range tasks {
			task := tasks[i]
			if err := prepareChildren(&task); err != nil {
				return err
			}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
		}
		for i := range feedback {
			fb := feedback[i]
			if err := tx.Create(&fb).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"members":  len(members),
		"tasks":    len(tasks),
		"feedback": len(feedback),
	}).Info("seed data loaded")
	return nil
}

// reject logs a refused mutation and hands the error back
func (s *Store) reject(op string, err error) error {
	s.log.WithFields(logrus.Fields{
		"op":       op,
		"identity": s.identity.String(),
	}).WithError(err).Warn("mutation rejected")
	return err
}

// requireMember refuses guest and unauthenticated sessions, and member ids
// that do not resolve to a team member
func (s *Store) requireMember(action string) error {
	if s.identity.IsGuest() {
		return forbiddenf("guests cannot %s", action)
	}
	if !s.identity.IsMember() {
		return forbiddenf("sign in as a team member to %s", action)
	}
	if _, err := s.Member(s.identity.ID()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return forbiddenf("%q is not a team member and cannot %s", s.identity.ID(), action)
		}
		return err
	}
	return nil
}
