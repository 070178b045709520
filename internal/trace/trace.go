// Package trace implements photon's optional debug trace store: when the
// CLI is run with --debug-db PATH (spec.md §6), every statement the
// semantic engine processes is persisted as a Run/Event row so a
// developer can inspect a transpile after the fact. Adapted from the
// teacher's db.Connect/db.Migrate (db/sqlite.go) and models.Stage/Apply
// record shape (models/models.go): same gorm.AutoMigrate-on-connect
// pattern and JSON-column convention, pointed at glebarez/sqlite instead
// of gorm.io/driver/sqlite+libsql, since photon's trace store is a local
// single-writer debug artifact with no remote-Turso counterpart to
// justify the libsql client (see DESIGN.md).
package trace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Run is one photon invocation: one source file processed by one Engine.
type Run struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Filename  string `gorm:"type:varchar(255);index"`
	Lang      string `gorm:"type:varchar(20)"`
	StartedAt int64
	EndedAt   int64
	Events    []Event `gorm:"foreignKey:RunID"`
}

// Event is one processed statement within a Run, recording the IR kind
// produced and, when processing failed, the error text.
type Event struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	RunID    string `gorm:"type:varchar(36);index"`
	Sequence int
	NodeKind string         `gorm:"type:varchar(50)"`
	Detail   datatypes.JSON `gorm:"type:jsonb"`
	Err      string         `gorm:"type:text"`
}

// Store wraps a *gorm.DB with the run/event recording methods
// internal/engine.Engine.Trace calls through to.
type Store struct {
	db *gorm.DB
}

// Open connects to (creating if necessary) the SQLite file at path and
// runs migrations, mirroring db.Connect's directory-creation and
// AutoMigrate-on-connect behavior.
func Open(path string, debug bool) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("trace: create database directory: %w", err)
		}
	}
	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("trace: connect: %w", err)
	}
	if err := db.AutoMigrate(&Run{}, &Event{}); err != nil {
		return nil, fmt.Errorf("trace: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// StartRun inserts a new Run row and returns its ID.
func (s *Store) StartRun(filename, lang string, startedAt int64) (string, error) {
	run := &Run{ID: uuid.NewString(), Filename: filename, Lang: lang, StartedAt: startedAt}
	if err := s.db.Create(run).Error; err != nil {
		return "", err
	}
	return run.ID, nil
}

// RecordEvent appends one Event to runID.
func (s *Store) RecordEvent(runID string, sequence int, nodeKind string, errText string) error {
	ev := &Event{RunID: runID, Sequence: sequence, NodeKind: nodeKind, Err: errText}
	return s.db.Create(ev).Error
}

// EndRun stamps the Run's completion time.
func (s *Store) EndRun(runID string, endedAt int64) error {
	return s.db.Model(&Run{}).Where("id = ?", runID).Update("ended_at", endedAt).Error
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
