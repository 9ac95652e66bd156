// Package store provides the append-only interaction log backed by SQLite.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ai-interaction-service/internal/models"
)

// Error wraps any persistence failure. A store failure is fatal to the
// request that triggered it: an answered but unlogged interaction is
// never allowed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store error: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Store is the durable interaction log. Appends are serialized through
// a single SQLite connection so record IDs are assigned monotonically
// with no lost updates.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite database at path and
// migrates the log table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, &Error{Op: "open", Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	// SQLite allows one writer; a single connection serializes appends.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.InteractionRecord{}); err != nil {
		return nil, &Error{Op: "migrate", Err: err}
	}

	return &Store{db: db}, nil
}

// Append durably inserts one record and returns its assigned ID.
// The record must carry an orchestration-time timestamp.
func (s *Store) Append(ctx context.Context, rec *models.InteractionRecord) (uint, error) {
	if rec.Timestamp == "" {
		return 0, &Error{Op: "append", Err: errors.New("record timestamp not set")}
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return 0, &Error{Op: "append", Err: err}
	}
	return rec.ID, nil
}

// TopQueries groups the log by exact query text and returns the n most
// frequent queries, count descending, ties broken by first insertion.
func (s *Store) TopQueries(ctx context.Context, n int) ([]models.AggregateCount, error) {
	rows := make([]models.AggregateCount, 0, n)
	err := s.db.WithContext(ctx).
		Raw(`SELECT user_query, COUNT(*) AS count
		     FROM logs
		     GROUP BY user_query
		     ORDER BY count DESC, MIN(id) ASC
		     LIMIT ?`, n).
		Scan(&rows).Error
	if err != nil {
		return nil, &Error{Op: "top queries", Err: err}
	}
	return rows, nil
}

// LastTimestamp returns the timestamp of the most recently appended
// record.
func (s *Store) LastTimestamp(ctx context.Context) (string, error) {
	var rec models.InteractionRecord
	if err := s.db.WithContext(ctx).Order("id DESC").First(&rec).Error; err != nil {
		return "", &Error{Op: "last timestamp", Err: err}
	}
	return rec.Timestamp, nil
}

// Count returns the total number of appended records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.InteractionRecord{}).Count(&n).Error; err != nil {
		return 0, &Error{Op: "count", Err: err}
	}
	return n, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
