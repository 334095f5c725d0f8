package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// kvRecord is the single-table schema backing GormStore
type kvRecord struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     []byte `gorm:"type:blob"`
	UpdatedAt time.Time
}

// TableName sets the table name for GORM
func (kvRecord) TableName() string {
	return "kv_records"
}

// GormStore is a KVStore backed by a SQLite database through GORM
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens (or creates) the SQLite database at path and migrates
// the schema
func NewGormStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Save upserts the value under the key
func (s *GormStore) Save(ctx context.Context, key string, value []byte) error {
	record := kvRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Load returns the value stored under the key, nil when absent
func (s *GormStore) Load(ctx context.Context, key string) ([]byte, error) {
	var record kvRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return record.Value, nil
}

// Close closes the underlying database connection
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
