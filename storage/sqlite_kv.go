package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"truthonly/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLKV stores keys in the kv_entries table.
type SQLKV struct {
	db *gorm.DB
}

// NewSQLKV wraps an already migrated gorm connection.
func NewSQLKV(db *gorm.DB) *SQLKV {
	return &SQLKV{db: db}
}

func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.KVEntry
	err := s.db.WithContext(ctx).Where(&models.KVEntry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key '%s': %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (s *SQLKV) Set(ctx context.Context, key string, value []byte) error {
	entry := models.KVEntry{Key: key, Value: string(value), UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write key '%s': %w", key, err)
	}
	return nil
}

func (s *SQLKV) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where(&models.KVEntry{Key: key}).Delete(&models.KVEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete key '%s': %w", key, err)
	}
	return nil
}
