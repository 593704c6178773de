package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is a single persisted key-value row.
type Record struct {
	Key   string `gorm:"primaryKey;type:varchar(64)"`
	Value string
}

// GORMStore is a GORM implementation of Store backed by a records table.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new instance of GORMStore. The caller is expected
// to have migrated the Record model.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{
		db: db,
	}
}

// Get retrieves the value stored under key.
func (s *GORMStore) Get(key string) (string, error) {
	var rec Record
	if err := s.db.First(&rec, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get record %s: %w", key, err)
	}
	return rec.Value, nil
}

// Set stores value under key, overwriting any previous value.
func (s *GORMStore) Set(key, value string) error {
	rec := Record{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to set record %s: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key. Removing an absent key is not
// an error.
func (s *GORMStore) Remove(key string) error {
	if err := s.db.Delete(&Record{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to remove record %s: %w", key, err)
	}
	return nil
}
