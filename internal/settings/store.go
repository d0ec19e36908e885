package settings

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kinomedia/kino/pkg/errors"
)

// Setting is one persisted key-value pair.
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// Store is the local persistent key-value storage backing theme
// preference, the current session user and the registered-user list.
// Values are opaque strings; callers own their serialization.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the settings database at the given path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal, "opening settings database", err)
	}

	if err := db.AutoMigrate(&Setting{}); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeInternal, "migrating settings schema", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an existing database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get retrieves the value for a key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var setting Setting
	if err := s.db.WithContext(ctx).First(&setting, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.NotFound("setting not found: " + key)
		}
		return "", errors.Wrap(errors.ErrorTypeInternal, "reading setting", err)
	}
	return setting.Value, nil
}

// Set stores the value for a key, overwriting any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	setting := Setting{Key: key, Value: value, UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Save(&setting).Error; err != nil {
		return errors.Wrap(errors.ErrorTypeInternal, "writing setting", err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&Setting{}, "key = ?", key).Error; err != nil {
		return errors.Wrap(errors.ErrorTypeInternal, "deleting setting", err)
	}
	return nil
}
