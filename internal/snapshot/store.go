package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/wrokout/internal/models"
)

// ErrNotFound is returned by a Store when the key holds no value.
var ErrNotFound = errors.New("snapshot not found")

// Store is a durable key/value slot.
type Store interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Delete(key string) error
}

// FileStore keeps each key in its own file under dir.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.dir, safe+".json")
}

// Read implements Store.
func (f *FileStore) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Write replaces the file atomically: the value goes to a temp file that is
// renamed over the old one, so a crash mid-write leaves the previous snapshot.
func (f *FileStore) Write(key string, value []byte) error {
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(f.dir, ".snapshot-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

// Delete implements Store. Deleting a missing key is not an error.
func (f *FileStore) Delete(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// DBStore keeps slots in the snapshot_slots table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore creates a DBStore over db. The table is created by the db migrations.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Read implements Store.
func (s *DBStore) Read(key string) ([]byte, error) {
	var slot models.SnapshotSlot
	err := s.db.Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return slot.Value, nil
}

// Write implements Store.
func (s *DBStore) Write(key string, value []byte) error {
	slot := models.SnapshotSlot{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}

// Delete implements Store.
func (s *DBStore) Delete(key string) error {
	return s.db.Where("slot_key = ?", key).Delete(&models.SnapshotSlot{}).Error
}
