package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one row of the kv_entries table.
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:255"`
	Value     datatypes.JSON `gorm:"not null"`
	Version   int            `gorm:"not null;default:1"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_entries" }

// GormKV stores entries in a relational database through gorm.
type GormKV struct {
	DB *gorm.DB
}

// NewGormKV migrates the kv_entries table and returns the store.
func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db required")
	}
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return &GormKV{DB: db}, nil
}

func (g *GormKV) Get(ctx context.Context, key string) (Entry, bool, error) {
	var row KVEntry
	if err := g.DB.WithContext(ctx).Where(map[string]interface{}{"key": key}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	return Entry{Value: []byte(row.Value), Version: row.Version}, true, nil
}

func (g *GormKV) Set(ctx context.Context, key string, e Entry) error {
	row := KVEntry{
		Key:       key,
		Value:     datatypes.JSON(e.Value),
		Version:   e.Version,
		UpdatedAt: time.Now().UTC(),
	}
	return g.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "version", "updated_at"}),
	}).Create(&row).Error
}

func (g *GormKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return g.DB.WithContext(ctx).Where(map[string]interface{}{"key": keys}).Delete(&KVEntry{}).Error
}

func (g *GormKV) Close() error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
