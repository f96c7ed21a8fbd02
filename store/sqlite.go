package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mealcart/domain"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// cartLineRecord is one persisted cart line
type cartLineRecord struct {
	StorageKey string          `gorm:"primaryKey;column:storage_key"`
	LineID     string          `gorm:"primaryKey;column:line_id"`
	Name       string          `gorm:"not null"`
	Price      decimal.Decimal `gorm:"type:text;not null"`
	Image      string
	Qty        int `gorm:"not null"`
	Note       string
	Bag        string
	UpdatedAt  time.Time
}

func (cartLineRecord) TableName() string { return "cart_lines" }

// SQLiteStore persists snapshots as rows of the cart_lines table
type SQLiteStore struct {
	db *gorm.DB
}

var _ domain.CartStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at dsn and migrates it
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}
	if err := db.AutoMigrate(&cartLineRecord{}); err != nil {
		return nil, fmt.Errorf("migrate cart_lines: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database handle
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLiteStore) Load(ctx context.Context, key string) (domain.Snapshot, error) {
	var rows []cartLineRecord
	if err := s.db.WithContext(ctx).Where("storage_key = ?", key).Find(&rows).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("load cart %s: %w", key, err)
	}
	snap := domain.EmptySnapshot()
	for _, r := range rows {
		line := domain.CartLine{
			ID:    r.LineID,
			Name:  r.Name,
			Price: r.Price,
			Image: r.Image,
			Qty:   r.Qty,
			Note:  r.Note,
		}
		if r.Bag != "" {
			var bag domain.BagConfiguration
			if err := json.Unmarshal([]byte(r.Bag), &bag); err != nil {
				return domain.Snapshot{}, fmt.Errorf("decode bag of line %s: %w", r.LineID, err)
			}
			line.Bag = &bag
		}
		snap.Lines[line.ID] = line
	}
	return snap, nil
}

// Save replaces every row stored under key in one transaction
func (s *SQLiteStore) Save(ctx context.Context, key string, snap domain.Snapshot) error {
	rows := make([]cartLineRecord, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		r := cartLineRecord{
			StorageKey: key,
			LineID:     l.ID,
			Name:       l.Name,
			Price:      l.Price,
			Image:      l.Image,
			Qty:        l.Qty,
			Note:       l.Note,
		}
		if l.Bag != nil {
			b, err := json.Marshal(l.Bag)
			if err != nil {
				return err
			}
			r.Bag = string(b)
		}
		rows = append(rows, r)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("storage_key = ?", key).Delete(&cartLineRecord{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
