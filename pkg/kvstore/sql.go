package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/electroquick/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLClient is the subset of pkg/db the store relies on.
type SQLClient interface {
	DB() *gorm.DB
	Ping(ctx context.Context) error
}

// SQL stores values in the kv_entries table created by the migrations.
type SQL struct {
	client SQLClient
	now    func() time.Time
}

func NewSQL(client SQLClient) (*SQL, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &SQL{client: client, now: time.Now}, nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var entry models.KVEntry
	err := s.client.DB().WithContext(ctx).
		Where("key = ?", key).
		Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select kv entry %q: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	entry := models.KVEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: s.now().UTC(),
	}
	err := s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert kv entry %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
