package storage

import (
	"context"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/go-faster/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore keeps values in the cart_snapshots table.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the cart_snapshots table.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	if err := p.db.WithContext(ctx).AutoMigrate(&models.CartSnapshot{}); err != nil {
		return errors.Wrap(err, "migrate cart_snapshots")
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var snap models.CartSnapshot
	err := p.db.WithContext(ctx).Where("key = ?", key).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "load cart snapshot %q", key)
	}
	return string(snap.Payload), true, nil
}

func (p *PostgresStore) Set(ctx context.Context, key, value string) error {
	snap := models.CartSnapshot{Key: key, Payload: datatypes.JSON(value)}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snap).Error
	if err != nil {
		return errors.Wrapf(err, "save cart snapshot %q", key)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, key string) error {
	if err := p.db.WithContext(ctx).Where("key = ?", key).Delete(&models.CartSnapshot{}).Error; err != nil {
		return errors.Wrapf(err, "delete cart snapshot %q", key)
	}
	return nil
}
