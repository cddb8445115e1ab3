package store

import (
	"context"

	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) GetByUUID(ctx context.Context, uuid string) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// Upsert inserts the item or overwrites the one with the same uuid
func (r *itemRepository) Upsert(ctx context.Context, item *models.Item) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{"item_name", "price", "type", "image_key"}),
	}).Create(item).Error
	return translate(err)
}
