package item

import (
	"context"
	"errors"

	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
	"github.com/AbhishekPandey12/foodorderingapp/internal/store"
)

// Error is an item lookup failure with a stable code
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

var ErrNotFound = &Error{Code: "INF-001", Message: "No item by this id"}

// Service looks up items for the public item endpoint
type Service struct {
	items store.ItemRepository
}

func NewService(items store.ItemRepository) *Service {
	return &Service{items: items}
}

func (s *Service) GetItem(ctx context.Context, itemUUID string) (*models.Item, error) {
	item, err := s.items.GetByUUID(ctx, itemUUID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}
