package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AbhishekPandey12/foodorderingapp/internal/database"
	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// DuplicateError is returned when an insert trips a unique index. Column is
// empty when the driver does not say which one.
type DuplicateError struct {
	Column string
}

func (e *DuplicateError) Error() string {
	if e.Column == "" {
		return ErrDuplicate.Error()
	}
	return fmt.Sprintf("%s: %s", ErrDuplicate, e.Column)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// CustomerRepository persists customers. Email and contact number are unique.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByUUID(ctx context.Context, uuid string) (*models.Customer, error)
	GetByContactNumber(ctx context.Context, contactNumber string) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	// UpdateNames and UpdatePassword touch only their own columns. An empty
	// lastName is not written. The uuid, email and contact number never
	// change after signup.
	UpdateNames(ctx context.Context, id int64, firstName, lastName string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// SessionRepository persists customer auth records keyed by access token
type SessionRepository interface {
	Create(ctx context.Context, auth *models.CustomerAuth) error
	GetByAccessToken(ctx context.Context, accessToken string) (*models.CustomerAuth, error)
	// MarkLoggedOut sets logout_at only if it is still unset and reports
	// whether this call did it.
	MarkLoggedOut(ctx context.Context, accessToken string, at time.Time) (bool, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ItemRepository looks up and loads items
type ItemRepository interface {
	GetByUUID(ctx context.Context, uuid string) (*models.Item, error)
	Upsert(ctx context.Context, item *models.Item) error
}

// Store groups the gorm backed repositories over one connection
type Store struct {
	db        *gorm.DB
	Customers CustomerRepository
	Sessions  SessionRepository
	Items     ItemRepository
}

// New creates a new store instance
func New(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Customers: NewCustomerRepository(db),
		Sessions:  NewSessionRepository(db),
		Items:     NewItemRepository(db),
	}
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translate maps driver and gorm errors onto the store sentinels
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if column, ok := database.UniqueViolation(err); ok {
		return &DuplicateError{Column: column}
	}
	return err
}
