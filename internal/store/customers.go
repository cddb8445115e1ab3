package store

import (
	"context"

	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return translate(r.db.WithContext(ctx).Create(customer).Error)
}

func (r *customerRepository) GetByUUID(ctx context.Context, uuid string) (*models.Customer, error) {
	return r.first(ctx, "uuid = ?", uuid)
}

func (r *customerRepository) GetByContactNumber(ctx context.Context, contactNumber string) (*models.Customer, error) {
	return r.first(ctx, "contact_number = ?", contactNumber)
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.first(ctx, "email = ?", email)
}

// UpdateNames writes only the name columns, so a concurrent password change
// is never overwritten. An empty lastName leaves the stored one in place.
func (r *customerRepository) UpdateNames(ctx context.Context, id int64, firstName, lastName string) error {
	columns := map[string]interface{}{"first_name": firstName}
	if lastName != "" {
		columns["last_name"] = lastName
	}
	return r.updateColumns(ctx, id, columns)
}

func (r *customerRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"password": passwordHash,
	})
}

func (r *customerRepository) updateColumns(ctx context.Context, id int64, columns map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepository) first(ctx context.Context, query string, arg interface{}) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where(query, arg).First(&customer).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}
