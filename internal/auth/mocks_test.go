package auth

import (
	"context"
	"time"

	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByUUID(ctx context.Context, uuid string) (*models.Customer, error) {
	args := m.Called(ctx, uuid)
	c, _ := args.Get(0).(*models.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) GetByContactNumber(ctx context.Context, contactNumber string) (*models.Customer, error) {
	args := m.Called(ctx, contactNumber)
	c, _ := args.Get(0).(*models.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*models.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) UpdateNames(ctx context.Context, id int64, firstName, lastName string) error {
	args := m.Called(ctx, id, firstName, lastName)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, auth *models.CustomerAuth) error {
	args := m.Called(ctx, auth)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByAccessToken(ctx context.Context, accessToken string) (*models.CustomerAuth, error) {
	args := m.Called(ctx, accessToken)
	a, _ := args.Get(0).(*models.CustomerAuth)
	return a, args.Error(1)
}

func (m *MockSessionRepository) MarkLoggedOut(ctx context.Context, accessToken string, at time.Time) (bool, error) {
	args := m.Called(ctx, accessToken, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
