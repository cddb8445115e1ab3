package auth

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
	"github.com/AbhishekPandey12/foodorderingapp/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestService(customers *MockCustomerRepository, sessions *MockSessionRepository) (*Service, *TokenManager) {
	tokens := NewTokenManager("test-secret")
	svc := NewService(customers, sessions, tokens,
		WithClock(func() time.Time { return fixedNow }),
		WithHashCost(bcrypt.MinCost),
	)
	return svc, tokens
}

func validSignup() SignupInput {
	return SignupInput{
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane@x.com",
		ContactNumber: "9999999999",
		Password:      "Jane@123",
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hashed, err := hashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return hashed
}

func TestSignup_Success(t *testing.T) {
	customers := new(MockCustomerRepository)
	sessions := new(MockSessionRepository)
	svc, _ := newTestService(customers, sessions)
	in := validSignup()

	customers.On("GetByContactNumber", mock.Anything, in.ContactNumber).Return(nil, store.ErrNotFound)
	customers.On("GetByEmail", mock.Anything, in.Email).Return(nil, store.ErrNotFound)
	customers.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Customer) bool {
		return c.FirstName == "Jane" && c.Password != in.Password && checkPassword(c.Password, in.Password)
	})).Return(nil)

	customer, err := svc.Signup(context.Background(), in)
	require.NoError(t, err)
	_, err = uuid.Parse(customer.UUID)
	assert.NoError(t, err)
	assert.Equal(t, "jane@x.com", customer.Email)
	customers.AssertExpectations(t)
}

func TestSignup_RejectedBeforeStoreAccess(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *SignupInput)
		want   *Error
	}{
		{"empty first name", func(in *SignupInput) { in.FirstName = "" }, ErrMissingSignupField},
		{"blank first name", func(in *SignupInput) { in.FirstName = "   " }, ErrMissingSignupField},
		{"empty email", func(in *SignupInput) { in.Email = "" }, ErrMissingSignupField},
		{"empty contact number", func(in *SignupInput) { in.ContactNumber = "" }, ErrMissingSignupField},
		{"empty password", func(in *SignupInput) { in.Password = "" }, ErrMissingSignupField},
		{"bad email", func(in *SignupInput) { in.Email = "jane.x.com" }, ErrInvalidEmail},
		{"short contact number", func(in *SignupInput) { in.ContactNumber = "12345" }, ErrInvalidContactNumber},
		{"letters in contact number", func(in *SignupInput) { in.ContactNumber = "99999abcde" }, ErrInvalidContactNumber},
		{"weak password", func(in *SignupInput) { in.Password = "password" }, ErrWeakSignupPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers := new(MockCustomerRepository)
			svc, _ := newTestService(customers, new(MockSessionRepository))
			in := validSignup()
			tt.modify(&in)

			_, err := svc.Signup(context.Background(), in)
			assert.ErrorIs(t, err, tt.want)
			customers.AssertNotCalled(t, "GetByContactNumber", mock.Anything, mock.Anything)
			customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSignup_LastNameOptional(t *testing.T) {
	customers := new(MockCustomerRepository)
	svc, _ := newTestService(customers, new(MockSessionRepository))
	in := validSignup()
	in.LastName = ""

	customers.On("GetByContactNumber", mock.Anything, in.ContactNumber).Return(nil, store.ErrNotFound)
	customers.On("GetByEmail", mock.Anything, in.Email).Return(nil, store.ErrNotFound)
	customers.On("Create", mock.Anything, mock.Anything).Return(nil)

	customer, err := svc.Signup(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, customer.LastName)
}

func TestSignup_AlreadyRegistered(t *testing.T) {
	existing := &models.Customer{ID: 1, UUID: uuid.NewString()}

	t.Run("contact number", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		svc, _ := newTestService(customers, new(MockSessionRepository))
		customers.On("GetByContactNumber", mock.Anything, "9999999999").Return(existing, nil)

		_, err := svc.Signup(context.Background(), validSignup())
		assert.ErrorIs(t, err, ErrContactNumberTaken)
		customers.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("email", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		svc, _ := newTestService(customers, new(MockSessionRepository))
		customers.On("GetByContactNumber", mock.Anything, "9999999999").Return(nil, store.ErrNotFound)
		customers.On("GetByEmail", mock.Anything, "jane@x.com").Return(existing, nil)

		_, err := svc.Signup(context.Background(), validSignup())
		assert.ErrorIs(t, err, ErrEmailTaken)
		customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSignup_UniqueViolationOnInsert(t *testing.T) {
	tests := []struct {
		column string
		want   *Error
	}{
		{"email", ErrEmailTaken},
		{"contact_number", ErrContactNumberTaken},
		{"", ErrContactNumberTaken},
	}

	for _, tt := range tests {
		t.Run("column "+tt.column, func(t *testing.T) {
			customers := new(MockCustomerRepository)
			svc, _ := newTestService(customers, new(MockSessionRepository))
			customers.On("GetByContactNumber", mock.Anything, mock.Anything).Return(nil, store.ErrNotFound)
			customers.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, store.ErrNotFound)
			customers.On("Create", mock.Anything, mock.Anything).Return(&store.DuplicateError{Column: tt.column})

			_, err := svc.Signup(context.Background(), validSignup())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignup_StoreFailure(t *testing.T) {
	customers := new(MockCustomerRepository)
	svc, _ := newTestService(customers, new(MockSessionRepository))
	customers.On("GetByContactNumber", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := svc.Signup(context.Background(), validSignup())
	assert.ErrorIs(t, err, assert.AnError)
	_, isBusiness := AsError(err)
	assert.False(t, isBusiness)
}

func TestAuthenticate(t *testing.T) {
	customer := &models.Customer{ID: 7, UUID: uuid.NewString(), ContactNumber: "9999999999", Password: mustHash(t, "Jane@123")}

	t.Run("success", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		sessions := new(MockSessionRepository)
		svc, tokens := newTestService(customers, sessions)
		customers.On("GetByContactNumber", mock.Anything, "9999999999").Return(customer, nil)
		sessions.On("Create", mock.Anything, mock.MatchedBy(func(a *models.CustomerAuth) bool {
			return a.CustomerID == 7 && a.LogoutAt == nil
		})).Return(nil)

		session, err := svc.Authenticate(context.Background(), "9999999999", "Jane@123")
		require.NoError(t, err)
		assert.Equal(t, fixedNow, session.LoginAt)
		assert.Equal(t, fixedNow.Add(DefaultSessionTTL), session.ExpiresAt)
		assert.Equal(t, customer.UUID, session.Customer.UUID)

		claims, err := tokens.ValidateToken(session.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, customer.UUID, claims.Subject)
		sessions.AssertExpectations(t)
	})

	t.Run("unregistered contact number", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		svc, _ := newTestService(customers, new(MockSessionRepository))
		customers.On("GetByContactNumber", mock.Anything, "1111111111").Return(nil, store.ErrNotFound)

		_, err := svc.Authenticate(context.Background(), "1111111111", "Jane@123")
		assert.ErrorIs(t, err, ErrContactNotRegistered)
	})

	t.Run("wrong password", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		sessions := new(MockSessionRepository)
		svc, _ := newTestService(customers, sessions)
		customers.On("GetByContactNumber", mock.Anything, "9999999999").Return(customer, nil)

		_, err := svc.Authenticate(context.Background(), "9999999999", "Wrong@123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthorize(t *testing.T) {
	customer := models.Customer{ID: 7, UUID: uuid.NewString()}
	loggedOutAt := fixedNow.Add(-time.Minute)

	tests := []struct {
		name    string
		session *models.CustomerAuth
		lookup  error
		want    error
	}{
		{"active", &models.CustomerAuth{Customer: customer, ExpiresAt: fixedNow.Add(time.Hour)}, nil, nil},
		{"expires exactly now", &models.CustomerAuth{Customer: customer, ExpiresAt: fixedNow}, nil, nil},
		{"unknown token", nil, store.ErrNotFound, ErrNotLoggedIn},
		{"logged out", &models.CustomerAuth{Customer: customer, ExpiresAt: fixedNow.Add(time.Hour), LogoutAt: &loggedOutAt}, nil, ErrLoggedOut},
		{"expired", &models.CustomerAuth{Customer: customer, ExpiresAt: fixedNow.Add(-time.Second)}, nil, ErrSessionExpired},
		{"logged out and expired", &models.CustomerAuth{Customer: customer, ExpiresAt: fixedNow.Add(-time.Hour), LogoutAt: &loggedOutAt}, nil, ErrLoggedOut},
		{"store failure", nil, assert.AnError, assert.AnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(MockSessionRepository)
			svc, tokens := newTestService(new(MockCustomerRepository), sessions)
			token, err := tokens.GenerateToken(customer.UUID, fixedNow, fixedNow.Add(time.Hour))
			require.NoError(t, err)
			sessions.On("GetByAccessToken", mock.Anything, token).Return(tt.session, tt.lookup)

			got, err := svc.Authorize(context.Background(), token)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, customer.UUID, got.UUID)
		})
	}
}

func TestAuthorize_MalformedToken(t *testing.T) {
	sessions := new(MockSessionRepository)
	svc, _ := newTestService(new(MockCustomerRepository), sessions)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Authorize(context.Background(), token)
		assert.ErrorIs(t, err, ErrNotLoggedIn, token)
	}

	other := NewTokenManager("other-secret")
	forged, err := other.GenerateToken(uuid.NewString(), fixedNow, fixedNow.Add(time.Hour))
	require.NoError(t, err)
	_, err = svc.Authorize(context.Background(), forged)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	sessions.AssertNotCalled(t, "GetByAccessToken", mock.Anything, mock.Anything)
}

func TestLogout(t *testing.T) {
	customer := models.Customer{ID: 7, UUID: uuid.NewString()}

	setup := func(t *testing.T) (*Service, *MockSessionRepository, string) {
		sessions := new(MockSessionRepository)
		svc, tokens := newTestService(new(MockCustomerRepository), sessions)
		token, err := tokens.GenerateToken(customer.UUID, fixedNow, fixedNow.Add(time.Hour))
		require.NoError(t, err)
		sessions.On("GetByAccessToken", mock.Anything, token).
			Return(&models.CustomerAuth{Customer: customer, AccessToken: token, ExpiresAt: fixedNow.Add(time.Hour)}, nil)
		return svc, sessions, token
	}

	t.Run("success", func(t *testing.T) {
		svc, sessions, token := setup(t)
		sessions.On("MarkLoggedOut", mock.Anything, token, fixedNow).Return(true, nil)

		session, err := svc.Logout(context.Background(), token)
		require.NoError(t, err)
		require.NotNil(t, session.LogoutAt)
		assert.Equal(t, fixedNow, *session.LogoutAt)
		assert.Equal(t, customer.UUID, session.Customer.UUID)
	})

	t.Run("concurrent logout won", func(t *testing.T) {
		svc, sessions, token := setup(t)
		sessions.On("MarkLoggedOut", mock.Anything, token, fixedNow).Return(false, nil)

		_, err := svc.Logout(context.Background(), token)
		assert.ErrorIs(t, err, ErrLoggedOut)
	})
}

func TestUpdateProfile(t *testing.T) {
	customer := &models.Customer{ID: 7, UUID: uuid.NewString(), FirstName: "Jane", LastName: "Doe"}

	t.Run("empty first name", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		svc, _ := newTestService(customers, new(MockSessionRepository))

		_, err := svc.UpdateProfile(context.Background(), customer, "", "Smith")
		assert.ErrorIs(t, err, ErrEmptyFirstName)
		customers.AssertNotCalled(t, "UpdateNames", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("both names", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		svc, _ := newTestService(customers, new(MockSessionRepository))
		customers.On("UpdateNames", mock.Anything, int64(7), "Janet", "Smith").Return(nil)

		updated, err := svc.UpdateProfile(context.Background(), customer, "Janet", "Smith")
		require.NoError(t, err)
		assert.Equal(t, "Janet", updated.FirstName)
		assert.Equal(t, "Smith", updated.LastName)
		assert.Equal(t, "Jane", customer.FirstName)
	})

	t.Run("empty last name keeps stored one", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		svc, _ := newTestService(customers, new(MockSessionRepository))
		customers.On("UpdateNames", mock.Anything, int64(7), "Janet", "").Return(nil)

		updated, err := svc.UpdateProfile(context.Background(), customer, "Janet", "")
		require.NoError(t, err)
		assert.Equal(t, "Doe", updated.LastName)
		customers.AssertExpectations(t)
	})
}

func TestUpdatePassword(t *testing.T) {
	customer := &models.Customer{ID: 7, UUID: uuid.NewString(), Password: mustHash(t, "Jane@123")}

	tests := []struct {
		name        string
		oldPassword string
		newPassword string
		want        error
	}{
		{"empty old", "", "Jane@456", ErrEmptyPasswordField},
		{"empty new", "Jane@123", "", ErrEmptyPasswordField},
		{"incorrect old", "Wrong@123", "Jane@456", ErrIncorrectOldPassword},
		{"weak new", "Jane@123", "weak", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customers := new(MockCustomerRepository)
			svc, _ := newTestService(customers, new(MockSessionRepository))

			_, err := svc.UpdatePassword(context.Background(), tt.oldPassword, tt.newPassword, customer)
			assert.ErrorIs(t, err, tt.want)
			customers.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("success", func(t *testing.T) {
		customers := new(MockCustomerRepository)
		svc, _ := newTestService(customers, new(MockSessionRepository))
		customers.On("UpdatePassword", mock.Anything, int64(7), mock.MatchedBy(func(hash string) bool {
			return checkPassword(hash, "Jane@456")
		})).Return(nil)

		updated, err := svc.UpdatePassword(context.Background(), "Jane@123", "Jane@456", customer)
		require.NoError(t, err)
		assert.True(t, checkPassword(updated.Password, "Jane@456"))
		assert.False(t, checkPassword(updated.Password, "Jane@123"))
		customers.AssertExpectations(t)
	})
}

func TestUpdatePassword_CustomPolicy(t *testing.T) {
	customers := new(MockCustomerRepository)
	svc := NewService(customers, new(MockSessionRepository), NewTokenManager("test-secret"),
		WithHashCost(bcrypt.MinCost),
		WithPasswordPolicy(func(p string) bool { return len(p) >= 3 }),
	)
	customer := &models.Customer{ID: 7, Password: mustHash(t, "Jane@123")}
	customers.On("UpdatePassword", mock.Anything, int64(7), mock.Anything).Return(nil)

	_, err := svc.UpdatePassword(context.Background(), "Jane@123", "abc", customer)
	assert.NoError(t, err)
}

func TestPurgeSessions(t *testing.T) {
	sessions := new(MockSessionRepository)
	svc, _ := newTestService(new(MockCustomerRepository), sessions)
	sessions.On("DeleteExpiredBefore", mock.Anything, fixedNow.Add(-24*time.Hour)).Return(int64(3), nil)

	n, err := svc.PurgeSessions(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	sessions.AssertExpectations(t)
}

func TestError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrLoggedOut)
	e, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "ATHR-002", e.Code)
	assert.Equal(t, KindAuthorizationFailed, e.Kind)
	assert.Equal(t, "AuthorizationFailed ATHR-002: Customer is logged out. Log in again to access this endpoint.", e.Error())

	assert.ErrorIs(t, &Error{Code: "ATHR-002"}, ErrLoggedOut)
	assert.NotErrorIs(t, ErrLoggedOut, ErrSessionExpired)
}
