package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
	"github.com/AbhishekPandey12/foodorderingapp/internal/store"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultSessionTTL     = 8 * time.Hour
	DefaultMinPasswordLen = 8
)

// SignupInput carries the fields a new customer submits
type SignupInput struct {
	FirstName     string
	LastName      string
	Email         string
	ContactNumber string
	Password      string
}

// Service implements customer signup, login, logout and profile changes
type Service struct {
	customers store.CustomerRepository
	sessions  store.SessionRepository
	tokens    *TokenManager

	now        func() time.Time
	policy     PasswordPolicy
	sessionTTL time.Duration
	hashCost   int
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithPasswordPolicy(policy PasswordPolicy) Option {
	return func(s *Service) { s.policy = policy }
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithHashCost sets the bcrypt cost. Values outside bcrypt's range fall back
// to the default.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.hashCost = cost
		}
	}
}

func NewService(customers store.CustomerRepository, sessions store.SessionRepository, tokens *TokenManager, opts ...Option) *Service {
	s := &Service{
		customers:  customers,
		sessions:   sessions,
		tokens:     tokens,
		now:        time.Now,
		policy:     DefaultPasswordPolicy(DefaultMinPasswordLen),
		sessionTTL: DefaultSessionTTL,
		hashCost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup registers a new customer. Field checks run before the store is
// touched, so a rejected signup never leaves a record behind.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*models.Customer, error) {
	if isBlank(in.FirstName) || isBlank(in.Email) || isBlank(in.ContactNumber) || in.Password == "" {
		return nil, ErrMissingSignupField
	}
	if !ValidateEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if !ValidateContactNumber(in.ContactNumber) {
		return nil, ErrInvalidContactNumber
	}
	if !s.policy(in.Password) {
		return nil, ErrWeakSignupPassword
	}

	if _, err := s.customers.GetByContactNumber(ctx, in.ContactNumber); err == nil {
		return nil, ErrContactNumberTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if _, err := s.customers.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hashed, err := hashPassword(in.Password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	customer := &models.Customer{
		UUID:          uuid.NewString(),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
		Password:      hashed,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		// A concurrent signup can win the race between the lookup and the insert.
		var dup *store.DuplicateError
		if errors.As(err, &dup) {
			if dup.Column == "email" {
				return nil, ErrEmailTaken
			}
			return nil, ErrContactNumberTaken
		}
		return nil, err
	}

	log.Printf("[AUTH] Customer %s signed up", customer.UUID)
	return customer, nil
}

// Authenticate checks the credentials and opens a new session
func (s *Service) Authenticate(ctx context.Context, contactNumber, password string) (*models.CustomerAuth, error) {
	customer, err := s.customers.GetByContactNumber(ctx, contactNumber)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrContactNotRegistered
	}
	if err != nil {
		return nil, err
	}

	if !checkPassword(customer.Password, password) {
		log.Printf("[AUTH] Failed login for customer %s", customer.UUID)
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.sessionTTL)
	token, err := s.tokens.GenerateToken(customer.UUID, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	session := &models.CustomerAuth{
		UUID:        uuid.NewString(),
		CustomerID:  customer.ID,
		Customer:    *customer,
		AccessToken: token,
		LoginAt:     now,
		ExpiresAt:   expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	log.Printf("[AUTH] Customer %s logged in", customer.UUID)
	return session, nil
}

// Authorize resolves an access token to the customer it was issued to
func (s *Service) Authorize(ctx context.Context, accessToken string) (*models.Customer, error) {
	session, err := s.activeSession(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return &session.Customer, nil
}

// activeSession checks, in order, that the session exists, is not logged out
// and has not expired.
func (s *Service) activeSession(ctx context.Context, accessToken string) (*models.CustomerAuth, error) {
	if accessToken == "" {
		return nil, ErrNotLoggedIn
	}
	// Tokens we did not sign cannot match a stored session.
	if _, err := s.tokens.ValidateToken(accessToken); err != nil {
		return nil, ErrNotLoggedIn
	}

	session, err := s.sessions.GetByAccessToken(ctx, accessToken)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}

	switch session.State(s.now()) {
	case models.SessionStateLoggedOut:
		return nil, ErrLoggedOut
	case models.SessionStateExpired:
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Logout ends the session behind the token. Only one of several concurrent
// logouts for the same token succeeds.
func (s *Service) Logout(ctx context.Context, accessToken string) (*models.CustomerAuth, error) {
	session, err := s.activeSession(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ok, err := s.sessions.MarkLoggedOut(ctx, accessToken, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLoggedOut
	}

	session.LogoutAt = &now
	log.Printf("[AUTH] Customer %s logged out", session.Customer.UUID)
	return session, nil
}

// UpdateProfile changes the customer's names. An empty last name leaves the
// stored one alone.
func (s *Service) UpdateProfile(ctx context.Context, customer *models.Customer, firstName, lastName string) (*models.Customer, error) {
	if isBlank(firstName) {
		return nil, ErrEmptyFirstName
	}

	updated := *customer
	updated.FirstName = firstName
	if lastName != "" {
		updated.LastName = lastName
	}
	if err := s.customers.UpdateNames(ctx, customer.ID, firstName, lastName); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdatePassword replaces the password after checking the current one.
// Existing sessions stay valid.
func (s *Service) UpdatePassword(ctx context.Context, oldPassword, newPassword string, customer *models.Customer) (*models.Customer, error) {
	if oldPassword == "" || newPassword == "" {
		return nil, ErrEmptyPasswordField
	}
	if !checkPassword(customer.Password, oldPassword) {
		return nil, ErrIncorrectOldPassword
	}
	if !s.policy(newPassword) {
		return nil, ErrWeakPassword
	}

	hashed, err := hashPassword(newPassword, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	updated := *customer
	updated.Password = hashed
	if err := s.customers.UpdatePassword(ctx, customer.ID, hashed); err != nil {
		return nil, err
	}

	log.Printf("[AUTH] Customer %s changed password", customer.UUID)
	return &updated, nil
}

// PurgeSessions deletes sessions that expired more than retention ago
func (s *Service) PurgeSessions(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-retention)
	n, err := s.sessions.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("[AUTH] Purged %d expired sessions", n)
	}
	return n, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
