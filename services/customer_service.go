package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking-api/auth"
	"hotel-booking-api/models"

	"gorm.io/gorm"
)

const minPasswordLength = 8

// CustomerService manages customer accounts and local password login.
type CustomerService struct {
	DB         *gorm.DB
	Issuer     *auth.Issuer
	BcryptCost int
}

func NewCustomerService(db *gorm.DB, issuer *auth.Issuer, bcryptCost int) *CustomerService {
	return &CustomerService{DB: db, Issuer: issuer, BcryptCost: bcryptCost}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginResult struct {
	auth.IssuedToken
	Customer models.Customer `json:"customer"`
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return email, nil
}

// Register creates the user with a salted password hash and its customer
// record in one transaction.
func (s *CustomerService) Register(ctx context.Context, in RegisterInput) (*models.Customer, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	hash, err := auth.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var customer models.Customer
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return fmt.Errorf("db error checking email: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("email %s is already registered: %w", email, ErrDuplicate)
		}

		user := models.User{
			Email:        email,
			PasswordHash: hash,
			RegisteredAt: time.Now().UTC(),
		}
		if err := tx.Create(&user).Error; err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("email %s is already registered: %w", email, ErrDuplicate)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		customer = models.Customer{UserID: user.ID, Name: strings.TrimSpace(in.Name)}
		if err := tx.Omit("User").Create(&customer).Error; err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		customer.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Login verifies the password and issues a signed token. Unknown emails and
// wrong passwords both yield ErrUnauthorized.
func (s *CustomerService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.Issuer == nil {
		return nil, fmt.Errorf("local login is disabled: %w", ErrUnauthorized)
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	db := s.DB.WithContext(ctx)
	var user models.User
	if err := db.Where("email = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no account for %s: %w", normalized, ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	var customer models.Customer
	if err := db.Where("user_id = ?", user.ID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no customer for %s: %w", normalized, ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	customer.User = user

	if customer.User.PasswordHash == "" {
		return nil, fmt.Errorf("account %s has no local password: %w", normalized, ErrUnauthorized)
	}

	ok, err := auth.CheckPassword(customer.User.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("wrong password for %s: %w", normalized, ErrUnauthorized)
	}

	token, err := s.Issuer.Issue(customer.UserID, customer.ID, customer.User.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &LoginResult{IssuedToken: token, Customer: customer}, nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.DB.WithContext(ctx).Preload("User").First(&customer, id).Error; err != nil {
		return nil, fmt.Errorf("customer %d: %w", id, notFoundOr(err))
	}
	return &customer, nil
}
