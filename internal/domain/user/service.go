// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for any login failure. The message stays
// identical for unknown users and wrong passwords.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service handles terminal account operations
type Service struct {
	db              *gorm.DB
	config          *config.Config
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		jwtManager:      auth.NewJWTManager(cfg),
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// LoginRequest represents login data
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest represents account creation data
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role" binding:"required"`
}

// Login authenticates an account and opens a shift token
func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	var account User
	if err := s.db.Where("username = ? AND is_active = ?", req.Username, true).First(&account).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.passwordManager.VerifyPassword(req.Password, account.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(account.ID, account.Username, string(account.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now().UTC()
	s.db.Model(&account).UpdateColumn("last_login_at", now)
	account.LastLoginAt = &now

	return &LoginResponse{
		Token: token,
		User:  account,
	}, nil
}

// CreateUser creates a cashier or admin account
func (s *Service) CreateUser(req *CreateUserRequest) (*User, error) {
	if !req.Role.Valid() {
		return nil, fmt.Errorf("invalid role '%s'", req.Role)
	}

	var existing User
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("username '%s' already exists", req.Username)
	}

	hash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &User{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return account, nil
}

// GetUser retrieves an account by ID
func (s *Service) GetUser(id uint) (*User, error) {
	var account User
	if err := s.db.Where("id = ?", id).First(&account).Error; err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return &account, nil
}

// ListUsers retrieves all accounts
func (s *Service) ListUsers() ([]User, error) {
	var accounts []User
	if err := s.db.Order("username ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	return accounts, nil
}

// DeactivateUser disables an account without deleting its sales history
func (s *Service) DeactivateUser(id uint) error {
	result := s.db.Model(&User{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}
