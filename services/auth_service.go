package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mealpress/mealpress/models"
	"github.com/mealpress/mealpress/utils"
)

// AdminUserID is the fixed admin identity: the first account ever
// registered. Post management is restricted to this user only.
const AdminUserID uint = 1

// AuthService implements registration, login, and the admin policy.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates an AuthService bound to the given store handle.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register hashes the password and persists a new user. Email uniqueness
// is enforced by the store's unique index; a violation surfaces here as
// ErrDuplicateEmail, so concurrent registrations with the same email
// yield exactly one success.
func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials. Email lookup is an exact string match.
// The two failure modes stay distinct on purpose; see DESIGN.md.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrBadPassword
	}
	return &user, nil
}

// UserByID resolves a session's user id back to an account.
func (s *AuthService) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IsAdmin reports whether the given user id holds the admin role.
func (s *AuthService) IsAdmin(userID uint) bool {
	return userID == AdminUserID
}
