package services

import (
	"context"
	"regexp"

	"GameMarketAPI/internal/apperr"
	"GameMarketAPI/internal/model"
	"GameMarketAPI/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLen = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	Users *repository.UserRepository
}

func NewAuthService(u *repository.UserRepository) *AuthService {
	return &AuthService{Users: u}
}

func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return apperr.New(apperr.InvalidData, "Email is required.")
	}
	if !emailRegex.MatchString(email) {
		return apperr.New(apperr.InvalidData, "Invalid email format.")
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return apperr.Newf(apperr.InvalidData, "Password must be at least %d characters.", MinPasswordLen)
	}
	return nil
}

// Register creates a user with role "user".
func (s *AuthService) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	if err := s.validateEmail(email); err != nil {
		return uuid.Nil, err
	}
	if err := s.validatePassword(password); err != nil {
		return uuid.Nil, err
	}
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return uuid.Nil, err
	}
	if exists {
		return uuid.Nil, apperr.New(apperr.InvalidOperation, "Email already registered.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}
	return s.Users.CreateUser(ctx, email, string(hash), "user")
}

// Login authenticates with email + password and returns the user without
// the password hash. Failures never reveal whether the email exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.New(apperr.InvalidData, "Invalid credentials.")
	}
	if u.DeletedAt != nil {
		return nil, apperr.New(apperr.InvalidData, "Invalid credentials.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.InvalidData, "Invalid credentials.")
	}
	u.PasswordHash = ""
	return u, nil
}
