package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/baharkarakas/store-ratings/internal/auth"
	"github.com/baharkarakas/store-ratings/internal/metrics"
	"github.com/baharkarakas/store-ratings/internal/models"
	repo "github.com/baharkarakas/store-ratings/internal/repository"
	"github.com/baharkarakas/store-ratings/internal/validate"
)

const (
	signupNameMin = 3
	adminNameMin  = 20
	nameMax       = 60
	addressMax    = 400
)

type AuthService struct {
	users repo.Users
	tm    *auth.TokenManager
}

func NewAuthService(users repo.Users, tm *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tm: tm}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

type LoginResult struct {
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (int64, error) {
	if err := validate.Collect(
		validate.Length("name", in.Name, signupNameMin, nameMax),
		validate.MaxLength("address", in.Address, addressMax),
		validate.Email("email", in.Email),
		validate.Password("password", in.Password),
	); err != nil {
		return 0, err
	}
	return createUser(ctx, s.users, models.User{
		Name: in.Name, Email: in.Email, Address: in.Address, Role: models.RoleUser,
	}, in.Password)
}

// Login reports ErrInvalidCredentials for both an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, storageErr("login", err)
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return LoginResult{}, ErrInvalidCredentials
	}
	tok, _, err := s.tm.Issue(u.ID, u.Role)
	if err != nil {
		return LoginResult{}, err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return LoginResult{Token: tok, Role: u.Role}, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	if err := validate.Collect(validate.Password("newPassword", newPassword)); err != nil {
		return err
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return storageErr("update password", err)
	}
	if err := auth.VerifyPassword(oldPassword, u.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return storageErr("update password", err)
	}
	slog.InfoContext(ctx, "password updated", "user_id", u.ID)
	return nil
}

func createUser(ctx context.Context, users repo.Users, u models.User, password string) (int64, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}
	u.PasswordHash = hash
	id, err := users.Create(ctx, u)
	if err != nil {
		return 0, storageErr("create user", err)
	}
	metrics.UsersCreatedTotal.WithLabelValues(string(u.Role)).Inc()
	return id, nil
}
