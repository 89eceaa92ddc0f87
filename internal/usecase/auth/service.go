package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"skillboard/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email      string
	Password   string
	EmployeeID *uuid.UUID
}

type LoginInput struct {
	Email    string
	Password string
}

// Service owns credential handling: registration, password verification.
// Token issuance lives in the outer auth usecase.
type Service struct {
	users     repository.UserRepository
	employees repository.EmployeeRepository
}

func NewService(users repository.UserRepository, employees repository.EmployeeRepository) *Service {
	return &Service{users: users, employees: employees}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (repository.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return repository.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return repository.User{}, ErrInvalidInput
	}

	if in.EmployeeID != nil && *in.EmployeeID != uuid.Nil {
		exists, err := s.employees.ExistsByID(ctx, *in.EmployeeID)
		if err != nil {
			return repository.User{}, ErrInternal
		}
		if !exists {
			return repository.User{}, ErrEmployeeNotFound
		}
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return repository.User{}, ErrInternal
	}
	if exists {
		return repository.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return repository.User{}, ErrInternal
	}

	u := repository.User{
		ID:           uuid.New(),
		EmployeeID:   in.EmployeeID,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := s.users.Create(ctx, u); err != nil {
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return repository.User{}, ErrEmailAlreadyRegistered
		}
		return repository.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return repository.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (repository.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return repository.User{}, ErrInvalidCredentials
	}
	if in.Password == "" {
		return repository.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.User{}, ErrInvalidCredentials
		}
		return repository.User{}, ErrInternal
	}
	if !u.IsActive {
		return repository.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return repository.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u repository.User) repository.User {
	u.PasswordHash = ""
	return u
}
