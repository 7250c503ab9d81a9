package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/logger"
	"shedstock-backend/internal/repository"
	"shedstock-backend/internal/security"
)

type authService struct {
	userRepo     repository.UserRepository
	tokenManager security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokenManager security.TokenManager) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}
}

func (s *authService) SignUp(ctx context.Context, name, surname, email, password string) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		if existing.Status == domain.UserStatusActive {
			return nil, fmt.Errorf("%w: email already registered", domain.ErrInvalidArgument)
		}
		return nil, fmt.Errorf("%w: account exists but is deactivated, contact an administrator", domain.ErrPermissionDenied)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:     normalizeName(name),
		Surname:  normalizeName(surname),
		Email:    email,
		Password: string(hashed),
		Role:     domain.RoleUser,
		Status:   domain.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("User registered", "user_id", user.ID, "email", email)
	return user, nil
}

func (s *authService) LogIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: invalid credentials", domain.ErrPermissionDenied)
		}
		return "", fmt.Errorf("load user: %w", err)
	}
	if user.Status != domain.UserStatusActive {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrPermissionDenied)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrPermissionDenied)
	}

	token, err := s.tokenManager.GenerateToken(user)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

func (s *authService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context, page, pageSize int32) ([]domain.User, repository.Page, error) {
	users, count, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, repository.Page{}, fmt.Errorf("list users: %w", err)
	}
	return users, NewPage(count, page, pageSize), nil
}
