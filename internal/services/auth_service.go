package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shubham23mamgain/bringit/domain"
)

// dummyPassword is hashed once so unknown emails still cost a bcrypt compare
const dummyPassword = "bringit-dummy-password"

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	clock       domain.Clock
	dummyHash   string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	clock domain.Clock,
) domain.AuthService {
	if clock == nil {
		clock = time.Now
	}
	dummyHash, _ := passwordSvc.Hash(dummyPassword)
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		clock:       clock,
		dummyHash:   dummyHash,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, &domain.ValidationError{Field: "email", Reason: "is required"}
	}

	// Check if user already exists
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyPassword) || errors.Is(err, domain.ErrPasswordTooLong) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleCustomer
	}

	user := &domain.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		Mobile:       strings.TrimSpace(input.Mobile),
		PasswordHash: hashedPassword,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, user)
}

// LoginAdmin implements domain.AuthService. Credentials are verified before
// the role so a wrong password never reveals whether the account is an admin.
func (s *AuthServiceImpl) LoginAdmin(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	return s.startSession(ctx, user)
}

// Refresh implements domain.AuthService. The stored token, not the
// signature alone, decides whether the session is active.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrMissingToken
	}

	user, err := s.userRepo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrTokenNotRecognized
		}
		return "", err
	}

	claims, err := s.tokenSvc.VerifyRefresh(refreshToken)
	if err != nil || claims.UserID != user.ID {
		return "", domain.ErrTokenInvalid
	}

	accessToken, err := s.tokenSvc.IssueAccess(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout implements domain.AuthService; it never fails for an absent or
// unknown token
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	_, err := s.userRepo.ClearRefreshToken(ctx, refreshToken)
	return err
}

// ChangePassword implements domain.AuthService
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID, password string) (*domain.User, error) {
	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyPassword) || errors.Is(err, domain.ErrPasswordTooLong) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.SetPassword(ctx, userID, hashedPassword, s.now()); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, userID)
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// authenticate runs exactly one bcrypt comparison whether or not the email
// exists, then rejects blocked accounts
func (s *AuthServiceImpl) authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if user == nil {
		s.passwordSvc.Verify(s.dummyHash, password)
		return nil, domain.ErrInvalidCredentials
	}
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, domain.ErrUserBlocked
	}
	return user, nil
}

// startSession issues both tokens and persists the refresh token,
// replacing any earlier session
func (s *AuthServiceImpl) startSession(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	refreshToken, err := s.tokenSvc.IssueRefresh(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshToken = refreshToken

	accessToken, err := s.tokenSvc.IssueAccess(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthServiceImpl) now() time.Time {
	return s.clock().UTC().Truncate(time.Second)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
