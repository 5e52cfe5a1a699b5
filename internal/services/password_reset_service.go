package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/infrastructure/auth"
	"github.com/shubham23mamgain/bringit/internal/logging"
)

// DefaultResetTTL is how long a reset link stays valid
const DefaultResetTTL = 10 * time.Minute

// ResetConfig configures the password reset flow
type ResetConfig struct {
	TTL       time.Duration
	PublicURL string // base URL the reset link is built on
}

// PasswordResetServiceImpl implements domain.PasswordResetService
type PasswordResetServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	notifier    domain.NotificationService
	cfg         ResetConfig
	clock       domain.Clock
	newToken    func() (token, hash string, err error)
	logger      log.Logger
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	notifier domain.NotificationService,
	cfg ResetConfig,
	clock domain.Clock,
	logger log.Logger,
) domain.PasswordResetService {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultResetTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &PasswordResetServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		notifier:    notifier,
		cfg:         cfg,
		clock:       clock,
		newToken:    auth.GenerateResetToken,
		logger:      logging.Component(logger, "password_reset"),
	}
}

// RequestReset implements domain.PasswordResetService. Only the token hash
// is stored; the plaintext leaves the process in the email.
func (s *PasswordResetServiceImpl) RequestReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NewNotFound("User")
		}
		return err
	}

	token, hash, err := s.newToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiresAt := s.now().Add(s.cfg.TTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, hash, expiresAt); err != nil {
		return err
	}

	link := s.resetLink(token)
	body := fmt.Sprintf(
		"Hi %s,\n\nPlease follow this link to reset your password. This link is valid for %d minutes from now.\n\n%s\n",
		user.FirstName, int(s.cfg.TTL.Minutes()), link,
	)
	if err := s.notifier.SendEmail(user.Email, "Forgot Password Link", body); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	if user.Mobile != "" {
		if err := s.notifier.SendSMS(user.Mobile, "A password reset was requested for your account. Check your email for the link."); err != nil {
			_ = level.Warn(s.logger).Log("msg", "reset sms failed", "user_id", user.ID, "err", err)
		}
	}
	return nil
}

// CompleteReset implements domain.PasswordResetService. Unknown and expired
// tokens fail identically.
func (s *PasswordResetServiceImpl) CompleteReset(ctx context.Context, token, password string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrResetTokenInvalid
	}
	hash := auth.HashResetToken(token)
	now := s.now()

	user, err := s.userRepo.FindByResetToken(ctx, hash, now)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyPassword) || errors.Is(err, domain.ErrPasswordTooLong) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	consumed, err := s.userRepo.ConsumeResetToken(ctx, user.ID, hash, hashedPassword, now)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, domain.ErrResetTokenInvalid
	}
	return s.userRepo.FindByID(ctx, user.ID)
}

func (s *PasswordResetServiceImpl) resetLink(token string) string {
	return strings.TrimRight(s.cfg.PublicURL, "/") + "/api/user/reset-password/" + token
}

func (s *PasswordResetServiceImpl) now() time.Time {
	return s.clock().UTC().Truncate(time.Second)
}
