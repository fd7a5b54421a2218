package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Tazdar-Rahim/artmuse-server/internal/auth"
	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/internal/event"
	"github.com/Tazdar-Rahim/artmuse-server/internal/repository"
	apperrors "github.com/Tazdar-Rahim/artmuse-server/pkg/errors"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/validator"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// Single-use token lifetimes.
const (
	passwordResetTTL = time.Hour
	emailVerifyTTL   = 24 * time.Hour
)

// UserService implements registration, login, token refresh, and the
// password reset and email verification flows.
type UserService struct {
	users         repository.UserRepository
	refreshTokens repository.RefreshTokenRepository
	userTokens    repository.UserTokenRepository
	jwt           *auth.JWTManager
	refreshExpiry time.Duration
	producer      *event.Producer
	emails        event.EmailDispatcher
	logger        *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	users repository.UserRepository,
	refreshTokens repository.RefreshTokenRepository,
	userTokens repository.UserTokenRepository,
	jwt *auth.JWTManager,
	refreshExpiry time.Duration,
	producer *event.Producer,
	emails event.EmailDispatcher,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:         users,
		refreshTokens: refreshTokens,
		userTokens:    userTokens,
		jwt:           jwt,
		refreshExpiry: refreshExpiry,
		producer:      producer,
		emails:        emails,
		logger:        logger,
	}
}

// RegisterInput is the input for creating an account.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Phone     string `json:"phone" validate:"max=50"`
}

// LoginInput is the input for password login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ResetPasswordInput is the input for completing a password reset.
type ResetPasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// Register creates a new customer account, signs the user in, and kicks off
// the verification email.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.TokenPair, error) {
	if err := validator.Validate(input); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:            uuid.NewString(),
		Email:         input.Email,
		PasswordHash:  string(hash),
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Phone:         input.Phone,
		Role:          domain.RoleCustomer,
		IsActive:      true,
		EmailVerified: false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, nil, apperrors.AlreadyExists("user", "email", input.Email)
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.sendVerificationEmail(ctx, user)

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))

	return user, tokens, nil
}

// Login authenticates a user by email and password. Unknown emails and
// wrong passwords produce the same error.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*domain.User, *domain.TokenPair, error) {
	if err := validator.Validate(input); err != nil {
		return nil, nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, nil, fmt.Errorf("get user for login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, apperrors.Unauthorized("invalid email or password")
	}

	if !user.IsActive {
		return nil, nil, apperrors.Forbidden("account is disabled")
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The old
// refresh token is revoked so each one can be used once.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperrors.Unauthorized("refresh token is required")
	}

	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	stored, err := s.refreshTokens.GetByHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("refresh token is revoked or unknown")
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	if time.Now().UTC().After(stored.ExpiresAt) {
		return nil, apperrors.Unauthorized("refresh token is expired")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user for refresh: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.Forbidden("account is disabled")
	}

	if err := s.refreshTokens.Revoke(ctx, stored.ID); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes a refresh token. An already-revoked or unknown token is
// not an error.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	stored, err := s.refreshTokens.GetByHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get refresh token for logout: %w", err)
	}

	if err := s.refreshTokens.Revoke(ctx, stored.ID); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ForgotPassword starts the reset flow. Whether or not the email belongs to
// an account, the caller gets the same answer.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.InvalidInput("email is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.InfoContext(ctx, "password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("get user for password reset: %w", err)
	}

	token, err := s.createUserToken(ctx, user.ID, domain.TokenPurposePasswordReset, passwordResetTTL)
	if err != nil {
		return err
	}

	if err := s.emails.Dispatch(ctx, domain.EmailTypePasswordReset, user.Email, map[string]any{
		"Name":  user.FirstName,
		"Token": token,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to dispatch password reset email",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "password reset requested", slog.String("user_id", user.ID))

	return nil
}

// ResetPassword completes the reset flow. The token is consumed and every
// active session is revoked.
func (s *UserService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if err := validator.Validate(input); err != nil {
		return err
	}

	stored, err := s.userTokens.GetByHash(ctx, hashToken(input.Token), domain.TokenPurposePasswordReset)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.InvalidInput("invalid or expired reset token")
		}
		return fmt.Errorf("get reset token: %w", err)
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return fmt.Errorf("get user for password reset: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if err := s.userTokens.Consume(ctx, stored.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	if err := s.refreshTokens.RevokeByUserID(ctx, user.ID); err != nil {
		return fmt.Errorf("revoke sessions after password reset: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset completed", slog.String("user_id", user.ID))

	return nil
}

// ResendVerification sends a fresh verification email to an unverified user.
func (s *UserService) ResendVerification(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user for verification: %w", err)
	}
	if user.EmailVerified {
		return apperrors.Conflict("email is already verified")
	}

	s.sendVerificationEmail(ctx, user)
	return nil
}

// VerifyEmail marks the account verified and consumes the token.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.InvalidInput("verification token is required")
	}

	stored, err := s.userTokens.GetByHash(ctx, hashToken(token), domain.TokenPurposeEmailVerify)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.InvalidInput("invalid or expired verification token")
		}
		return fmt.Errorf("get verification token: %w", err)
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return fmt.Errorf("get user for verification: %w", err)
	}

	if !user.EmailVerified {
		user.EmailVerified = true
		user.UpdatedAt = time.Now().UTC()
		if err := s.users.Update(ctx, user); err != nil {
			return fmt.Errorf("mark email verified: %w", err)
		}
	}

	if err := s.userTokens.Consume(ctx, stored.ID, time.Now().UTC()); err != nil {
		return fmt.Errorf("consume verification token: %w", err)
	}

	s.logger.InfoContext(ctx, "email verified", slog.String("user_id", user.ID))

	return nil
}

// issueTokens creates an access and refresh token pair and stores the
// refresh token hash.
func (s *UserService) issueTokens(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	access, err := s.jwt.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refresh, err := s.jwt.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.refreshTokens.Create(ctx, &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: now.Add(s.refreshExpiry),
		CreatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// createUserToken mints a random single-use token, stores its hash, and
// returns the plaintext for delivery by email.
func (s *UserService) createUserToken(ctx context.Context, userID, purpose string, ttl time.Duration) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	token := hex.EncodeToString(raw)

	now := time.Now().UTC()
	if err := s.userTokens.Create(ctx, &domain.UserToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Purpose:   purpose,
		TokenHash: hashToken(token),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}); err != nil {
		return "", fmt.Errorf("store %s token: %w", purpose, err)
	}

	return token, nil
}

func (s *UserService) sendVerificationEmail(ctx context.Context, user *domain.User) {
	token, err := s.createUserToken(ctx, user.ID, domain.TokenPurposeEmailVerify, emailVerifyTTL)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create verification token",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.emails.Dispatch(ctx, domain.EmailTypeEmailVerify, user.Email, map[string]any{
		"Name":  user.FirstName,
		"Token": token,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to dispatch verification email",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}
}

// hashToken returns the hex SHA-256 of a token for at-rest storage.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
