package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/furnico/internal/events"
	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/internal/repo"
	"github.com/Skotchmaster/furnico/internal/transport"
	pkg_hash "github.com/Skotchmaster/furnico/pkg/hash"
	jwthelp "github.com/Skotchmaster/furnico/pkg/jwt"
	"github.com/Skotchmaster/furnico/pkg/logging"
	"github.com/Skotchmaster/furnico/pkg/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	Events        events.Publisher
	JWTSecret     []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	OTPTTL        time.Duration
}

func (s *AuthService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return 15 * time.Minute
}

func (s *AuthService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return 7 * 24 * time.Hour
}

func (s *AuthService) otpTTL() time.Duration {
	if s.OTPTTL > 0 {
		return s.OTPTTL
	}
	return 10 * time.Minute
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}

	publish(ctx, s.Events, events.TopicUsers, user.ID.String(), "user.registered", map[string]any{
		"user_id": user.ID, "email": user.Email,
	})
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*tokens.Pair, error) {
	user, err := s.Repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	pair, rt, err := s.issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddRefreshToken(ctx, rt); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("login_success", "user_id", user.ID)
	return pair, nil
}

// Refresh rotates the refresh token. The role is re-read so demotions apply
// on the next rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*tokens.Pair, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
		}
		return nil, err
	}

	pair, next, err := s.issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if _, err := s.Repo.RotateRefreshToken(ctx, claims.ID, jwthelp.Sha256Hex(refreshToken), next); err != nil {
		if errors.Is(err, repo.ErrTokenInvalid) {
			return nil, fmt.Errorf("%w: refresh token expired or revoked", ErrUnauthorized)
		}
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeRefreshByHash(ctx, jwthelp.Sha256Hex(refreshToken))
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	u, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	return u, nil
}

func (s *AuthService) issue(userID uuid.UUID, role models.Role) (*tokens.Pair, *models.RefreshToken, error) {
	now := time.Now()
	accessExp := now.Add(s.accessTTL())
	refreshExp := now.Add(s.refreshTTL())

	access, err := tokens.SignAccess(s.JWTSecret, userID.String(), string(role), accessExp)
	if err != nil {
		return nil, nil, err
	}
	jti := jwthelp.NewJTI()
	refresh, err := tokens.SignRefresh(s.RefreshSecret, userID.String(), jti, refreshExp)
	if err != nil {
		return nil, nil, err
	}

	return &tokens.Pair{
			AccessToken:  access,
			RefreshToken: refresh,
			AccessExp:    accessExp,
			RefreshExp:   refreshExp,
			Role:         string(role),
			UserID:       userID.String(),
		}, &models.RefreshToken{
			UserID:    userID,
			TokenHash: jwthelp.Sha256Hex(refresh),
			JTI:       jti,
			ExpiresAt: refreshExp,
		}, nil
}

// SendOTP stores a hashed one-time code and hands the plain code to the
// notifier via the users topic. Unknown emails are silently ignored.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	user, err := s.Repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logging.FromContext(ctx).Info("otp_unknown_email")
			return nil
		}
		return err
	}

	code, err := newOTP()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.otpTTL()).UTC()
	if err := s.Repo.SetOTP(ctx, user.ID, jwthelp.Sha256Hex(code), expiry); err != nil {
		return err
	}

	publish(ctx, s.Events, events.TopicUsers, user.ID.String(), "user.otp_requested", map[string]any{
		"user_id": user.ID, "email": user.Email, "name": user.Name, "otp": code, "expires_at": expiry,
	})
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, req transport.ResetPasswordRequest) error {
	invalid := fmt.Errorf("%w: invalid or expired code", ErrValidation)

	user, err := s.Repo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid
		}
		return err
	}
	if user.OTPHash == "" || user.OTPExpiry == nil || time.Now().After(*user.OTPExpiry) {
		return invalid
	}
	if user.OTPHash != jwthelp.Sha256Hex(req.OTP) {
		return invalid
	}

	pwHash, err := pkg_hash.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.ResetPassword(ctx, user.ID, pwHash); err != nil {
			return err
		}
		return tx.RevokeAllForUser(ctx, user.ID)
	})
}

func (s *AuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, req transport.UpdatePasswordRequest) error {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return notFoundOr(err, "user")
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, req.OldPassword) {
		return fmt.Errorf("%w: current password is incorrect", ErrValidation)
	}
	if req.OldPassword == req.NewPassword {
		return fmt.Errorf("%w: new password must differ from the current one", ErrValidation)
	}
	pwHash, err := pkg_hash.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.Repo.ResetPassword(ctx, user.ID, pwHash); err != nil {
		return err
	}
	publish(ctx, s.Events, events.TopicUsers, user.ID.String(), "user.password_changed", map[string]any{"user_id": user.ID})
	return nil
}

// SeedUser creates or resets an account with a fixed role. Used for demo accounts.
func (s *AuthService) SeedUser(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Name: name, Email: normalizeEmail(email), PasswordHash: pwHash, Role: role}
	if err := s.Repo.UpsertUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
