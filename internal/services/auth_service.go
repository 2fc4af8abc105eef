package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/gingerhq/ginger-backend/internal/config"
	"github.com/gingerhq/ginger-backend/internal/dto"
	"github.com/gingerhq/ginger-backend/internal/models"
	"github.com/gingerhq/ginger-backend/internal/notify"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOtp         = errors.New("invalid or expired code")
	ErrSignupExpired      = errors.New("signup session expired, please sign up again")
)

const (
	otpTTL           = 10 * time.Minute
	pendingSignupTTL = 30 * time.Minute
)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	notifier notify.Notifier
	now      func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config, notifier notify.Notifier) *AuthService {
	return &AuthService{db: db, cfg: cfg, notifier: notifier, now: time.Now}
}

// IssueOtp starts a signup: it persists a single-use code and a pending
// signup record holding the pre-hashed credential, then hands the code to
// the notifier. Earlier unconsumed codes for the same email stay valid until
// they expire or one of them is consumed.
func (s *AuthService) IssueOtp(req *dto.SignupRequest) (*dto.SignupResponse, error) {
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ? AND verified = ?", email, true).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	code, err := generateOtpCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	issuedAt := s.now()
	token := models.OtpToken{
		ID:        uuid.New(),
		Email:     email,
		Code:      code,
		ExpiresAt: issuedAt.Add(otpTTL),
	}
	if err := s.db.Create(&token).Error; err != nil {
		return nil, fmt.Errorf("failed to store otp: %w", err)
	}

	pending := models.PendingSignup{
		Token:        uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		ExpiresAt:    issuedAt.Add(pendingSignupTTL),
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "password_hash", "expires_at"}),
	}).Create(&pending).Error; err != nil {
		return nil, fmt.Errorf("failed to store pending signup: %w", err)
	}

	// Best-effort delivery: a failed send never invalidates the token.
	if err := s.notifier.SendOtp(email, code); err != nil {
		slog.Error("otp delivery failed", "error", err)
	}

	resp := &dto.SignupResponse{
		Message:           "OTP sent to email",
		VerificationToken: pending.Token,
	}
	if s.cfg.OTPDebug {
		resp.OtpDebug = code
		resp.DemoMode = true
	}
	return resp, nil
}

// VerifyOtp consumes a code and creates the verified account. The used-flag
// flip and the identity insert share one transaction, so two concurrent
// submissions of the same code cannot both create an account and a crash in
// between leaves no consumed token without an account.
func (s *AuthService) VerifyOtp(req *dto.VerifyOtpRequest) (*dto.VerifyOtpResponse, error) {
	code := strings.TrimSpace(req.Otp)
	now := s.now()

	var pending models.PendingSignup
	if err := s.db.Where("token = ? AND expires_at > ?", req.VerificationToken, now).First(&pending).Error; err != nil {
		return nil, ErrSignupExpired
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var otp models.OtpToken
		if err := tx.Where("email = ? AND code = ? AND used = ? AND expires_at > ?",
			pending.Email, code, false, now).First(&otp).Error; err != nil {
			// Wrong, expired and already-used codes are deliberately
			// indistinguishable to the caller.
			return ErrInvalidOtp
		}

		res := tx.Model(&models.OtpToken{}).
			Where("id = ? AND used = ?", otp.ID, false).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidOtp
		}

		user = models.User{
			ID:           uuid.New(),
			Email:        pending.Email,
			PasswordHash: pending.PasswordHash,
			Username:     usernameFromEmail(pending.Email),
			Interests:    datatypes.JSON([]byte("[]")),
			Verified:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			if isRetryableTxError(err) {
				// Email or derived username collided with an existing row.
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		return tx.Where("token = ?", pending.Token).Delete(&models.PendingSignup{}).Error
	})
	if err != nil {
		return nil, err
	}

	access, refresh, err := s.generateTokenPair(&user)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyOtpResponse{
		Message:      "Account created successfully",
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := s.generateTokenPair(&user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message:      "Logged in successfully",
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (s *AuthService) generateTokenPair(user *models.User) (string, string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   s.now().Unix(),
		"exp":   s.now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", err
	}

	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: s.now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return access, rawToken, nil
}

// generateOtpCode draws from the full [0, 999999] range and zero-pads, so
// leading-zero codes are as likely as any other.
func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func usernameFromEmail(email string) string {
	return strings.Split(email, "@")[0]
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
