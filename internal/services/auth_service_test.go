package services

import (
	"testing"
	"time"

	"github.com/gingerhq/ginger-backend/internal/dto"
	"github.com/gingerhq/ginger-backend/internal/models"
	"github.com/gingerhq/ginger-backend/internal/notify"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(newTestDB(t), testConfig(), notify.LogNotifier{})
}

func TestIssueOtp_Validation(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.IssueOtp(&dto.SignupRequest{Email: "", Password: ""})
	require.Error(t, err)

	_, err = svc.IssueOtp(&dto.SignupRequest{Email: "a@x.com", Password: "short"})
	require.Error(t, err)
}

func TestIssueOtp_EmailTaken(t *testing.T) {
	svc := newAuthService(t)

	first, err := svc.IssueOtp(&dto.SignupRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	_, err = svc.VerifyOtp(&dto.VerifyOtpRequest{VerificationToken: first.VerificationToken, Otp: first.OtpDebug})
	require.NoError(t, err)

	_, err = svc.IssueOtp(&dto.SignupRequest{Email: "a@x.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupVerifyFlow(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.IssueOtp(&dto.SignupRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	require.Len(t, resp.OtpDebug, 6)
	require.NotEqual(t, uuid.Nil, resp.VerificationToken)

	// Wrong code: invalid, nothing consumed.
	wrong := "000000"
	if resp.OtpDebug == wrong {
		wrong = "000001"
	}
	_, err = svc.VerifyOtp(&dto.VerifyOtpRequest{VerificationToken: resp.VerificationToken, Otp: wrong})
	assert.ErrorIs(t, err, ErrInvalidOtp)

	// Right code: account created and logged in.
	verified, err := svc.VerifyOtp(&dto.VerifyOtpRequest{VerificationToken: resp.VerificationToken, Otp: resp.OtpDebug})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, verified.UserID)
	assert.NotEmpty(t, verified.AccessToken)
	assert.NotEmpty(t, verified.RefreshToken)

	var user models.User
	require.NoError(t, svc.db.First(&user, "id = ?", verified.UserID).Error)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "a", user.Username)
	assert.True(t, user.Verified)

	// Same code again: the pending signup is gone.
	_, err = svc.VerifyOtp(&dto.VerifyOtpRequest{VerificationToken: resp.VerificationToken, Otp: resp.OtpDebug})
	assert.ErrorIs(t, err, ErrSignupExpired)
}

func TestVerifyOtp_Expired(t *testing.T) {
	svc := newAuthService(t)

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }
	resp, err := svc.IssueOtp(&dto.SignupRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	// 11 minutes later the code is stale but the pending signup is not.
	svc.now = func() time.Time { return issuedAt.Add(11 * time.Minute) }
	_, err = svc.VerifyOtp(&dto.VerifyOtpRequest{VerificationToken: resp.VerificationToken, Otp: resp.OtpDebug})
	assert.ErrorIs(t, err, ErrInvalidOtp)

	// 31 minutes later the pending signup itself has lapsed.
	svc.now = func() time.Time { return issuedAt.Add(31 * time.Minute) }
	_, err = svc.VerifyOtp(&dto.VerifyOtpRequest{VerificationToken: resp.VerificationToken, Otp: resp.OtpDebug})
	assert.ErrorIs(t, err, ErrSignupExpired)
}

func TestVerifyOtp_UnknownToken(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.VerifyOtp(&dto.VerifyOtpRequest{VerificationToken: uuid.New(), Otp: "123456"})
	assert.ErrorIs(t, err, ErrSignupExpired)
}

func TestVerifyOtp_StaleCodeAfterConsume(t *testing.T) {
	svc := newAuthService(t)

	first, err := svc.IssueOtp(&dto.SignupRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	second, err := svc.IssueOtp(&dto.SignupRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)

	// Re-issuing does not invalidate the first code; both are outstanding.
	var outstanding int64
	require.NoError(t, svc.db.Model(&models.OtpToken{}).
		Where("email = ? AND used = ?", "a@x.com", false).Count(&outstanding).Error)
	assert.EqualValues(t, 2, outstanding)

	// Consuming the second code ends the signup.
	_, err = svc.VerifyOtp(&dto.VerifyOtpRequest{VerificationToken: second.VerificationToken, Otp: second.OtpDebug})
	require.NoError(t, err)

	// The first code can no longer be used even though it never expired.
	_, err = svc.VerifyOtp(&dto.VerifyOtpRequest{VerificationToken: first.VerificationToken, Otp: first.OtpDebug})
	assert.ErrorIs(t, err, ErrSignupExpired)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.IssueOtp(&dto.SignupRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	verified, err := svc.VerifyOtp(&dto.VerifyOtpRequest{VerificationToken: resp.VerificationToken, Otp: resp.OtpDebug})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@x.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, err := svc.Login(&dto.LoginRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, verified.UserID, logged.UserID)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.IssueOtp(&dto.SignupRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	verified, err := svc.VerifyOtp(&dto.VerifyOtpRequest{VerificationToken: resp.VerificationToken, Otp: resp.OtpDebug})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: verified.RefreshToken}))

	var token models.RefreshToken
	require.NoError(t, svc.db.First(&token, "user_id = ?", verified.UserID).Error)
	assert.True(t, token.Revoked)
}
