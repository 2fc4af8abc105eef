package dto

import "github.com/google/uuid"

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResponse carries the pending-signup token the client must present
// alongside the OTP. The code itself is only echoed in demo mode.
type SignupResponse struct {
	Message           string    `json:"message"`
	VerificationToken uuid.UUID `json:"verification_token"`
	OtpDebug          string    `json:"otp_debug,omitempty"`
	DemoMode          bool      `json:"demo_mode,omitempty"`
}

type VerifyOtpRequest struct {
	VerificationToken uuid.UUID `json:"verification_token"`
	Otp               string    `json:"otp"`
}

type VerifyOtpResponse struct {
	Message      string    `json:"message"`
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message      string    `json:"message"`
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
