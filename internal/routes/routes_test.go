package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gingerhq/ginger-backend/internal/candidates"
	"github.com/gingerhq/ginger-backend/internal/config"
	"github.com/gingerhq/ginger-backend/internal/database"
	"github.com/gingerhq/ginger-backend/internal/dto"
	"github.com/gingerhq/ginger-backend/internal/handlers"
	"github.com/gingerhq/ginger-backend/internal/notify"
	"github.com/gingerhq/ginger-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ginger.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
		OTPDebug:         true,
	}

	authService := services.NewAuthService(db, cfg, notify.LogNotifier{})
	matchService := services.NewMatchService(db, candidates.NewStaticPool())
	chatService := services.NewChatService(db)
	profileService := services.NewProfileService(db)

	app := fiber.New()
	Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewMatchHandler(matchService),
		handlers.NewChatHandler(chatService),
		handlers.NewProfileHandler(profileService),
		handlers.NewHealthHandler(),
	)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// signup walks the OTP flow and returns the created account's credentials.
func signup(t *testing.T, app *fiber.App, email string) dto.VerifyOtpResponse {
	t.Helper()

	resp := do(t, app, "POST", "/api/signup", "", dto.SignupRequest{Email: email, Password: "password1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var issued dto.SignupResponse
	decode(t, resp, &issued)
	require.Len(t, issued.OtpDebug, 6)

	resp = do(t, app, "POST", "/api/verify-otp", "", dto.VerifyOtpRequest{
		VerificationToken: issued.VerificationToken,
		Otp:               issued.OtpDebug,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var verified dto.VerifyOtpResponse
	decode(t, resp, &verified)
	return verified
}

func TestSignupFlowEndpoints(t *testing.T) {
	app := newTestApp(t)

	// Missing password.
	resp := do(t, app, "POST", "/api/signup", "", dto.SignupRequest{Email: "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Happy path.
	resp = do(t, app, "POST", "/api/signup", "", dto.SignupRequest{Email: "a@x.com", Password: "password1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var issued dto.SignupResponse
	decode(t, resp, &issued)

	// Wrong code.
	wrong := "000000"
	if issued.OtpDebug == wrong {
		wrong = "000001"
	}
	resp = do(t, app, "POST", "/api/verify-otp", "", dto.VerifyOtpRequest{
		VerificationToken: issued.VerificationToken, Otp: wrong,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Right code.
	resp = do(t, app, "POST", "/api/verify-otp", "", dto.VerifyOtpRequest{
		VerificationToken: issued.VerificationToken, Otp: issued.OtpDebug,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var verified dto.VerifyOtpResponse
	decode(t, resp, &verified)
	assert.NotEmpty(t, verified.AccessToken)

	// Replaying the code fails.
	resp = do(t, app, "POST", "/api/verify-otp", "", dto.VerifyOtpRequest{
		VerificationToken: issued.VerificationToken, Otp: issued.OtpDebug,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The email is now taken.
	resp = do(t, app, "POST", "/api/signup", "", dto.SignupRequest{Email: "a@x.com", Password: "password1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp(t)
	account := signup(t, app, "a@x.com")

	resp := do(t, app, "POST", "/api/login", "", dto.LoginRequest{Email: "a@x.com", Password: "nope-wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, "POST", "/api/login", "", dto.LoginRequest{Email: "a@x.com", Password: "password1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var logged dto.LoginResponse
	decode(t, resp, &logged)
	assert.Equal(t, account.UserID, logged.UserID)
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	app := newTestApp(t)

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/user"},
		{"GET", "/api/random-match"},
		{"POST", "/api/vibe-decision"},
		{"GET", "/api/matches"},
		{"POST", "/api/send-message"},
		{"GET", "/api/profile"},
	} {
		resp := do(t, app, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}
}

func TestVibeDecisionAndMessagingFlow(t *testing.T) {
	app := newTestApp(t)
	alice := signup(t, app, "alice@x.com")
	bob := signup(t, app, "bob@x.com")

	// Bad decision literal.
	resp := do(t, app, "POST", "/api/vibe-decision", alice.AccessToken, dto.VibeDecisionRequest{
		Decision: "maybe", MatchedUserID: bob.UserID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Pass creates no match.
	resp = do(t, app, "POST", "/api/vibe-decision", alice.AccessToken, dto.VibeDecisionRequest{
		Decision: "pass", MatchedUserID: bob.UserID, CallDuration: 30,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var decision dto.VibeDecisionResponse
	decode(t, resp, &decision)
	assert.False(t, decision.Matched)

	// Match creates one.
	resp = do(t, app, "POST", "/api/vibe-decision", alice.AccessToken, dto.VibeDecisionRequest{
		Decision: "match", MatchedUserID: bob.UserID, CallDuration: 45,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &decision)
	assert.True(t, decision.Matched)

	resp = do(t, app, "GET", "/api/matches", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var matches []map[string]interface{}
	decode(t, resp, &matches)
	require.Len(t, matches, 1)
	matchID := matches[0]["id"].(string)

	// Three sends succeed with a shrinking budget, the fourth is refused.
	for _, want := range []int{2, 1, 0} {
		resp = do(t, app, "POST", "/api/send-message", alice.AccessToken, map[string]interface{}{
			"match_id": matchID, "receiver_id": bob.UserID, "content": "hey!",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var sent dto.SendMessageResponse
		decode(t, resp, &sent)
		assert.Equal(t, want, sent.MessagesLeft)
	}
	resp = do(t, app, "POST", "/api/send-message", alice.AccessToken, map[string]interface{}{
		"match_id": matchID, "receiver_id": bob.UserID, "content": "one more",
	})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	var limited struct {
		MessagesLeft int `json:"messages_left"`
	}
	decode(t, resp, &limited)
	assert.Equal(t, 0, limited.MessagesLeft)

	// Empty body is rejected before the quota is touched.
	resp = do(t, app, "POST", "/api/send-message", bob.AccessToken, map[string]interface{}{
		"match_id": matchID, "receiver_id": alice.UserID, "content": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Bob reads the conversation.
	resp = do(t, app, "GET", "/api/messages/"+matchID, bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var messages []map[string]interface{}
	decode(t, resp, &messages)
	assert.Len(t, messages, 3)

	// Unknown match id.
	resp = do(t, app, "GET", "/api/messages/00000000-0000-0000-0000-000000000001", bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProfileEndpoints(t *testing.T) {
	app := newTestApp(t)
	account := signup(t, app, "ada@x.com")

	resp := do(t, app, "PUT", "/api/profile", account.AccessToken, dto.UpdateProfileRequest{
		FirstName: "Ada",
		Birthday:  "1999-08-10",
		Location:  "Berlin",
		Interests: []string{"coffee", "chess"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, "GET", "/api/profile", account.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile map[string]interface{}
	decode(t, resp, &profile)
	assert.Equal(t, "Ada", profile["first_name"])
	assert.Equal(t, "Leo", profile["star_sign"])

	resp = do(t, app, "GET", "/api/user", account.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user map[string]interface{}
	decode(t, resp, &user)
	assert.Equal(t, "ada@x.com", user["email"])
	assert.Equal(t, "ada", user["username"])
}
