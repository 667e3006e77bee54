package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jazzx/virtual-services/pkg/fixtures"
	"github.com/jazzx/virtual-services/pkg/latency"
	"github.com/jazzx/virtual-services/pkg/router"
)

const authLogPrefix = "services:auth"

// Demo credentials accepted by the simulated auth backend. No real hashing
// happens anywhere in this layer.
const (
	demoBorrowerPassword = "Demo123!"
	demoBrokerPassword   = "Broker123!"
)

const (
	tokenPrefix        = "auth-jwt-"
	refreshTokenPrefix = "auth-refresh-"
	resetTokenPrefix   = "reset-"
	tokenTTLSeconds    = 3600
)

type authRoutes struct {
	store *fixtures.Store
	sim   *latency.Simulator
}

// NewAuthService builds the auth virtual service: login, registration, token
// refresh, profile management, and password flows over the shared user
// collection.
func NewAuthService(p Params) (*Service, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	svc, err := newService("auth-service", "/api/auth", "1.0.0")
	if err != nil {
		return nil, err
	}

	a := &authRoutes{store: p.Store, sim: p.Sim}
	r := svc.routes
	r.Register(http.MethodPost, "/api/auth/login", a.login)
	r.Register(http.MethodPost, "/api/auth/register", a.register)
	r.Register(http.MethodPost, "/api/auth/logout", a.logout)
	r.Register(http.MethodPost, "/api/auth/refresh", a.refresh)
	r.Register(http.MethodGet, "/api/auth/me", a.me)
	r.Register(http.MethodPut, "/api/auth/profile", a.updateProfile)
	r.Register(http.MethodPost, "/api/auth/change-password", a.changePassword)
	r.Register(http.MethodPost, "/api/auth/forgot-password", a.forgotPassword)
	r.Register(http.MethodPost, "/api/auth/reset-password", a.resetPassword)
	r.Register(http.MethodPost, "/api/auth/google", a.socialLogin("google"))
	r.Register(http.MethodPost, "/api/auth/microsoft", a.socialLogin("microsoft"))
	r.Register(http.MethodPost, "/api/auth/apple", a.socialLogin("apple"))
	r.Register(http.MethodGet, "/api/auth/health", svc.healthHandler(nil, nil))
	return svc, nil
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

type sessionOutput struct {
	User         fixtures.User `json:"user"`
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    int           `json:"expiresIn"`
	TokenType    string        `json:"tokenType"`
	Provider     string        `json:"provider,omitempty"`
}

func (a *authRoutes) login(ctx context.Context, req *router.Request) *router.Result {
	a.sim.Write(ctx)

	var input loginInput
	if err := req.Bind(&input); err != nil {
		return router.Fail(http.StatusUnauthorized, "Invalid credentials")
	}

	user, ok := a.store.FindUser(input.Email, input.UserType)
	if !ok || !validDemoPassword(input.Password) {
		slog.Info(fmt.Sprintf("%s - login rejected email=%s", authLogPrefix, input.Email))
		return router.Fail(http.StatusUnauthorized, "Invalid credentials")
	}

	return router.OK(newSession(user, ""))
}

type registerInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	UserType  string `json:"userType"`
}

func (a *authRoutes) register(ctx context.Context, req *router.Request) *router.Result {
	a.sim.Write(ctx)

	var input registerInput
	if err := req.Bind(&input); err != nil {
		return router.Fail(http.StatusUnauthorized, "Invalid registration data")
	}

	if _, exists := a.store.FindUserByEmail(input.Email); exists {
		return router.Fail(http.StatusConflict, "User already exists")
	}

	now := fixtures.NowISO()
	user := fixtures.User{
		ID:        newID("user"),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		UserType:  input.UserType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	a.store.AddUser(user)
	slog.Info(fmt.Sprintf("%s - registered user id=%s", authLogPrefix, user.ID))

	return router.Created(newSession(user, ""))
}

func (a *authRoutes) logout(ctx context.Context, req *router.Request) *router.Result {
	a.sim.Read(ctx)
	return router.OKMessage("Logged out successfully")
}

func (a *authRoutes) refresh(ctx context.Context, req *router.Request) *router.Result {
	a.sim.Read(ctx)

	var input struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := req.Bind(&input); err != nil || !strings.HasPrefix(input.RefreshToken, refreshTokenPrefix) {
		return router.Fail(http.StatusUnauthorized, "Invalid refresh token")
	}

	userID := subjectOf(input.RefreshToken, refreshTokenPrefix)
	return router.OK(map[string]any{
		"token":     mintToken(tokenPrefix, userID),
		"expiresIn": tokenTTLSeconds,
		"tokenType": "Bearer",
	})
}

func (a *authRoutes) me(ctx context.Context, req *router.Request) *router.Result {
	a.sim.Read(ctx)

	userID, ok := bearerSubject(req)
	if !ok {
		return router.Fail(http.StatusUnauthorized, "Unauthorized")
	}

	user, found := a.store.FindUserByID(userID)
	if !found {
		// Demo fallback: a token-shaped header always resolves to a user.
		user = a.store.Users()[0]
	}
	return router.OK(user)
}

type profileInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func (a *authRoutes) updateProfile(ctx context.Context, req *router.Request) *router.Result {
	a.sim.Write(ctx)

	userID, ok := bearerSubject(req)
	if !ok {
		return router.Fail(http.StatusUnauthorized, "Unauthorized")
	}

	var input profileInput
	if err := req.Bind(&input); err != nil {
		return router.Fail(http.StatusUnauthorized, "Unauthorized")
	}

	updated, found := a.store.UpdateUser(userID, func(u *fixtures.User) {
		if input.FirstName != "" {
			u.FirstName = input.FirstName
		}
		if input.LastName != "" {
			u.LastName = input.LastName
		}
		if input.Phone != "" {
			u.Phone = input.Phone
		}
		u.UpdatedAt = fixtures.NowISO()
	})
	if !found {
		return router.Fail(http.StatusUnauthorized, "Unauthorized")
	}
	return router.OK(updated)
}

func (a *authRoutes) changePassword(ctx context.Context, req *router.Request) *router.Result {
	a.sim.Write(ctx)

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := req.Bind(&input); err != nil {
		return router.Fail(http.StatusUnauthorized, "Current password is incorrect")
	}

	if !validDemoPassword(input.CurrentPassword) {
		return router.Fail(http.StatusUnauthorized, "Current password is incorrect")
	}
	if len(input.NewPassword) < 8 {
		return router.Fail(http.StatusUnauthorized, "Password must be at least 8 characters")
	}
	return router.OKMessage("Password changed successfully")
}

func (a *authRoutes) forgotPassword(ctx context.Context, req *router.Request) *router.Result {
	a.sim.Write(ctx)

	var input struct {
		Email string `json:"email"`
	}
	if err := req.Bind(&input); err != nil {
		return router.Fail(http.StatusNotFound, "User not found")
	}

	user, ok := a.store.FindUserByEmail(input.Email)
	if !ok {
		return router.Fail(http.StatusNotFound, "User not found")
	}
	return router.OK(map[string]any{
		"message":    "Password reset email sent",
		"resetToken": mintToken(resetTokenPrefix, user.ID),
	})
}

func (a *authRoutes) resetPassword(ctx context.Context, req *router.Request) *router.Result {
	a.sim.Write(ctx)

	var input struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := req.Bind(&input); err != nil {
		return router.Fail(http.StatusUnauthorized, "Invalid reset token or password")
	}

	if !strings.HasPrefix(input.Token, resetTokenPrefix) || len(input.NewPassword) < 8 {
		return router.Fail(http.StatusUnauthorized, "Invalid reset token or password")
	}
	return router.OKMessage("Password reset successfully")
}

// socialLogin always succeeds with the fixed demo user.
func (a *authRoutes) socialLogin(provider string) router.HandlerFunc {
	return func(ctx context.Context, req *router.Request) *router.Result {
		a.sim.Write(ctx)
		user := a.store.Users()[0]
		return router.OK(newSession(user, provider))
	}
}

// --- token helpers ---

// Tokens are opaque strings of the form "<prefix><userID>.<uuid>". Only the
// prefix and shape are ever validated, never any cryptographic property.
func mintToken(prefix, userID string) string {
	return prefix + userID + "." + uuid.NewString()
}

func subjectOf(token, prefix string) string {
	rest := strings.TrimPrefix(token, prefix)
	if sub, _, ok := strings.Cut(rest, "."); ok {
		return sub
	}
	return rest
}

func bearerSubject(req *router.Request) (string, bool) {
	header := req.Header("Authorization")
	if !strings.HasPrefix(header, "Bearer "+tokenPrefix) {
		return "", false
	}
	return subjectOf(strings.TrimPrefix(header, "Bearer "), tokenPrefix), true
}

func validDemoPassword(password string) bool {
	return password == demoBorrowerPassword || password == demoBrokerPassword
}

func newSession(user fixtures.User, provider string) sessionOutput {
	return sessionOutput{
		User:         user,
		Token:        mintToken(tokenPrefix, user.ID),
		RefreshToken: mintToken(refreshTokenPrefix, user.ID),
		ExpiresIn:    tokenTTLSeconds,
		TokenType:    "Bearer",
		Provider:     provider,
	}
}
