package services

import (
	"net/http"
	"strings"
	"testing"
)

const authTestPrefix = "services:auth_test"

func TestLogin_DemoCredentials(t *testing.T) {
	p := testParams()
	svc, err := NewAuthService(p)
	if err != nil {
		t.Fatalf("%s - NewAuthService: %v", authTestPrefix, err)
	}

	tests := []struct {
		name       string
		email      string
		password   string
		userType   string
		wantStatus int
	}{
		{"borrower ok", "demo@borrower.com", "Demo123!", "borrower", http.StatusOK},
		{"broker ok", "broker@company.com", "Broker123!", "broker", http.StatusOK},
		{"wrong password", "demo@borrower.com", "nope", "borrower", http.StatusUnauthorized},
		{"wrong role", "demo@borrower.com", "Demo123!", "broker", http.StatusUnauthorized},
		{"unknown email", "ghost@nowhere.com", "Demo123!", "borrower", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		res := call(t, svc, http.MethodPost, "/api/auth/login", map[string]string{
			"email": tt.email, "password": tt.password, "userType": tt.userType,
		}, nil)
		if res.Status != tt.wantStatus {
			t.Errorf("%s - %s: status = %d, want %d", authTestPrefix, tt.name, res.Status, tt.wantStatus)
			continue
		}
		if tt.wantStatus != http.StatusOK {
			if res.Message != "Invalid credentials" {
				t.Errorf("%s - %s: message = %q", authTestPrefix, tt.name, res.Message)
			}
			continue
		}
		session := asMap(t, res.Data)
		token, _ := session["token"].(string)
		if !strings.HasPrefix(token, tokenPrefix) {
			t.Errorf("%s - %s: token = %q, want %q prefix", authTestPrefix, tt.name, token, tokenPrefix)
		}
		refresh, _ := session["refreshToken"].(string)
		if !strings.HasPrefix(refresh, refreshTokenPrefix) {
			t.Errorf("%s - %s: refreshToken = %q", authTestPrefix, tt.name, refresh)
		}
		if session["tokenType"] != "Bearer" || session["expiresIn"] != float64(tokenTTLSeconds) {
			t.Errorf("%s - %s: tokenType/expiresIn = %v/%v", authTestPrefix, tt.name, session["tokenType"], session["expiresIn"])
		}
	}
}

func TestLogin_TokensAreUnique(t *testing.T) {
	p := testParams()
	svc, _ := NewAuthService(p)

	body := map[string]string{"email": "demo@borrower.com", "password": "Demo123!", "userType": "borrower"}
	first := asMap(t, call(t, svc, http.MethodPost, "/api/auth/login", body, nil).Data)
	second := asMap(t, call(t, svc, http.MethodPost, "/api/auth/login", body, nil).Data)
	if first["token"] == second["token"] {
		t.Errorf("%s - two logins minted the same token", authTestPrefix)
	}
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	p := testParams()
	svc, _ := NewAuthService(p)
	before := p.Store.UserCount()

	res := call(t, svc, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "demo@borrower.com", "password": "Newpass123", "userType": "borrower",
	}, nil)
	if res.Status != http.StatusConflict {
		t.Fatalf("%s - duplicate register status = %d, want 409", authTestPrefix, res.Status)
	}
	if res.Message != "User already exists" {
		t.Errorf("%s - message = %q", authTestPrefix, res.Message)
	}
	if got := p.Store.UserCount(); got != before {
		t.Errorf("%s - user count changed on conflict: %d -> %d", authTestPrefix, before, got)
	}
}

func TestRegister_AppendsUser(t *testing.T) {
	p := testParams()
	svc, _ := NewAuthService(p)
	before := p.Store.UserCount()

	res := call(t, svc, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "new@user.com", "password": "Newpass123", "firstName": "New", "lastName": "User", "userType": "borrower",
	}, nil)
	if res.Status != http.StatusCreated {
		t.Fatalf("%s - register status = %d, want 201", authTestPrefix, res.Status)
	}
	if got := p.Store.UserCount(); got != before+1 {
		t.Errorf("%s - user count = %d, want %d", authTestPrefix, got, before+1)
	}
	if _, ok := p.Store.FindUserByEmail("new@user.com"); !ok {
		t.Errorf("%s - registered user not in store", authTestPrefix)
	}
}

func TestMe_RequiresBearerShapedHeader(t *testing.T) {
	p := testParams()
	svc, _ := NewAuthService(p)

	res := call(t, svc, http.MethodGet, "/api/auth/me", nil, nil)
	if res.Status != http.StatusUnauthorized {
		t.Errorf("%s - no header: status = %d, want 401", authTestPrefix, res.Status)
	}

	res = call(t, svc, http.MethodGet, "/api/auth/me", nil, map[string]string{"Authorization": "Bearer not-a-token"})
	if res.Status != http.StatusUnauthorized {
		t.Errorf("%s - malformed token: status = %d, want 401", authTestPrefix, res.Status)
	}

	user := p.Store.Users()[0]
	token := mintToken(tokenPrefix, user.ID)
	res = call(t, svc, http.MethodGet, "/api/auth/me", nil, map[string]string{"Authorization": "Bearer " + token})
	if res.Status != http.StatusOK {
		t.Fatalf("%s - valid token: status = %d", authTestPrefix, res.Status)
	}
	if got := asMap(t, res.Data)["id"]; got != user.ID {
		t.Errorf("%s - me id = %v, want %s", authTestPrefix, got, user.ID)
	}
}

func TestMe_UnknownSubjectFallsBackToDemoUser(t *testing.T) {
	p := testParams()
	svc, _ := NewAuthService(p)

	token := mintToken(tokenPrefix, "user-does-not-exist")
	res := call(t, svc, http.MethodGet, "/api/auth/me", nil, map[string]string{"Authorization": "Bearer " + token})
	if res.Status != http.StatusOK {
		t.Fatalf("%s - status = %d, want 200 fallback", authTestPrefix, res.Status)
	}
	if got := asMap(t, res.Data)["id"]; got != p.Store.Users()[0].ID {
		t.Errorf("%s - fallback id = %v", authTestPrefix, got)
	}
}

func TestRefresh_ValidatesTokenShape(t *testing.T) {
	p := testParams()
	svc, _ := NewAuthService(p)

	res := call(t, svc, http.MethodPost, "/api/auth/refresh", map[string]string{"refreshToken": "garbage"}, nil)
	if res.Status != http.StatusUnauthorized {
		t.Errorf("%s - bad token: status = %d, want 401", authTestPrefix, res.Status)
	}

	refresh := mintToken(refreshTokenPrefix, "user-1")
	res = call(t, svc, http.MethodPost, "/api/auth/refresh", map[string]string{"refreshToken": refresh}, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - refresh status = %d", authTestPrefix, res.Status)
	}
	out := asMap(t, res.Data)
	if token, _ := out["token"].(string); !strings.HasPrefix(token, tokenPrefix+"user-1.") {
		t.Errorf("%s - reissued token = %q, want subject user-1 preserved", authTestPrefix, token)
	}
}

func TestChangePassword_PlausibilityOnly(t *testing.T) {
	p := testParams()
	svc, _ := NewAuthService(p)

	res := call(t, svc, http.MethodPost, "/api/auth/change-password", map[string]string{
		"currentPassword": "wrong", "newPassword": "LongEnough1",
	}, nil)
	if res.Status != http.StatusUnauthorized {
		t.Errorf("%s - wrong current password: status = %d, want 401", authTestPrefix, res.Status)
	}

	res = call(t, svc, http.MethodPost, "/api/auth/change-password", map[string]string{
		"currentPassword": "Demo123!", "newPassword": "short",
	}, nil)
	if res.Status != http.StatusUnauthorized {
		t.Errorf("%s - short new password: status = %d, want 401", authTestPrefix, res.Status)
	}

	res = call(t, svc, http.MethodPost, "/api/auth/change-password", map[string]string{
		"currentPassword": "Demo123!", "newPassword": "LongEnough1",
	}, nil)
	if res.Status != http.StatusOK {
		t.Errorf("%s - valid change: status = %d", authTestPrefix, res.Status)
	}
}

func TestForgotPassword_UnknownEmailIs404(t *testing.T) {
	p := testParams()
	svc, _ := NewAuthService(p)

	res := call(t, svc, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": "ghost@nowhere.com"}, nil)
	if res.Status != http.StatusNotFound {
		t.Errorf("%s - unknown email: status = %d, want 404", authTestPrefix, res.Status)
	}

	res = call(t, svc, http.MethodPost, "/api/auth/forgot-password", map[string]string{"email": "demo@borrower.com"}, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - known email: status = %d", authTestPrefix, res.Status)
	}
	if token, _ := asMap(t, res.Data)["resetToken"].(string); !strings.HasPrefix(token, resetTokenPrefix) {
		t.Errorf("%s - resetToken = %q", authTestPrefix, token)
	}
}

func TestSocialLogin_AlwaysDemoUser(t *testing.T) {
	p := testParams()
	svc, _ := NewAuthService(p)

	for _, provider := range []string{"google", "microsoft", "apple"} {
		res := call(t, svc, http.MethodPost, "/api/auth/"+provider, nil, nil)
		if res.Status != http.StatusOK {
			t.Errorf("%s - %s: status = %d", authTestPrefix, provider, res.Status)
			continue
		}
		session := asMap(t, res.Data)
		if session["provider"] != provider {
			t.Errorf("%s - %s: provider = %v", authTestPrefix, provider, session["provider"])
		}
		user := asMap(t, session["user"])
		if user["email"] != "demo@borrower.com" {
			t.Errorf("%s - %s: user = %v, want fixed demo user", authTestPrefix, provider, user["email"])
		}
	}
}

func TestAuthHealth(t *testing.T) {
	p := testParams()
	svc, _ := NewAuthService(p)

	res := call(t, svc, http.MethodGet, "/api/auth/health", nil, nil)
	if res.Status != http.StatusOK {
		t.Fatalf("%s - health status = %d", authTestPrefix, res.Status)
	}
	h := asMap(t, res.Data)
	if h["service"] != "auth-service" || h["status"] != "healthy" {
		t.Errorf("%s - health payload = %v", authTestPrefix, h)
	}
}
