package handler_test

import (
	"net/http"
	"testing"
)

func TestAuth_RegisterLoginLogout(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username":        "amy",
		"displayName":     "Amy",
		"password":        "password123",
		"confirmPassword": "password123",
	})
	wantStatus(t, resp, http.StatusCreated)
	var created struct {
		User struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	decodeBody(t, resp, &created)
	if created.User.Username != "amy" || created.User.ID == 0 {
		t.Fatalf("unexpected user: %+v", created.User)
	}

	resp = ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "amy",
		"password": "password123",
	})
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	// Session cookie should open protected routes.
	resp = ts.do(t, http.MethodGet, "/api/habits", nil)
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = ts.do(t, http.MethodPost, "/api/auth/logout", nil)
	wantStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()

	resp = ts.do(t, http.MethodGet, "/api/habits", nil)
	wantStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()
}

func TestAuth_Register_DuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "amy")

	resp := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username":        "amy",
		"displayName":     "Another Amy",
		"password":        "password123",
		"confirmPassword": "password123",
	})
	wantStatus(t, resp, http.StatusConflict)
	if kind := errorKind(t, resp); kind != "duplicate_username" {
		t.Fatalf("error kind = %q, want duplicate_username", kind)
	}
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "amy")

	resp := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "amy",
		"password": "wrongpassword",
	})
	wantStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()
}

func TestAuth_ProtectedRoutes_RequireCookie(t *testing.T) {
	ts := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/habits"},
		{http.MethodPost, "/api/cards"},
		{http.MethodPost, "/api/links/reorder"},
	} {
		resp := ts.do(t, route.method, route.path, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: status %d, want 401", route.method, route.path, resp.StatusCode)
		}
		resp.Body.Close()
	}
}
