package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/Shiki0x/nymph/internal/handler"
	"github.com/Shiki0x/nymph/internal/repository/sqlite"
	"github.com/Shiki0x/nymph/internal/service"
)

const testJWTSecret = "test-secret-test-secret-test-secret!"

// testServer wraps an httptest server with a cookie-aware client so
// tests can log in once and hit protected routes afterwards.
type testServer struct {
	server *httptest.Server
	client *http.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	auth := service.NewAuthService(db.Users(), testJWTSecret, 4)
	habits := service.NewHabitService(db.Habits())
	cards := service.NewCardService(db.Cards())
	links := service.NewLinkService(db.Links())
	profiles := service.NewProfileService(db.Users(), db.Habits(), db.Cards(), db.Links())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, habits, cards, links, profiles, false)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}

	return &testServer{
		server: server,
		client: &http.Client{Jar: jar},
	}
}

// newTestServerClient returns a second client with its own cookie jar
// against the same server, for multi-user tests.
func newTestServerClient(t *testing.T, ts *testServer) *testServer {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &testServer{
		server: ts.server,
		client: &http.Client{Jar: jar},
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// do sends a JSON request and returns the response. A nil body sends no
// payload.
func (ts *testServer) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, ts.server.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// login registers a user and logs in, leaving the session cookie on the
// client jar.
func (ts *testServer) login(t *testing.T, username string) {
	t.Helper()

	resp := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username":        username,
		"displayName":     "Test " + username,
		"password":        "password123",
		"confirmPassword": "password123",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", username, resp.StatusCode)
	}

	resp = ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": "password123",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d", resp.StatusCode, want)
	}
}

// errorKind extracts the error kind from a JSON error response.
func errorKind(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	decodeBody(t, resp, &body)
	return body.Error.Kind
}
