package handler_test

import (
	"net/http"
	"testing"
	"time"
)

func TestProfile_View(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, "amy")

	habitID := createHabit(t, ts, "Read")
	today := time.Now().UTC().Format(time.DateOnly)
	resp := ts.do(t, http.MethodPost, "/api/habits/"+itoa(habitID)+"/log", map[string]any{
		"date":      today,
		"completed": true,
	})
	wantStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	createCard(t, ts, "quote", map[string]any{"text": "Stay curious"})
	createCard(t, ts, "list", map[string]any{"title": "Hobbies", "items": []string{"chess", "pottery"}})
	createLink(t, ts, "Blog", "https://blog.example.com")

	// The composed profile is public: no cookie required.
	anon := newTestServerClient(t, ts)
	resp = anon.do(t, http.MethodGet, "/api/profiles/amy", nil)
	wantStatus(t, resp, http.StatusOK)

	var profile struct {
		Username    string `json:"username"`
		DisplayName string `json:"displayName"`
		Habits      []struct {
			Name      string `json:"name"`
			Completed bool   `json:"completed"`
		} `json:"habits"`
		Cards []struct {
			Kind    string         `json:"kind"`
			Payload map[string]any `json:"payload"`
		} `json:"cards"`
		Links []struct {
			Label string `json:"label"`
			URL   string `json:"url"`
		} `json:"links"`
	}
	decodeBody(t, resp, &profile)

	if profile.Username != "amy" || profile.DisplayName != "Test amy" {
		t.Fatalf("unexpected identity: %q %q", profile.Username, profile.DisplayName)
	}
	if len(profile.Habits) != 1 || profile.Habits[0].Name != "Read" || !profile.Habits[0].Completed {
		t.Fatalf("unexpected habits: %+v", profile.Habits)
	}
	if len(profile.Cards) != 2 || profile.Cards[0].Kind != "quote" || profile.Cards[1].Kind != "list" {
		t.Fatalf("unexpected cards: %+v", profile.Cards)
	}
	if profile.Cards[0].Payload["text"] != "Stay curious" {
		t.Fatalf("unexpected quote payload: %+v", profile.Cards[0].Payload)
	}
	if len(profile.Links) != 1 || profile.Links[0].Label != "Blog" {
		t.Fatalf("unexpected links: %+v", profile.Links)
	}
}

func TestProfile_View_UnknownUser(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/profiles/nobody", nil)
	wantStatus(t, resp, http.StatusNotFound)
	if kind := errorKind(t, resp); kind != "not_found" {
		t.Fatalf("error kind = %q, want not_found", kind)
	}
}
