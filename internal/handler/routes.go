package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Shiki0x/nymph/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Mutating
// routes require the session cookie; profile composition and health are
// public.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	habits *service.HabitService,
	cards *service.CardService,
	links *service.LinkService,
	profiles *service.ProfileService,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	habitHandler := NewHabitHandler(habits)
	cardHandler := NewCardHandler(cards)
	linkHandler := NewLinkHandler(links)
	profileHandler := NewProfileHandler(profiles)

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/profiles/{username}", profileHandler.HandleView)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}

	mux.Handle("POST /api/habits", protected(habitHandler.HandleCreate))
	mux.Handle("GET /api/habits", protected(habitHandler.HandleList))
	mux.Handle("POST /api/habits/{id}/log", protected(habitHandler.HandleLog))
	mux.Handle("DELETE /api/habits/{id}", protected(habitHandler.HandleDelete))

	mux.Handle("GET /api/cards", protected(cardHandler.HandleList))
	mux.Handle("POST /api/cards", protected(cardHandler.HandleCreate))
	mux.Handle("POST /api/cards/reorder", protected(cardHandler.HandleReorder))
	mux.Handle("PUT /api/cards/{id}", protected(cardHandler.HandleUpdate))
	mux.Handle("DELETE /api/cards/{id}", protected(cardHandler.HandleDelete))

	mux.Handle("GET /api/links", protected(linkHandler.HandleList))
	mux.Handle("POST /api/links", protected(linkHandler.HandleCreate))
	mux.Handle("POST /api/links/reorder", protected(linkHandler.HandleReorder))
	mux.Handle("PUT /api/links/{id}", protected(linkHandler.HandleUpdate))
	mux.Handle("DELETE /api/links/{id}", protected(linkHandler.HandleDelete))
}
