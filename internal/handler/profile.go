package handler

import (
	"net/http"

	"github.com/Shiki0x/nymph/internal/service"
)

// ProfileHandler serves composed public profiles. No authentication:
// everything a user creates is public once created.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// HandleView composes and returns a user's public profile, with habit
// statuses for today (UTC).
// GET /api/profiles/{username}
// Response: 200 {profile document} | 404
func (h *ProfileHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	today, _ := parseDay("")
	profile, err := h.profiles.Compose(r.Context(), username, today)
	if err != nil {
		writeDomainError(w, err, "compose profile")
		return
	}

	writeJSON(w, http.StatusOK, toProfileDTO(profile))
}
