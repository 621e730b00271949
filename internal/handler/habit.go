package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Shiki0x/nymph/internal/domain"
	"github.com/Shiki0x/nymph/internal/service"
)

// HabitHandler handles habit-related HTTP requests.
type HabitHandler struct {
	habits *service.HabitService
}

// NewHabitHandler creates a new HabitHandler.
func NewHabitHandler(habits *service.HabitService) *HabitHandler {
	return &HabitHandler{habits: habits}
}

// HandleCreate creates a habit for the authenticated user.
// POST /api/habits
// Request:  {"name":"..."}
// Response: 201 {"habit": {...}} | 409 duplicate_name
func (h *HabitHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid request body.")
		return
	}

	habit, err := h.habits.Create(r.Context(), user.ID, req.Name)
	if err != nil {
		writeDomainError(w, err, "create habit")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"habit": toHabitDTO(habit)})
}

// HandleList lists the authenticated user's habits with completion
// status for a day.
// GET /api/habits?date=YYYY-MM-DD (date defaults to today, UTC)
// Response: 200 {"date":"...","habits":[{...}]}
func (h *HabitHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	day, err := parseDay(r.URL.Query().Get("date"))
	if err != nil {
		writeDomainError(w, err, "parse date")
		return
	}

	statuses, err := h.habits.ListWithStatus(r.Context(), user.ID, day)
	if err != nil {
		writeDomainError(w, err, "list habits")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":   day.Format(time.DateOnly),
		"habits": toHabitStatusDTOs(statuses),
	})
}

// HandleLog upserts a completion log for a habit and day. Logging the
// same day twice overwrites the completed flag.
// POST /api/habits/{id}/log
// Request:  {"date":"YYYY-MM-DD","completed":true}
// Response: 200 {"log": {...}} | 404
func (h *HabitHandler) HandleLog(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid habit id.")
		return
	}

	var req struct {
		Date      string `json:"date"`
		Completed bool   `json:"completed"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid request body.")
		return
	}

	day, err := parseDay(req.Date)
	if err != nil {
		writeDomainError(w, err, "parse date")
		return
	}

	log, err := h.habits.LogCompletion(r.Context(), user.ID, id, day, req.Completed)
	if err != nil {
		writeDomainError(w, err, "log completion")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"log": toHabitLogDTO(log)})
}

// HandleDelete removes a habit and its logs.
// DELETE /api/habits/{id}
// Response: 204 | 404
func (h *HabitHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid habit id.")
		return
	}

	if err := h.habits.Delete(r.Context(), user.ID, id); err != nil {
		writeDomainError(w, err, "delete habit")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseDay interprets a YYYY-MM-DD string as a UTC calendar day. An
// empty string means today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	day, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return day, nil
}
