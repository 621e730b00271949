package handler

import (
	"net/http"
	"strconv"

	"github.com/Shiki0x/nymph/internal/service"
)

// LinkHandler handles public link HTTP requests.
type LinkHandler struct {
	links *service.LinkService
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(links *service.LinkService) *LinkHandler {
	return &LinkHandler{links: links}
}

// HandleList lists the authenticated user's links in display order.
// GET /api/links
func (h *LinkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	links, err := h.links.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "list links")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"links": toLinkDTOs(links)})
}

// HandleCreate creates a link at the end of the user's display order.
// POST /api/links
// Request:  {"label":"...","url":"https://..."}
// Response: 201 {"link": {...}} | 400
func (h *LinkHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Label string `json:"label"`
		URL   string `json:"url"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid request body.")
		return
	}

	link, err := h.links.Create(r.Context(), user.ID, req.Label, req.URL)
	if err != nil {
		writeDomainError(w, err, "create link")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"link": toLinkDTO(link)})
}

// HandleUpdate replaces a link's label and URL.
// PUT /api/links/{id}
// Response: 200 {"link": {...}} | 404 | 400
func (h *LinkHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid link id.")
		return
	}

	var req struct {
		Label string `json:"label"`
		URL   string `json:"url"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid request body.")
		return
	}

	link, err := h.links.Update(r.Context(), user.ID, id, req.Label, req.URL)
	if err != nil {
		writeDomainError(w, err, "update link")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"link": toLinkDTO(link)})
}

// HandleReorder reassigns the display order of all the user's links.
// POST /api/links/reorder
// Request:  {"order":[2,1]}
// Response: 200 {"links":[...]} | 400 invalid_order
func (h *LinkHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Order []int64 `json:"order"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid request body.")
		return
	}

	if err := h.links.Reorder(r.Context(), user.ID, req.Order); err != nil {
		writeDomainError(w, err, "reorder links")
		return
	}

	links, err := h.links.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "list links after reorder")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"links": toLinkDTOs(links)})
}

// HandleDelete removes a link.
// DELETE /api/links/{id}
// Response: 204 | 404
func (h *LinkHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid link id.")
		return
	}

	if err := h.links.Delete(r.Context(), user.ID, id); err != nil {
		writeDomainError(w, err, "delete link")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
