package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Shiki0x/nymph/internal/domain"
	"github.com/Shiki0x/nymph/internal/service"
)

// CardHandler handles profile card HTTP requests.
type CardHandler struct {
	cards *service.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cards *service.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

// HandleList lists the authenticated user's cards in display order.
// GET /api/cards
func (h *CardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	cards, err := h.cards.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "list cards")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cards": toCardDTOs(cards)})
}

// HandleCreate creates a card of the given kind at the end of the
// user's display order.
// POST /api/cards
// Request:  {"kind":"quote","payload":{"text":"..."}}
// Response: 201 {"card": {...}} | 400 invalid_payload
func (h *CardHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Kind    string          `json:"kind"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid request body.")
		return
	}

	payload, err := domain.DecodeCardPayload(domain.CardKind(req.Kind), req.Payload)
	if err != nil {
		writeDomainError(w, err, "decode card payload")
		return
	}

	card, err := h.cards.Create(r.Context(), user.ID, payload)
	if err != nil {
		writeDomainError(w, err, "create card")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"card": toCardDTO(card)})
}

// HandleUpdate replaces a card's payload in place. The kind is
// immutable; the request may omit it, in which case the stored kind is
// used to interpret the payload.
// PUT /api/cards/{id}
// Request:  {"payload":{...}} or {"kind":"...","payload":{...}}
// Response: 200 {"card": {...}} | 404 | 400
func (h *CardHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid card id.")
		return
	}

	var req struct {
		Kind    string          `json:"kind"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid request body.")
		return
	}

	kind := domain.CardKind(req.Kind)
	if kind == "" {
		existing, err := h.cards.Get(r.Context(), user.ID, id)
		if err != nil {
			writeDomainError(w, err, "get card")
			return
		}
		kind = existing.Kind()
	}

	payload, err := domain.DecodeCardPayload(kind, req.Payload)
	if err != nil {
		writeDomainError(w, err, "decode card payload")
		return
	}

	card, err := h.cards.Update(r.Context(), user.ID, id, payload)
	if err != nil {
		writeDomainError(w, err, "update card")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"card": toCardDTO(card)})
}

// HandleReorder reassigns the display order of all the user's cards.
// POST /api/cards/reorder
// Request:  {"order":[3,1,2]}
// Response: 200 {"cards":[...]} | 400 invalid_order
func (h *CardHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Order []int64 `json:"order"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid request body.")
		return
	}

	if err := h.cards.Reorder(r.Context(), user.ID, req.Order); err != nil {
		writeDomainError(w, err, "reorder cards")
		return
	}

	cards, err := h.cards.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "list cards after reorder")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cards": toCardDTOs(cards)})
}

// HandleDelete removes a card. Positions of the remaining cards are
// not renumbered.
// DELETE /api/cards/{id}
// Response: 204 | 404
func (h *CardHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "Invalid card id.")
		return
	}

	if err := h.cards.Delete(r.Context(), user.ID, id); err != nil {
		writeDomainError(w, err, "delete card")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
