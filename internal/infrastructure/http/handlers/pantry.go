package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/pantry"
	"github.com/alchemorsel/kitchen/internal/ports/inbound"
	"github.com/alchemorsel/kitchen/pkg/errors"
)

// AddPantryItemRequest adds stock. expiresAt accepts a date or an RFC 3339 timestamp.
type AddPantryItemRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Quantity  string `json:"quantity" validate:"max=50"`
	Unit      string `json:"unit" validate:"max=50"`
	Category  string `json:"category" validate:"max=50"`
	Location  string `json:"location" validate:"omitempty,oneof=fridge freezer pantry"`
	ExpiresAt string `json:"expiresAt"`
}

// UpdatePantryItemRequest carries only the fields to change
type UpdatePantryItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Quantity    *string `json:"quantity" validate:"omitempty,max=50"`
	Unit        *string `json:"unit" validate:"omitempty,max=50"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
	Location    *string `json:"location" validate:"omitempty,oneof=fridge freezer pantry"`
	ExpiresAt   string  `json:"expiresAt"`
	ClearExpiry bool    `json:"clearExpiry"`
}

// ConsumeRequest uses up part of an item
type ConsumeRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

// ListPantry handles GET /api/v1/pantry
func (h *Handlers) ListPantry(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	location := pantry.Location(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("location"))))
	items, err := h.pantryService.ListItems(r.Context(), userID, location)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// ListExpiring handles GET /api/v1/pantry/expiring?days=N
func (h *Handlers) ListExpiring(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	days, err := queryInt(r, "days")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if days < 0 {
		h.writeError(w, r, errors.NewInvalidInputError("days must not be negative"))
		return
	}

	items, err := h.pantryService.ListExpiring(r.Context(), userID, days)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// AddPantryItem handles POST /api/v1/pantry
func (h *Handlers) AddPantryItem(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req AddPantryItemRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.validateStruct(req); err != nil {
		h.writeError(w, r, err)
		return
	}
	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	item, err := h.pantryService.AddItem(r.Context(), inbound.AddPantryItemCommand{
		UserID:    userID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		Category:  req.Category,
		Location:  pantry.Location(req.Location),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, item)
}

// UpdatePantryItem handles PUT /api/v1/pantry/{id}
func (h *Handlers) UpdatePantryItem(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req UpdatePantryItemRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.validateStruct(req); err != nil {
		h.writeError(w, r, err)
		return
	}
	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	cmd := inbound.UpdatePantryItemCommand{
		UserID:      userID,
		ItemID:      itemID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		Category:    req.Category,
		ExpiresAt:   expiresAt,
		ClearExpiry: req.ClearExpiry,
	}
	if req.Location != nil {
		location := pantry.Location(*req.Location)
		cmd.Location = &location
	}

	item, err := h.pantryService.UpdateItem(r.Context(), cmd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

// DeletePantryItem handles DELETE /api/v1/pantry/{id}
func (h *Handlers) DeletePantryItem(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.pantryService.RemoveItem(r.Context(), userID, itemID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ConsumePantryItem handles POST /api/v1/pantry/{id}/consume
func (h *Handlers) ConsumePantryItem(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req ConsumeRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.validateStruct(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	item, err := h.pantryService.ConsumeItem(r.Context(), userID, itemID, req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, item)
}

// parseExpiry accepts "2006-01-02" or RFC 3339; empty means no date
func parseExpiry(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return nil, errors.NewInvalidInputError("expiresAt must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	return &t, nil
}
