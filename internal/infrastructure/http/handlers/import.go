package handlers

import (
	"net/http"

	"github.com/alchemorsel/kitchen/internal/ports/inbound"
)

// ImportRequest is the body of an import call
type ImportRequest struct {
	URL string `json:"url"`
}

// ImportRecipe handles POST /api/v1/recipes/import.
// URL validation is left to the import service so every caller gets the same rules.
func (h *Handlers) ImportRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req ImportRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.importService.ImportFromURL(r.Context(), inbound.ImportCommand{
		UserID: userID,
		URL:    req.URL,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}
