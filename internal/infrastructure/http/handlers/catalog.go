package handlers

import (
	"net/http"

	"github.com/alchemorsel/kitchen/internal/ports/inbound"
)

// BrowseCatalog handles GET /api/v1/catalog
func (h *Handlers) BrowseCatalog(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	pageSize, err := queryInt(r, "pageSize")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	result, err := h.catalogService.Browse(r.Context(), inbound.BrowseQuery{
		Search:   q.Get("q"),
		Cuisine:  q.Get("cuisine"),
		Tag:      q.Get("tag"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// GetCatalogRecipe handles GET /api/v1/catalog/{id}
func (h *Handlers) GetCatalogRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	entry, err := h.catalogService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, entry)
}

// SaveCatalogRecipe handles POST /api/v1/catalog/{id}/save
func (h *Handlers) SaveCatalogRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	saved, err := h.catalogService.AddToLibrary(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/recipes/"+saved.ID.String())
	h.writeJSON(w, http.StatusCreated, saved)
}
