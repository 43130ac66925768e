package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Middleware wraps a handler
type Middleware = func(http.Handler) http.Handler

// Routes builds the /api/v1 router. authenticate guards every route except
// catalog browsing; importLimit additionally guards recipe imports.
func (h *Handlers) Routes(authenticate, importLimit Middleware) http.Handler {
	r := chi.NewRouter()

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", h.BrowseCatalog)
		r.Get("/{id}", h.GetCatalogRecipe)
		r.With(authenticate).Post("/{id}/save", h.SaveCatalogRecipe)
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Route("/recipes", func(r chi.Router) {
			r.With(importLimit).Post("/import", h.ImportRecipe)
			r.Get("/", h.ListRecipes)
			r.Post("/", h.CreateRecipe)
			r.Get("/{id}", h.GetRecipe)
			r.Put("/{id}", h.UpdateRecipe)
			r.Delete("/{id}", h.DeleteRecipe)
			r.Put("/{id}/favorite", h.SetFavorite)
		})

		r.Route("/pantry", func(r chi.Router) {
			r.Get("/", h.ListPantry)
			r.Post("/", h.AddPantryItem)
			r.Get("/expiring", h.ListExpiring)
			r.Put("/{id}", h.UpdatePantryItem)
			r.Delete("/{id}", h.DeletePantryItem)
			r.Post("/{id}/consume", h.ConsumePantryItem)
		})
	})

	return r
}
