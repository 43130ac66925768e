package handlers

import (
	"net/http"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/alchemorsel/kitchen/internal/ports/inbound"
)

// SaveRecipeRequest is a draft to store in the caller's library. An import
// result can be posted back unchanged.
type SaveRecipeRequest struct {
	Name            string                             `json:"name" validate:"required,min=3,max=200"`
	Description     string                             `json:"description" validate:"max=2000"`
	Servings        int                                `json:"servings" validate:"gte=0"`
	PrepTimeMinutes int                                `json:"prepTimeMinutes" validate:"gte=0"`
	CookTimeMinutes int                                `json:"cookTimeMinutes" validate:"gte=0"`
	Ingredients     []measurement.NormalizedIngredient `json:"ingredients" validate:"dive"`
	Instructions    []string                           `json:"instructions" validate:"required,min=1,dive,required"`
	Macros          recipe.Macros                      `json:"macros"`
	Tags            []string                           `json:"tags" validate:"max=20,dive,min=1,max=50"`
	SourceURL       string                             `json:"sourceUrl" validate:"omitempty,url"`
	RecipeSource    string                             `json:"recipeSource" validate:"max=255"`
}

// UpdateRecipeRequest carries only the fields to change
type UpdateRecipeRequest struct {
	Name         *string                   `json:"name" validate:"omitempty,min=3,max=200"`
	Description  *string                   `json:"description" validate:"omitempty,max=2000"`
	Servings     *int                      `json:"servings" validate:"omitempty,gte=0"`
	PrepMinutes  *int                      `json:"prepTimeMinutes" validate:"omitempty,gte=0"`
	CookMinutes  *int                      `json:"cookTimeMinutes" validate:"omitempty,gte=0"`
	Ingredients  *[]measurement.Ingredient `json:"ingredients" validate:"omitempty,dive"`
	Instructions *[]string                 `json:"instructions" validate:"omitempty,min=1,dive,required"`
	Macros       *recipe.Macros            `json:"macros"`
	Tags         *[]string                 `json:"tags" validate:"omitempty,max=20,dive,min=1,max=50"`
}

// FavoriteRequest toggles the favorite flag
type FavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

// ListRecipes handles GET /api/v1/recipes
func (h *Handlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

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
	favorites, err := queryBool(r, "favorites")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.recipeService.ListRecipes(r.Context(), userID, inbound.ListQuery{
		Search:    r.URL.Query().Get("q"),
		Favorites: favorites,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, list)
}

// CreateRecipe handles POST /api/v1/recipes
func (h *Handlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req SaveRecipeRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.validateStruct(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	saved, err := h.recipeService.SaveRecipe(r.Context(), inbound.SaveRecipeCommand{
		UserID: userID,
		Draft: inbound.RecipeDraft{
			Name:            req.Name,
			Description:     req.Description,
			Servings:        req.Servings,
			PrepTimeMinutes: req.PrepTimeMinutes,
			CookTimeMinutes: req.CookTimeMinutes,
			Ingredients:     req.Ingredients,
			Instructions:    req.Instructions,
			Macros:          req.Macros,
			SourceURL:       req.SourceURL,
			RecipeSource:    req.RecipeSource,
		},
		Tags: req.Tags,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/recipes/"+saved.ID.String())
	h.writeJSON(w, http.StatusCreated, saved)
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *Handlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.recipeService.GetRecipe(r.Context(), userID, recipeID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// UpdateRecipe handles PUT /api/v1/recipes/{id}
func (h *Handlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req UpdateRecipeRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.validateStruct(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.recipeService.UpdateRecipe(r.Context(), inbound.UpdateRecipeCommand{
		RecipeID:     recipeID,
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Servings:     req.Servings,
		PrepMinutes:  req.PrepMinutes,
		CookMinutes:  req.CookMinutes,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Macros:       req.Macros,
		Tags:         req.Tags,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// SetFavorite handles PUT /api/v1/recipes/{id}/favorite
func (h *Handlers) SetFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req FavoriteRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.validateStruct(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.recipeService.SetFavorite(r.Context(), userID, recipeID, *req.Favorite)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dto)
}

// DeleteRecipe handles DELETE /api/v1/recipes/{id}
func (h *Handlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), userID, recipeID); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
