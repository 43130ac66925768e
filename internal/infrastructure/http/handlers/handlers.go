package handlers

import (
	"reflect"
	"strings"

	"github.com/alchemorsel/kitchen/internal/ports/inbound"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handlers handles REST API requests
type Handlers struct {
	importService  inbound.ImportService
	recipeService  inbound.RecipeService
	pantryService  inbound.PantryService
	catalogService inbound.CatalogService
	validate       *validator.Validate
	logger         *zap.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(
	importService inbound.ImportService,
	recipeService inbound.RecipeService,
	pantryService inbound.PantryService,
	catalogService inbound.CatalogService,
	logger *zap.Logger,
) *Handlers {
	validate := validator.New()
	// report json field names in validation messages
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return &Handlers{
		importService:  importService,
		recipeService:  recipeService,
		pantryService:  pantryService,
		catalogService: catalogService,
		validate:       validate,
		logger:         logger.Named("http"),
	}
}
