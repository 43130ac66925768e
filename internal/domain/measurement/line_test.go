package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIngredientLine(t *testing.T) {
	tests := []struct {
		line string
		want Ingredient
	}{
		{"1 1/2 cups flour, sifted", Ingredient{Quantity: "1 1/2", Unit: "cups", Name: "flour", Notes: "sifted"}},
		{"2-3 lb chicken thighs", Ingredient{Quantity: "2-3", Unit: "lb", Name: "chicken thighs"}},
		{"1 to 2 tsp chili flakes", Ingredient{Quantity: "1 to 2", Unit: "tsp", Name: "chili flakes"}},
		{"4 fl oz cream", Ingredient{Quantity: "4", Unit: "fl oz", Name: "cream"}},
		{"200 g   dark chocolate", Ingredient{Quantity: "200", Unit: "g", Name: "dark chocolate"}},
		{"3 eggs", Ingredient{Quantity: "3", Name: "eggs"}},
		{"½ cup of milk", Ingredient{Quantity: "½", Unit: "cup", Name: "milk"}},
		{"Salt, to taste", Ingredient{Name: "Salt", Notes: "to taste"}},
		{"", Ingredient{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIngredientLine(tt.line))
		})
	}
}
