package catalog

import (
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/catalog"
	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/google/uuid"
)

type seedRecipe struct {
	name         string
	description  string
	cuisine      string
	tags         []string
	servings     int
	prep, cook   int
	lines        []string
	instructions []string
	macros       recipe.Macros
}

var seedRecipes = []seedRecipe{
	{
		name:        "Classic Buttermilk Pancakes",
		description: "Fluffy weekend pancakes.",
		cuisine:     "american",
		tags:        []string{"breakfast", "vegetarian"},
		servings:    4, prep: 10, cook: 15,
		lines: []string{
			"2 cups all-purpose flour",
			"2 tbsp sugar",
			"2 tsp baking powder",
			"2 cups buttermilk",
			"2 eggs",
			"3 tbsp butter, melted",
		},
		instructions: []string{
			"Whisk the dry ingredients together.",
			"Whisk buttermilk, eggs and butter, then fold into the dry mix.",
			"Cook ladlefuls on a hot griddle until bubbles form, flip and finish.",
		},
		macros: recipe.Macros{Calories: 420, Protein: 12, Carbs: 58, Fat: 15},
	},
	{
		name:        "Spaghetti Carbonara",
		description: "Roman pasta with egg, cheese and cured pork.",
		cuisine:     "italian",
		tags:        []string{"pasta", "quick"},
		servings:    4, prep: 10, cook: 15,
		lines: []string{
			"1 lb spaghetti",
			"6 oz guanciale, diced",
			"4 egg yolks",
			"1 cup pecorino romano, grated",
			"Black pepper, to taste",
		},
		instructions: []string{
			"Boil the spaghetti in salted water.",
			"Render the guanciale in a wide pan.",
			"Toss pasta with guanciale off the heat, then stir in yolks and cheese loosened with pasta water.",
		},
		macros: recipe.Macros{Calories: 650, Protein: 28, Carbs: 80, Fat: 24},
	},
	{
		name:        "Roast Chicken Thighs",
		description: "Crisp-skinned thighs with lemon and garlic.",
		cuisine:     "french",
		tags:        []string{"dinner", "gluten-free"},
		servings:    4, prep: 10, cook: 45,
		lines: []string{
			"2-3 lb chicken thighs",
			"2 tbsp olive oil",
			"4 cloves garlic",
			"1 lemon, quartered",
			"425 °F oven",
		},
		instructions: []string{
			"Heat the oven.",
			"Toss the chicken with oil, garlic and lemon.",
			"Roast skin side up until golden, about 45 minutes.",
		},
		macros: recipe.Macros{Calories: 480, Protein: 38, Carbs: 3, Fat: 34},
	},
	{
		name:        "Chana Masala",
		description: "Spiced chickpeas in tomato gravy.",
		cuisine:     "indian",
		tags:        []string{"vegan", "dinner"},
		servings:    4, prep: 15, cook: 30,
		lines: []string{
			"2 tbsp vegetable oil",
			"1 onion, chopped",
			"1 tbsp ginger garlic paste",
			"2 tsp garam masala",
			"14 oz crushed tomatoes",
			"2 cans chickpeas, drained",
		},
		instructions: []string{
			"Fry the onion in oil until golden.",
			"Add paste and spices, then the tomatoes.",
			"Simmer with chickpeas for 20 minutes.",
		},
		macros: recipe.Macros{Calories: 350, Protein: 13, Carbs: 48, Fat: 11},
	},
}

// DefaultSeed builds the starter catalog. Ingredient lines are parsed and
// converted to metric like imported recipes.
func DefaultSeed(normalizer *measurement.Normalizer) []*catalog.MasterRecipe {
	now := time.Now()
	out := make([]*catalog.MasterRecipe, 0, len(seedRecipes))
	for _, s := range seedRecipes {
		parsed := make([]measurement.Ingredient, len(s.lines))
		for i, line := range s.lines {
			parsed[i] = measurement.ParseIngredientLine(line)
		}
		ingredients, _ := normalizer.Normalize(parsed)

		out = append(out, &catalog.MasterRecipe{
			ID:           uuid.New(),
			Name:         s.name,
			Description:  s.description,
			Cuisine:      s.cuisine,
			Tags:         s.tags,
			Servings:     s.servings,
			PrepMinutes:  s.prep,
			CookMinutes:  s.cook,
			Ingredients:  ingredients,
			Instructions: s.instructions,
			Macros:       s.macros,
			RecipeSource: "alchemorsel.com",
			CreatedAt:    now,
		})
	}
	return out
}
