package measurement

import "strings"

// ParseIngredientLine splits a free-text line such as "1 1/2 cups flour, sifted"
// into quantity, unit, name and notes. Lines without a leading quantity keep
// the whole text as the name.
func ParseIngredientLine(line string) Ingredient {
	text := strings.Join(strings.Fields(line), " ")
	if text == "" {
		return Ingredient{}
	}

	var ing Ingredient
	rest := text

	tokens := strings.Fields(text)
	for n := min(3, len(tokens)); n > 0; n-- {
		candidate := strings.Join(tokens[:n], " ")
		if _, ok := ParseQuantity(candidate); ok {
			ing.Quantity = candidate
			tokens = tokens[n:]
			rest = strings.Join(tokens, " ")
			break
		}
	}

	if ing.Quantity != "" {
		for n := min(2, len(tokens)); n > 0; n-- {
			candidate := strings.Join(tokens[:n], " ")
			if _, ok := DefaultTable.Lookup(candidate); ok || DefaultTable.IsMetric(candidate) {
				ing.Unit = candidate
				rest = strings.Join(tokens[n:], " ")
				break
			}
		}
	}

	name, notes, found := strings.Cut(rest, ",")
	ing.Name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "of "))
	if found {
		ing.Notes = strings.TrimSpace(notes)
	}
	if ing.Name == "" {
		ing.Name = text
	}
	return ing
}
