package measurement

// Ingredient is one line of a recipe as it is stored and served
type Ingredient struct {
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Name     string `json:"name" validate:"required"`
	Notes    string `json:"notes,omitempty"`
}

// NormalizedIngredient is an ingredient after the metric pass
type NormalizedIngredient struct {
	Ingredient
	Converted        bool   `json:"converted"`
	OriginalQuantity string `json:"originalQuantity,omitempty"`
	OriginalUnit     string `json:"originalUnit,omitempty"`
}

// ConversionSummary counts how many ingredient lines were rewritten
type ConversionSummary struct {
	Total     int `json:"total"`
	Converted int `json:"converted"`
}

// Normalizer rewrites imperial quantities to metric. It holds no mutable state
// and is safe for concurrent use.
type Normalizer struct {
	table *Table
}

// NewNormalizer creates a normalizer backed by the default conversion table
func NewNormalizer() *Normalizer {
	return &Normalizer{table: DefaultTable}
}

// Convert converts a single ingredient. The boolean is false when the line was
// left untouched: unit empty, already metric, unknown, or quantity not numeric.
func (n *Normalizer) Convert(in Ingredient) (Ingredient, bool) {
	if in.Unit == "" || n.table.IsMetric(in.Unit) {
		return in, false
	}

	conv, ok := n.table.Lookup(in.Unit)
	if !ok {
		return in, false
	}

	qty, ok := ParseQuantity(in.Quantity)
	if !ok {
		return in, false
	}

	out := in
	out.Quantity = qty.Map(conv.Apply).String()
	out.Unit = conv.To
	return out, true
}

// Normalize converts every ingredient in order. The output has the same length
// and order as the input.
func (n *Normalizer) Normalize(ingredients []Ingredient) ([]NormalizedIngredient, ConversionSummary) {
	out := make([]NormalizedIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		converted, ok := n.Convert(ing)
		ni := NormalizedIngredient{Ingredient: converted, Converted: ok}
		if ok {
			ni.OriginalQuantity = ing.Quantity
			ni.OriginalUnit = ing.Unit
		}
		out = append(out, ni)
	}
	return out, Summarize(out)
}

// Renormalize runs an already normalized list through the converter again.
// Metric lines pass through untouched, so prior conversion flags survive.
func (n *Normalizer) Renormalize(ingredients []NormalizedIngredient) ([]NormalizedIngredient, ConversionSummary) {
	out := make([]NormalizedIngredient, 0, len(ingredients))
	for _, ni := range ingredients {
		converted, ok := n.Convert(ni.Ingredient)
		next := ni
		next.Ingredient = converted
		if ok {
			next.Converted = true
			next.OriginalQuantity = ni.Quantity
			next.OriginalUnit = ni.Unit
		}
		out = append(out, next)
	}
	return out, Summarize(out)
}

// Summarize counts converted lines
func Summarize(ingredients []NormalizedIngredient) ConversionSummary {
	s := ConversionSummary{Total: len(ingredients)}
	for _, ing := range ingredients {
		if ing.Converted {
			s.Converted++
		}
	}
	return s
}

// Plain strips conversion bookkeeping
func Plain(ingredients []NormalizedIngredient) []Ingredient {
	out := make([]Ingredient, len(ingredients))
	for i, ing := range ingredients {
		out[i] = ing.Ingredient
	}
	return out
}
