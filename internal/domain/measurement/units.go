// Package measurement holds the ingredient unit model and the imperial to metric
// conversion table used when recipes enter the system.
package measurement

import (
	"math"
	"strings"
)

// Metric units produced by the conversion table
const (
	UnitMilliliter = "ml"
	UnitLiter      = "l"
	UnitGram       = "g"
	UnitKilogram   = "kg"
	UnitCelsius    = "°C"
)

// Conversion maps one imperial unit onto its metric equivalent
type Conversion struct {
	From      string
	To        string
	transform func(float64) float64
	round     func(float64) float64
}

// Apply converts a single value and rounds it for kitchen use
func (c Conversion) Apply(v float64) float64 {
	out := c.round(c.transform(v))
	if out == 0 {
		// avoid rendering "-0"
		return 0
	}
	return out
}

// Table is an immutable lookup of unit aliases
type Table struct {
	conversions map[string]Conversion
	metric      map[string]struct{}
}

// Lookup finds the conversion for a unit token, if the unit is a known imperial unit
func (t *Table) Lookup(unit string) (Conversion, bool) {
	if isCelsiusSymbol(unit) {
		return Conversion{}, false
	}
	c, ok := t.conversions[canonicalUnit(unit)]
	return c, ok
}

// IsMetric reports whether the unit token is already metric
func (t *Table) IsMetric(unit string) bool {
	if isCelsiusSymbol(unit) {
		return true
	}
	_, ok := t.metric[canonicalUnit(unit)]
	return ok
}

// isCelsiusSymbol matches a bare upper-case "C", which is Celsius even though
// lower-case "c" abbreviates cup
func isCelsiusSymbol(unit string) bool {
	return strings.TrimSpace(unit) == "C"
}

func scale(factor float64) func(float64) float64 {
	return func(v float64) float64 { return v * factor }
}

func fahrenheitToCelsius(v float64) float64 {
	return (v - 32) * 5 / 9
}

// roundFine rounds grams and milliliters: whole numbers from 10 up, one decimal below
func roundFine(v float64) float64 {
	if math.Abs(v) >= 10 {
		return math.Round(v)
	}
	return math.Round(v*10) / 10
}

// roundCoarse rounds kilograms and liters to two decimals
func roundCoarse(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundWhole(v float64) float64 {
	return math.Round(v)
}

// DefaultTable is the process-wide conversion table. It uses the rounded US kitchen
// convention (1 cup = 240 ml) rather than exact customary values.
var DefaultTable = newTable()

func newTable() *Table {
	t := &Table{
		conversions: make(map[string]Conversion),
		metric:      make(map[string]struct{}),
	}

	add := func(from, to string, transform, round func(float64) float64, aliases ...string) {
		c := Conversion{From: from, To: to, transform: transform, round: round}
		for _, alias := range aliases {
			t.conversions[alias] = c
		}
	}

	// Volume
	add("cup", UnitMilliliter, scale(240), roundFine, "cup", "cups", "c")
	add("tbsp", UnitMilliliter, scale(15), roundFine, "tbsp", "tbsps", "tbs", "tbl", "tablespoon", "tablespoons")
	add("tsp", UnitMilliliter, scale(5), roundFine, "tsp", "tsps", "teaspoon", "teaspoons")
	add("fl oz", UnitMilliliter, scale(30), roundFine, "fl oz", "floz", "fl ounce", "fl ounces", "fluid ounce", "fluid ounces")
	add("pint", UnitMilliliter, scale(473), roundFine, "pt", "pts", "pint", "pints")
	add("quart", UnitMilliliter, scale(946), roundFine, "qt", "qts", "quart", "quarts")
	add("gallon", UnitLiter, scale(3.785), roundCoarse, "gal", "gals", "gallon", "gallons")

	// Weight
	add("oz", UnitGram, scale(28.35), roundFine, "oz", "ozs", "ounce", "ounces")
	add("lb", UnitKilogram, scale(0.4536), roundCoarse, "lb", "lbs", "pound", "pounds")

	// Temperature
	add("°F", UnitCelsius, fahrenheitToCelsius, roundWhole,
		"°f", "° f", "ºf", "f", "degf", "deg f", "degree f", "degrees f", "fahrenheit", "degrees fahrenheit")

	for _, unit := range []string{
		"ml", "milliliter", "milliliters", "millilitre", "millilitres",
		"cl", "centiliter", "centiliters", "dl", "deciliter", "deciliters",
		"l", "liter", "liters", "litre", "litres",
		"mg", "milligram", "milligrams",
		"g", "gr", "gram", "grams", "gramme", "grammes",
		"kg", "kgs", "kilo", "kilos", "kilogram", "kilograms",
		"°c", "° c", "ºc", "degc", "deg c", "degree c", "degrees c", "celsius", "degrees celsius",
	} {
		t.metric[unit] = struct{}{}
	}

	return t
}

// canonicalUnit lower-cases a unit token and strips punctuation noise so that
// "Fl. Oz.", "fl oz" and "FL  OZ" resolve to the same key
func canonicalUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.ReplaceAll(u, ".", "")
	return strings.Join(strings.Fields(u), " ")
}
