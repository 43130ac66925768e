package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/go-playground/validator/v10"
)

var (
	validate       = validator.New()
	leadingNumber  = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)
	isoDuration    = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:\d+S)?)?$`)
	hoursAndMinute = regexp.MustCompile(`(?i)(?:(\d+)\s*(?:hours?|hrs|hr|h))?\s*(?:(\d+)\s*(?:minutes?|mins|min|m))?`)
)

// flexString accepts a JSON string, number, bool or null, and objects with a
// "text" field (schema.org HowToStep)
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case '{':
		var obj struct {
			Text flexString `json:"text"`
			Name flexString `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.Text != "" {
			*f = obj.Text
		} else {
			*f = obj.Name
		}
	case '[':
		return fmt.Errorf("unexpected array for text value")
	default:
		// numbers and booleans keep their literal form
		*f = flexString(data)
	}
	return nil
}

func (f flexString) String() string {
	return strings.TrimSpace(string(f))
}

type wireIngredient struct {
	Quantity flexString `json:"quantity"`
	Amount   flexString `json:"amount"`
	Unit     flexString `json:"unit"`
	Name     flexString `json:"name"`
	Notes    flexString `json:"notes"`
}

// UnmarshalJSON also accepts a bare string line such as "2 cups flour",
// which is split into quantity, unit and name
func (w *wireIngredient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var line flexString
		if err := json.Unmarshal(data, &line); err != nil {
			return err
		}
		parsed := measurement.ParseIngredientLine(line.String())
		*w = wireIngredient{
			Quantity: flexString(parsed.Quantity),
			Unit:     flexString(parsed.Unit),
			Name:     flexString(parsed.Name),
			Notes:    flexString(parsed.Notes),
		}
		return nil
	}

	type plain wireIngredient
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*w = wireIngredient(p)
	return nil
}

type wireMacros struct {
	Calories flexString `json:"calories"`
	Protein  flexString `json:"protein"`
	Carbs    flexString `json:"carbs"`
	Fat      flexString `json:"fat"`
}

type wireRecipe struct {
	Name            flexString       `json:"name"`
	Title           flexString       `json:"title"`
	Description     flexString       `json:"description"`
	Servings        flexString       `json:"servings"`
	PrepTimeMinutes flexString       `json:"prepTimeMinutes"`
	CookTimeMinutes flexString       `json:"cookTimeMinutes"`
	Ingredients     []wireIngredient `json:"ingredients"`
	Instructions    []flexString     `json:"instructions"`
	Macros          *wireMacros      `json:"macros"`
	Nutrition       *wireMacros      `json:"nutrition"`
}

// DecodeRecipe pulls the outermost JSON object out of a model response,
// maps it to an ExtractedRecipe and validates it
func DecodeRecipe(response string) (*outbound.ExtractedRecipe, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in model response")
	}

	var wire wireRecipe
	if err := json.Unmarshal([]byte(response[start:end+1]), &wire); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}

	extracted := wire.toExtracted()
	if err := validate.Struct(extracted); err != nil {
		return nil, fmt.Errorf("extracted recipe is incomplete: %w", err)
	}
	return extracted, nil
}

func (w wireRecipe) toExtracted() *outbound.ExtractedRecipe {
	name := w.Name.String()
	if name == "" {
		name = w.Title.String()
	}

	out := &outbound.ExtractedRecipe{
		Name:            name,
		Description:     w.Description.String(),
		Servings:        int(parseLeadingNumber(w.Servings.String())),
		PrepTimeMinutes: parseMinutes(w.PrepTimeMinutes.String()),
		CookTimeMinutes: parseMinutes(w.CookTimeMinutes.String()),
		Ingredients:     make([]measurement.Ingredient, 0, len(w.Ingredients)),
		Instructions:    make([]string, 0, len(w.Instructions)),
	}

	for _, ing := range w.Ingredients {
		qty := ing.Quantity.String()
		if qty == "" {
			qty = ing.Amount.String()
		}
		out.Ingredients = append(out.Ingredients, measurement.Ingredient{
			Quantity: qty,
			Unit:     ing.Unit.String(),
			Name:     ing.Name.String(),
			Notes:    ing.Notes.String(),
		})
	}

	for _, step := range w.Instructions {
		if s := step.String(); s != "" {
			out.Instructions = append(out.Instructions, s)
		}
	}

	macros := w.Macros
	if macros == nil {
		macros = w.Nutrition
	}
	if macros != nil {
		out.Macros = recipe.Macros{
			Calories: parseLeadingNumber(macros.Calories.String()),
			Protein:  parseLeadingNumber(macros.Protein.String()),
			Carbs:    parseLeadingNumber(macros.Carbs.String()),
			Fat:      parseLeadingNumber(macros.Fat.String()),
		}
	}

	return out
}

// parseLeadingNumber reads "4", "4 servings", "350 kcal" or "12.5g"; anything else is 0
func parseLeadingNumber(s string) float64 {
	m := leadingNumber.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}

// parseMinutes reads plain minutes, ISO 8601 durations ("PT1H30M") and
// short forms like "1 hr 15 min"
func parseMinutes(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if m := isoDuration.FindStringSubmatch(strings.ToUpper(s)); m != nil {
		return atoi(m[1])*24*60 + atoi(m[2])*60 + atoi(m[3])
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return int(parseLeadingNumber(s))
	}

	if m := hoursAndMinute.FindStringSubmatch(s); m != nil && (m[1] != "" || m[2] != "") {
		return atoi(m[1])*60 + atoi(m[2])
	}

	return int(parseLeadingNumber(s))
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}
