package measurement

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	rangePattern  = regexp.MustCompile(`^(.+?)(\s*[-–—]\s*|\s+to\s+)(.+)$`)
	numberPattern = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)
	// "1 1/2", "1/2"
	fractionPattern = regexp.MustCompile(`^(?:(\d+)\s+)?(\d+)\s*/\s*(\d+)$`)
)

var unicodeFractions = map[rune]float64{
	'¼': 0.25,
	'½': 0.5,
	'¾': 0.75,
	'⅓': 1.0 / 3,
	'⅔': 2.0 / 3,
	'⅕': 0.2,
	'⅖': 0.4,
	'⅗': 0.6,
	'⅘': 0.8,
	'⅙': 1.0 / 6,
	'⅚': 5.0 / 6,
	'⅛': 0.125,
	'⅜': 0.375,
	'⅝': 0.625,
	'⅞': 0.875,
}

// Quantity is a parsed ingredient amount. A range keeps the separator text so
// it can be rendered back the way the source wrote it.
type Quantity struct {
	Low       float64
	High      float64
	IsRange   bool
	Separator string
}

// ParseQuantity parses a free-text amount. It reports false when the text is not
// a number, a fraction or a range of those.
func ParseQuantity(text string) (Quantity, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Quantity{}, false
	}

	if v, ok := parseNumber(s); ok {
		return Quantity{Low: v, High: v}, true
	}

	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return Quantity{}, false
	}
	low, ok := parseNumber(m[1])
	if !ok {
		return Quantity{}, false
	}
	high, ok := parseNumber(m[3])
	if !ok {
		return Quantity{}, false
	}

	return Quantity{Low: low, High: high, IsRange: true, Separator: m[2]}, true
}

// Map returns a copy of the quantity with fn applied to every endpoint
func (q Quantity) Map(fn func(float64) float64) Quantity {
	out := q
	out.Low = fn(q.Low)
	out.High = fn(q.High)
	return out
}

// String renders the quantity with trailing zeros trimmed
func (q Quantity) String() string {
	if q.IsRange {
		return FormatNumber(q.Low) + q.Separator + FormatNumber(q.High)
	}
	return FormatNumber(q.Low)
}

// FormatNumber renders a value with at most two decimals and no trailing zeros
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func parseNumber(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}

	if numberPattern.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	}

	if m := fractionPattern.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den == 0 {
			return 0, false
		}
		whole := 0.0
		if m[1] != "" {
			whole, _ = strconv.ParseFloat(m[1], 64)
		}
		return whole + num/den, true
	}

	// "½", "1½", "1 ½"
	runes := []rune(s)
	last := runes[len(runes)-1]
	frac, ok := unicodeFractions[last]
	if !ok {
		return 0, false
	}
	head := strings.TrimSpace(string(runes[:len(runes)-1]))
	if head == "" {
		return frac, true
	}
	if !numberPattern.MatchString(head) || strings.Contains(head, ".") {
		return 0, false
	}
	whole, err := strconv.ParseFloat(head, 64)
	if err != nil {
		return 0, false
	}
	return whole + frac, true
}
