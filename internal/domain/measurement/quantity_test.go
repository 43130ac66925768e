package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input string
		want  Quantity
		ok    bool
	}{
		{"2", Quantity{Low: 2, High: 2}, true},
		{"0.5", Quantity{Low: 0.5, High: 0.5}, true},
		{".75", Quantity{Low: 0.75, High: 0.75}, true},
		{"3/4", Quantity{Low: 0.75, High: 0.75}, true},
		{"2 1/4", Quantity{Low: 2.25, High: 2.25}, true},
		{"¾", Quantity{Low: 0.75, High: 0.75}, true},
		{"2 ½", Quantity{Low: 2.5, High: 2.5}, true},
		{"1-2", Quantity{Low: 1, High: 2, IsRange: true, Separator: "-"}, true},
		{"1 — 2", Quantity{Low: 1, High: 2, IsRange: true, Separator: " — "}, true},
		{"1/2 to 1", Quantity{Low: 0.5, High: 1, IsRange: true, Separator: " to "}, true},
		{"", Quantity{}, false},
		{"some", Quantity{}, false},
		{"1/0", Quantity{}, false},
		{"1-many", Quantity{}, false},
		{"-5", Quantity{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseQuantity(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "240", FormatNumber(240))
	assert.Equal(t, "2.5", FormatNumber(2.5))
	assert.Equal(t, "0.45", FormatNumber(0.45))
	assert.Equal(t, "0", FormatNumber(-0.0001))
	assert.Equal(t, "1.1", FormatNumber(1.10))
}

func TestCanonicalUnit(t *testing.T) {
	assert.Equal(t, "fl oz", canonicalUnit(" Fl.  Oz. "))
	assert.True(t, DefaultTable.IsMetric("Grams"))
	assert.False(t, DefaultTable.IsMetric("cup"))

	conv, ok := DefaultTable.Lookup("Tablespoons")
	assert.True(t, ok)
	assert.Equal(t, UnitMilliliter, conv.To)
}
