package recipe

// Macros holds per-serving nutrition figures. Zero means unknown.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Validate rejects negative values
func (m Macros) Validate() error {
	if m.Calories < 0 || m.Protein < 0 || m.Carbs < 0 || m.Fat < 0 {
		return ErrInvalidMacros
	}
	return nil
}

// IsZero reports whether no macro is known
func (m Macros) IsZero() bool {
	return m == Macros{}
}
