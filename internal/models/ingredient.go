package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// IngredientKind tags the variant held by an Ingredient.
type IngredientKind int

const (
	IngredientRaw IngredientKind = iota
	IngredientStructured
)

// Ingredient is either raw text ("2 eggs") or a structured
// name/amount/unit triple.
type Ingredient struct {
	Kind   IngredientKind
	Text   string // IngredientRaw
	Name   string // IngredientStructured
	Amount string
	Unit   string
}

// RawIngredient builds a raw-text ingredient.
func RawIngredient(text string) Ingredient {
	return Ingredient{Kind: IngredientRaw, Text: text}
}

// StructuredIngredient builds a structured ingredient.
func StructuredIngredient(name, amount, unit string) Ingredient {
	return Ingredient{Kind: IngredientStructured, Name: name, Amount: amount, Unit: unit}
}

// String renders the ingredient as a single line, "amount unit name" for
// structured values.
func (i Ingredient) String() string {
	if i.Kind == IngredientRaw {
		return i.Text
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{i.Amount, i.Unit, i.Name} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// IsEmpty reports whether the ingredient renders to nothing.
func (i Ingredient) IsEmpty() bool {
	return strings.TrimSpace(i.String()) == ""
}

type structuredWire struct {
	Name   string          `json:"name"`
	Amount json.RawMessage `json:"amount,omitempty"`
	Unit   string          `json:"unit,omitempty"`
}

// MarshalJSON writes raw ingredients as strings and structured ones as objects.
func (i Ingredient) MarshalJSON() ([]byte, error) {
	if i.Kind == IngredientRaw {
		return json.Marshal(i.Text)
	}
	return json.Marshal(struct {
		Name   string `json:"name"`
		Amount string `json:"amount,omitempty"`
		Unit   string `json:"unit,omitempty"`
	}{i.Name, i.Amount, i.Unit})
}

// UnmarshalJSON accepts a string, a number or a {name, amount, unit} object.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*i = RawIngredient("")
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = RawIngredient(strings.TrimSpace(s))
	case '{':
		var w structuredWire
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		*i = StructuredIngredient(strings.TrimSpace(w.Name), rawScalar(w.Amount), strings.TrimSpace(w.Unit))
	default:
		*i = RawIngredient(rawScalar(data))
	}
	return nil
}

// rawScalar renders a JSON string or number as text.
func rawScalar(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(raw))
}

// IngredientList normalizes every accepted ingredient encoding on ingestion.
type IngredientList []Ingredient

// UnmarshalJSON accepts a JSON array, a string holding a JSON array, or a
// bracketed/comma-separated string such as "['a', 'b']".
func (l *IngredientList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*l = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = ParseIngredientText(s)
		return nil
	}

	var items []Ingredient
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = compactIngredients(items)
	return nil
}

// Strings renders every ingredient as a line.
func (l IngredientList) Strings() []string {
	out := make([]string, 0, len(l))
	for _, ing := range l {
		out = append(out, ing.String())
	}
	return out
}

// ParseIngredientText parses a string that either holds a JSON array or a
// bracketed, comma-separated list.
func ParseIngredientText(s string) IngredientList {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") {
		var items []Ingredient
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			return compactIngredients(items)
		}
	}

	cleaned := strings.NewReplacer("[", "", "]", "", "'", "").Replace(s)
	var out IngredientList
	for _, part := range strings.Split(cleaned, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part != "" {
			out = append(out, RawIngredient(part))
		}
	}
	return out
}

func compactIngredients(items []Ingredient) IngredientList {
	out := make(IngredientList, 0, len(items))
	for _, it := range items {
		if !it.IsEmpty() {
			out = append(out, it)
		}
	}
	return out
}

// Units recognized by ParseIngredientLine.
var knownUnits = map[string]bool{
	"tsp": true, "teaspoon": true, "teaspoons": true,
	"tbsp": true, "tablespoon": true, "tablespoons": true,
	"cup": true, "cups": true,
	"oz": true, "ounce": true, "ounces": true,
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"g": true, "gram": true, "grams": true, "kg": true,
	"ml": true, "l": true, "liter": true, "liters": true,
	"pinch": true, "dash": true, "clove": true, "cloves": true,
	"can": true, "cans": true, "slice": true, "slices": true,
}

// ParseIngredientLine parses one line of user input. "2 cups flour"
// becomes a structured ingredient; anything not starting with a quantity
// is kept as raw text.
func ParseIngredientLine(line string) Ingredient {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) < 2 || !isQuantity(fields[0]) {
		return RawIngredient(line)
	}

	amount := fields[0]
	rest := fields[1:]
	unit := ""
	if len(rest) > 1 && knownUnits[strings.ToLower(strings.TrimSuffix(rest[0], "."))] {
		unit = rest[0]
		rest = rest[1:]
	}
	return StructuredIngredient(strings.Join(rest, " "), amount, unit)
}

func isQuantity(tok string) bool {
	if _, err := strconv.ParseFloat(tok, 64); err == nil {
		return true
	}
	if num, den, ok := strings.Cut(tok, "/"); ok {
		_, errN := strconv.Atoi(num)
		_, errD := strconv.Atoi(den)
		return errN == nil && errD == nil
	}
	for _, r := range tok {
		if !unicode.In(r, unicode.N) {
			return false
		}
	}
	return tok != ""
}

// StepList holds recipe directions, one step per entry.
type StepList []string

// UnmarshalJSON accepts an array of steps or a newline-separated string.
func (s *StepList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = nil
		return nil
	}

	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = SplitSteps(text)
		return nil
	}

	var steps []string
	if err := json.Unmarshal(data, &steps); err != nil {
		return err
	}
	*s = compactSteps(steps)
	return nil
}

// SplitSteps splits newline-separated directions.
func SplitSteps(text string) StepList {
	return compactSteps(strings.Split(text, "\n"))
}

func compactSteps(steps []string) StepList {
	out := make(StepList, 0, len(steps))
	for _, step := range steps {
		if step = strings.TrimSpace(step); step != "" {
			out = append(out, step)
		}
	}
	return out
}
