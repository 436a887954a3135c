package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientList_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{"array of strings", `["salt", "pepper"]`, []string{"salt", "pepper"}},
		{"array of objects", `[{"name":"flour","amount":"2","unit":"cups"}]`, []string{"2 cups flour"}},
		{"numeric amount", `[{"name":"eggs","amount":3}]`, []string{"3 eggs"}},
		{"mixed", `["salt", {"name":"oil","amount":"1","unit":"tbsp"}]`, []string{"salt", "1 tbsp oil"}},
		{"string holding json array", `"[\"a\", \"b\"]"`, []string{"a", "b"}},
		{"python style list", `"['basil', 'garlic', 'pine nuts']"`, []string{"basil", "garlic", "pine nuts"}},
		{"comma separated", `"rice, beans"`, []string{"rice", "beans"}},
		{"empty string", `""`, []string{}},
		{"drops empty entries", `["", "salt", {"name":""}]`, []string{"salt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l IngredientList
			require.NoError(t, json.Unmarshal([]byte(tt.json), &l))
			assert.Equal(t, tt.want, l.Strings())
		})
	}
}

func TestIngredient_MarshalKeepsVariant(t *testing.T) {
	l := IngredientList{RawIngredient("salt"), StructuredIngredient("flour", "2", "cups")}

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `["salt", {"name":"flour","amount":"2","unit":"cups"}]`, string(data))

	var back IngredientList
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, l, back)
}

func TestParseIngredientLine(t *testing.T) {
	tests := []struct {
		line string
		want Ingredient
	}{
		{"2 cups flour", StructuredIngredient("flour", "2", "cups")},
		{"1/2 tsp salt", StructuredIngredient("salt", "1/2", "tsp")},
		{"3 eggs", StructuredIngredient("eggs", "3", "")},
		{"½ cup sugar", StructuredIngredient("sugar", "½", "cup")},
		{"Salt to taste", RawIngredient("Salt to taste")},
		{"  basil  ", RawIngredient("basil")},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIngredientLine(tt.line))
		})
	}
}

func TestStepList_Unmarshal(t *testing.T) {
	var fromString StepList
	require.NoError(t, json.Unmarshal([]byte(`"Mix\n  Bake  \n"`), &fromString))
	assert.Equal(t, StepList{"Mix", "Bake"}, fromString)

	var fromArray StepList
	require.NoError(t, json.Unmarshal([]byte(`["Mix", " ", "Bake"]`), &fromArray))
	assert.Equal(t, StepList{"Mix", "Bake"}, fromArray)
}
