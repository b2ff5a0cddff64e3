package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawIngredient_Normalize(t *testing.T) {
	amount := func(s string) *IngredientAmount {
		a := IngredientAmount(s)
		return &a
	}

	tests := []struct {
		name string
		raw  RawIngredient
		want GroceryItem
	}{
		{
			name: "name with numeric amount",
			raw:  RawIngredient{Name: "Flour", Amount: amount("2"), Unit: "cup"},
			want: GroceryItem{ID: "x", Name: "Flour", Amount: "2", Unit: "cup", Aisle: "Other"},
		},
		{
			name: "original only",
			raw:  RawIngredient{Original: "a pinch of salt"},
			want: GroceryItem{ID: "x", Name: "a pinch of salt", Amount: "1", Unit: "", Aisle: "Other"},
		},
		{
			name: "nameClean wins",
			raw:  RawIngredient{NameClean: "egg", Name: "eggs, beaten", Original: "2 eggs, beaten", Aisle: "Dairy"},
			want: GroceryItem{ID: "x", Name: "egg", Amount: "1", Aisle: "Dairy"},
		},
		{
			name: "nothing set",
			raw:  RawIngredient{},
			want: GroceryItem{ID: "x", Name: "Unknown ingredient", Amount: "1", Aisle: "Other"},
		},
		{
			name: "empty amount string",
			raw:  RawIngredient{Name: "Milk", Amount: amount("")},
			want: GroceryItem{ID: "x", Name: "Milk", Amount: "1", Aisle: "Other"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.raw.Normalize("x"))
		})
	}
}

func TestRawIngredient_UnmarshalAmount(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		var raw RawIngredient
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Flour","amount":2,"unit":"cup"}`), &raw))
		item := raw.Normalize("id-1")
		assert.Equal(t, "2", item.Amount)
		assert.Equal(t, "cup", item.Unit)
		assert.False(t, item.Checked)
	})

	t.Run("fraction", func(t *testing.T) {
		var raw RawIngredient
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Butter","amount":0.5}`), &raw))
		assert.Equal(t, "0.5", raw.Normalize("id").Amount)
	})

	t.Run("string", func(t *testing.T) {
		var raw RawIngredient
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Sugar","amount":"1/2"}`), &raw))
		assert.Equal(t, "1/2", raw.Normalize("id").Amount)
	})

	t.Run("null", func(t *testing.T) {
		var raw RawIngredient
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Sugar","amount":null}`), &raw))
		assert.Equal(t, "1", raw.Normalize("id").Amount)
	})

	t.Run("invalid", func(t *testing.T) {
		var raw RawIngredient
		assert.Error(t, json.Unmarshal([]byte(`{"amount":true}`), &raw))
	})
}
