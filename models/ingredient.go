package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UnknownIngredient, hiçbir isim alanı dolu olmayan malzemeye verilen isim.
const UnknownIngredient = "Unknown ingredient"

// IngredientAmount, JSON'da sayı ("amount": 2) veya string ("amount": "2")
// olarak gelebilen miktar. Tarif API'si sayı döner, eski kayıtlar string taşır.
type IngredientAmount string

// UnmarshalJSON, sayı ve string'i aynı şekilde kabul eder.
// null gelirse pointer alan nil kalır (encoding/json bu method'u çağırmaz).
func (a *IngredientAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = IngredientAmount(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("amount must be a number or string: %w", err)
	}
	*a = IngredientAmount(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// RawIngredient, tarif kaynaklarından gelen gevşek tipli malzeme kaydı.
// Hangi alanların dolu olduğu kaynağa göre değişir; Normalize tek kural noktasıdır.
type RawIngredient struct {
	NameClean string            `json:"nameClean,omitempty"`
	Name      string            `json:"name,omitempty"`
	Original  string            `json:"original,omitempty"`
	Amount    *IngredientAmount `json:"amount,omitempty"`
	Unit      string            `json:"unit,omitempty"`
	Aisle     string            `json:"aisle,omitempty"`
}

// Normalize, kaydı verilen id ile bir GroceryItem'a çevirir.
//
// Alan öncelikleri:
//   - isim: nameClean → name → original → "Unknown ingredient"
//   - miktar: yoksa veya boşsa "1"
//   - birim: yoksa ""
//   - reyon: yoksa "Other"
func (r RawIngredient) Normalize(id string) GroceryItem {
	name := firstNonEmpty(r.NameClean, r.Name, r.Original, UnknownIngredient)

	amount := "1"
	if r.Amount != nil && *r.Amount != "" {
		amount = string(*r.Amount)
	}

	return GroceryItem{
		ID:      id,
		Name:    name,
		Amount:  amount,
		Unit:    r.Unit,
		Checked: false,
		Aisle:   firstNonEmpty(r.Aisle, DefaultAisle),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
