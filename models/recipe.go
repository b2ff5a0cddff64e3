package models

import (
	"fmt"
	"net/url"
	"strconv"
)

// RecipeSearchOptions, tarif aramasında query dışında kabul edilen filtreler.
// Sıfır değerli alanlar upstream'e gönderilmez.
type RecipeSearchOptions struct {
	Query        string
	Number       int
	Offset       int
	Cuisine      string
	Diet         string
	Type         string
	MaxReadyTime int
}

// ParseRecipeSearchOptions, HTTP query string'inden seçenekleri okur.
func ParseRecipeSearchOptions(q url.Values) (RecipeSearchOptions, error) {
	opts := RecipeSearchOptions{
		Query:   q.Get("query"),
		Cuisine: q.Get("cuisine"),
		Diet:    q.Get("diet"),
		Type:    q.Get("type"),
	}
	if opts.Query == "" {
		return opts, fmt.Errorf("query parameter is required")
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"number", &opts.Number},
		{"offset", &opts.Offset},
		{"maxReadyTime", &opts.MaxReadyTime},
	}
	for _, p := range ints {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("%s must be a non-negative integer", p.key)
		}
		*p.dst = n
	}

	return opts, nil
}

// Values, seçenekleri URL query parametrelerine çevirir (apiKey hariç).
func (o RecipeSearchOptions) Values() url.Values {
	v := url.Values{}
	v.Set("query", o.Query)
	if o.Number > 0 {
		v.Set("number", strconv.Itoa(o.Number))
	}
	if o.Offset > 0 {
		v.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.Cuisine != "" {
		v.Set("cuisine", o.Cuisine)
	}
	if o.Diet != "" {
		v.Set("diet", o.Diet)
	}
	if o.Type != "" {
		v.Set("type", o.Type)
	}
	if o.MaxReadyTime > 0 {
		v.Set("maxReadyTime", strconv.Itoa(o.MaxReadyTime))
	}
	return v
}

// CacheKey, aynı aramaları tekilleştirmek için deterministik anahtar.
// url.Values.Encode key'leri sıralar.
func (o RecipeSearchOptions) CacheKey() string {
	return o.Values().Encode()
}

// RecipeSearchResult, arama sonucundaki tek bir tarif.
// ExtendedIngredients doğrudan grocery listesine eklenebilir.
type RecipeSearchResult struct {
	ID                  int             `json:"id"`
	Title               string          `json:"title"`
	Image               string          `json:"image"`
	ImageType           string          `json:"imageType"`
	ReadyInMinutes      int             `json:"readyInMinutes"`
	Servings            int             `json:"servings"`
	SourceURL           string          `json:"sourceUrl"`
	Summary             string          `json:"summary"`
	Cuisines            []string        `json:"cuisines"`
	DishTypes           []string        `json:"dishTypes"`
	Diets               []string        `json:"diets"`
	Occasions           []string        `json:"occasions"`
	ExtendedIngredients []RawIngredient `json:"extendedIngredients"`
}

// RecipeSearchResponse, complexSearch yanıtı.
type RecipeSearchResponse struct {
	Results      []RecipeSearchResult `json:"results"`
	Offset       int                  `json:"offset"`
	Number       int                  `json:"number"`
	TotalResults int                  `json:"totalResults"`
}

// RecipeDetails, tek bir tarifin detay bilgisi.
type RecipeDetails struct {
	RecipeSearchResult
	Instructions       string  `json:"instructions"`
	SourceName         string  `json:"sourceName"`
	CreditsText        string  `json:"creditsText"`
	PreparationMinutes int     `json:"preparationMinutes"`
	CookingMinutes     int     `json:"cookingMinutes"`
	AggregateLikes     int     `json:"aggregateLikes"`
	HealthScore        float64 `json:"healthScore"`
	PricePerServing    float64 `json:"pricePerServing"`
	Cheap              bool    `json:"cheap"`
	GlutenFree         bool    `json:"glutenFree"`
	DairyFree          bool    `json:"dairyFree"`
	VeryHealthy        bool    `json:"veryHealthy"`
	Vegan              bool    `json:"vegan"`
	Vegetarian         bool    `json:"vegetarian"`
	VeryPopular        bool    `json:"veryPopular"`
}
