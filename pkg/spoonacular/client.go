// Package spoonacular, Spoonacular tarif API'sinin ince bir client'ı.
//
// API key sadece query parametresinde gider ve loglara asla düz yazılmaz
// (MaskKey). Upstream'in hata status'u ve mesajı APIError ile taşınır;
// handler bunları olduğu gibi client'a iletir.
package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
)

// APIError, upstream'in 2xx dışı yanıtı.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spoonacular returned status %d: %s", e.Status, e.Message)
}

// Client, Spoonacular HTTP API'si ile konuşur.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
}

// NewClient, baseURL (ör: https://api.spoonacular.com) ve API key ile client oluşturur.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid spoonacular base url %q", baseURL)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("spoonacular api key is required")
	}

	return &Client{
		baseURL: base,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// SearchRecipes, /recipes/complexSearch çağırır. Sonuçlar malzeme listesi ve
// meta bilgileriyle birlikte gelir; ayrıca detay çağrısı gerekmez.
func (c *Client) SearchRecipes(ctx context.Context, opts models.RecipeSearchOptions) (*models.RecipeSearchResponse, error) {
	values := opts.Values()
	values.Set("addRecipeInformation", "true")
	values.Set("fillIngredients", "true")
	values.Set("metaInformation", "true")

	var payload models.RecipeSearchResponse
	if err := c.get(ctx, "/recipes/complexSearch", values, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		payload.Results = []models.RecipeSearchResult{}
	}
	return &payload, nil
}

// GetRecipe, /recipes/{id}/information çağırır (besin bilgisi dahil).
func (c *Client) GetRecipe(ctx context.Context, id int) (*models.RecipeDetails, error) {
	values := url.Values{}
	values.Set("includeNutrition", "true")

	var payload models.RecipeDetails
	if err := c.get(ctx, "/recipes/"+strconv.Itoa(id)+"/information", values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, values url.Values, dest any) error {
	values.Set("apiKey", c.apiKey)

	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + path
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// *url.Error mesajı tam URL'i (key dahil) içerir.
		return fmt.Errorf("%w: spoonacular request failed: %s", pkg.ErrRemoteUnavailable, MaskKey(err.Error(), c.apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	log.Printf("[spoonacular] GET %s → %d (%s)", path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: upstreamMessage(resp.Body, resp.Status)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode spoonacular response: %v", pkg.ErrRemoteUnavailable, err)
	}
	return nil
}

// upstreamMessage, Spoonacular hata gövdesindeki {"message": "..."} alanını okur.
func upstreamMessage(body io.Reader, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err == nil && json.Unmarshal(data, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}

// MaskKey, s içindeki API key'i ilk 4 karakteri dışında yıldızlar.
func MaskKey(s, key string) string {
	if key == "" {
		return s
	}
	masked := "****"
	if len(key) > 4 {
		masked = key[:4] + strings.Repeat("*", len(key)-4)
	}
	return strings.ReplaceAll(s, key, masked)
}

// IsAPIError, err zincirinde bir APIError varsa onu döner.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
