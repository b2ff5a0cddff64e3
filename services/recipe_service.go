package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/akinalp/grocery-planner/models"
	"github.com/akinalp/grocery-planner/pkg"
	"github.com/akinalp/grocery-planner/pkg/cache"
)

// RecipeAPI, upstream tarif kaynağı. *spoonacular.Client bunu karşılar.
type RecipeAPI interface {
	SearchRecipes(ctx context.Context, opts models.RecipeSearchOptions) (*models.RecipeSearchResponse, error)
	GetRecipe(ctx context.Context, id int) (*models.RecipeDetails, error)
}

// RecipeService, tarif arama ve detay proxy'si.
type RecipeService interface {
	Search(ctx context.Context, opts models.RecipeSearchOptions) (*models.RecipeSearchResponse, error)
	Get(ctx context.Context, id string) (*models.RecipeDetails, error)
	// Close, cache temizleme goroutine'lerini durdurur.
	Close()
}

// recipeService, aynı sorgular için upstream'e tek istek atar:
//   - TTLCache: yakın zamanda yapılmış aramalar bellekten döner
//   - singleflight: aynı anda gelen özdeş istekler tek upstream çağrısında birleşir
type recipeService struct {
	api     RecipeAPI
	search  *cache.TTLCache[string, *models.RecipeSearchResponse]
	details *cache.TTLCache[int, *models.RecipeDetails]
	group   singleflight.Group
}

// NewRecipeService, constructor. ttl <= 0 ise cache pratikte devre dışıdır.
func NewRecipeService(api RecipeAPI, ttl time.Duration) RecipeService {
	cleanup := ttl
	if cleanup <= 0 || cleanup > time.Minute {
		cleanup = time.Minute
	}

	return &recipeService{
		api:     api,
		search:  cache.New[string, *models.RecipeSearchResponse](ttl, cleanup),
		details: cache.New[int, *models.RecipeDetails](ttl, cleanup),
	}
}

func (s *recipeService) Search(ctx context.Context, opts models.RecipeSearchOptions) (*models.RecipeSearchResponse, error) {
	if opts.Query == "" {
		return nil, fmt.Errorf("%w: query parameter is required", pkg.ErrBadRequest)
	}

	key := opts.CacheKey()
	if cached, ok := s.search.Get(key); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do("search:"+key, func() (any, error) {
		resp, err := s.api.SearchRecipes(ctx, opts)
		if err != nil {
			return nil, err
		}
		s.search.Set(key, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.RecipeSearchResponse), nil
}

func (s *recipeService) Get(ctx context.Context, rawID string) (*models.RecipeDetails, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: invalid recipe ID", pkg.ErrBadRequest)
	}

	if cached, ok := s.details.Get(id); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do("recipe:"+rawID, func() (any, error) {
		recipe, err := s.api.GetRecipe(ctx, id)
		if err != nil {
			return nil, err
		}
		s.details.Set(id, recipe)
		return recipe, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.RecipeDetails), nil
}

func (s *recipeService) Close() {
	s.search.Close()
	s.details.Close()
}
