package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mealpress/mealpress/utils"
)

// Meal is the subset of a TheMealDB record the search page renders.
type Meal struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	Category     string `json:"strCategory"`
	Area         string `json:"strArea"`
	Instructions string `json:"strInstructions"`
	Thumb        string `json:"strMealThumb"`
	Source       string `json:"strSource"`
}

type mealSearchResponse struct {
	// The upstream returns {"meals": null} when nothing matches, so the
	// field must stay a pointer-ish nil-able slice.
	Meals []Meal `json:"meals"`
}

// MealClient proxies recipe searches to TheMealDB.
type MealClient struct {
	baseURL string
	client  *http.Client
}

// NewMealClient builds a client with a bounded request timeout.
func NewMealClient(baseURL string, timeout time.Duration) *MealClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MealClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Search looks up meals by name and returns the first match. An empty
// upstream result is (nil, false, nil) — a normal outcome, distinct from
// transport or decode errors.
func (c *MealClient) Search(ctx context.Context, name string) (*Meal, bool, error) {
	cacheKey := "cache:meal:search:" + name
	var cached mealSearchResponse
	if utils.CacheGetJSON(cacheKey, &cached) {
		if len(cached.Meals) == 0 {
			return nil, false, nil
		}
		return &cached.Meals[0], true, nil
	}

	endpoint := fmt.Sprintf("%s/search.php?s=%s", c.baseURL, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("meal search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("meal search upstream status %d", resp.StatusCode)
	}

	var parsed mealSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, false, fmt.Errorf("meal search decode failed: %w", err)
	}

	utils.CacheSetJSON(cacheKey, parsed, time.Hour)

	if len(parsed.Meals) == 0 {
		return nil, false, nil
	}
	return &parsed.Meals[0], true, nil
}
