// README: City experience suggestions via Google Places text search.
package experience

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

const maxSuggestions = 5

// Suggestion is a simplified place result surfaced to the chat UI.
type Suggestion struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float32 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total"`
}

// Service looks up bookable experiences (events, masterclasses, cultural
// encounters) for a city.
type Service struct {
	client *maps.Client
}

// NewService creates a Service with the given API key.
func NewService(apiKey string) (*Service, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &Service{client: client}, nil
}

// Suggest searches for experiences in the city. category is the user's
// experience_details phrasing ("food tour", "masterclasses"); empty means a
// generic things-to-do search. Low-rated results are filtered out.
func (s *Service) Suggest(ctx context.Context, city, category string) ([]Suggestion, error) {
	query := "things to do in " + city
	if category != "" {
		query = fmt.Sprintf("%s in %s", category, city)
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Suggestion
	for _, result := range resp.Results {
		if result.Rating < 4.0 {
			continue
		}
		results = append(results, Suggestion{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			UserRatingsTotal: result.UserRatingsTotal,
		})
		if len(results) == maxSuggestions {
			break
		}
	}
	return results, nil
}
