package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleet-route-service/internal/client"
)

type addressSearcher interface {
	Search(ctx context.Context, address string) (*client.GeocodeResult, error)
}

type GeocodeService struct {
	geocoder addressSearcher
}

func NewGeocodeService(geocoder addressSearcher) *GeocodeService {
	return &GeocodeService{geocoder: geocoder}
}

// Geocode resolves a free-text address to coordinates and a canonical name.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (*client.GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", ErrInvalidInput)
	}

	result, err := s.geocoder.Search(ctx, address)
	if err != nil {
		if errors.Is(err, client.ErrNoMatch) {
			return nil, fmt.Errorf("%w: no match for address", ErrNotFound)
		}
		return nil, fmt.Errorf("search address: %w", err)
	}

	return result, nil
}
