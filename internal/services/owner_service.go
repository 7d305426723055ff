package services

import (
	"context"

	"github.com/baharkarakas/store-ratings/internal/models"
	repo "github.com/baharkarakas/store-ratings/internal/repository"
)

type OwnerService struct {
	stores  repo.Stores
	ratings repo.Ratings
}

func NewOwnerService(stores repo.Stores, ratings repo.Ratings) *OwnerService {
	return &OwnerService{stores: stores, ratings: ratings}
}

// Dashboard resolves the caller's store (the first one when several exist)
// and reports its raters and mean rating. The mean is 0 without ratings.
func (s *OwnerService) Dashboard(ctx context.Context, ownerID int64) (models.StoreDashboard, error) {
	store, err := s.stores.FirstByOwner(ctx, ownerID)
	if err != nil {
		return models.StoreDashboard{}, storageErr("owner dashboard", err)
	}
	ratings, err := s.ratings.ListForStore(ctx, store.ID)
	if err != nil {
		return models.StoreDashboard{}, storageErr("owner dashboard", err)
	}
	avg, err := s.ratings.AverageForStore(ctx, store.ID)
	if err != nil {
		return models.StoreDashboard{}, storageErr("owner dashboard", err)
	}
	return models.StoreDashboard{
		StoreID:       store.ID,
		StoreName:     store.Name,
		Ratings:       ratings,
		AverageRating: avg,
	}, nil
}
