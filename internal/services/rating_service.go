package services

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/baharkarakas/store-ratings/internal/metrics"
	"github.com/baharkarakas/store-ratings/internal/models"
	repo "github.com/baharkarakas/store-ratings/internal/repository"
	"github.com/baharkarakas/store-ratings/internal/validate"
)

type RatingService struct {
	stores  repo.Stores
	ratings repo.Ratings
}

func NewRatingService(stores repo.Stores, ratings repo.Ratings) *RatingService {
	return &RatingService{stores: stores, ratings: ratings}
}

// ListStores returns the stores matching q with the overall average and the
// caller's own rating.
func (s *RatingService) ListStores(ctx context.Context, userID int64, q StoreQuery) ([]models.UserStore, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.ListForUser(ctx, userID, f)
	if err != nil {
		return nil, storageErr("list user stores", err)
	}
	return stores, nil
}

// Submit records the rating, replacing any earlier one from the same user.
func (s *RatingService) Submit(ctx context.Context, userID, storeID int64, rating int) error {
	if err := validate.Collect(
		validate.MinInt("store_id", storeID, 1),
		validate.IntRange("rating", int64(rating), models.MinRating, models.MaxRating),
	); err != nil {
		return err
	}
	err := s.ratings.Upsert(ctx, models.Rating{UserID: userID, StoreID: storeID, Rating: rating})
	if err != nil {
		return storageErr("submit rating", err)
	}
	metrics.RatingsSubmittedTotal.WithLabelValues(strconv.Itoa(rating)).Inc()
	slog.DebugContext(ctx, "rating submitted", "user_id", userID, "store_id", storeID, "rating", rating)
	return nil
}
