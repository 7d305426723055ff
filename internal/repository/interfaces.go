package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/store-ratings/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrReference is returned when a referenced row (owner, store, user) does not exist.
	ErrReference = errors.New("referenced record does not exist")
)

type Users interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	List(ctx context.Context, f models.UserFilter) ([]models.User, error)
	// Detail returns the user together with the average rating of the stores they own.
	Detail(ctx context.Context, id int64) (models.UserDetail, error)
	Count(ctx context.Context) (int64, error)
}

type Stores interface {
	Create(ctx context.Context, s models.Store) (int64, error)
	List(ctx context.Context, f models.StoreFilter) ([]models.StoreWithRating, error)
	// ListForUser attaches the given user's own rating to every store.
	ListForUser(ctx context.Context, userID int64, f models.StoreFilter) ([]models.UserStore, error)
	// FirstByOwner returns the lowest-id store owned by ownerID.
	FirstByOwner(ctx context.Context, ownerID int64) (models.Store, error)
	Count(ctx context.Context) (int64, error)
}

type Ratings interface {
	// Upsert inserts the rating or overwrites the existing value in one statement.
	Upsert(ctx context.Context, r models.Rating) error
	ListForStore(ctx context.Context, storeID int64) ([]models.RaterRating, error)
	// AverageForStore returns 0 when the store has no ratings.
	AverageForStore(ctx context.Context, storeID int64) (float64, error)
	Count(ctx context.Context) (int64, error)
}

type Repositories struct {
	Users   Users
	Stores  Stores
	Ratings Ratings
}
