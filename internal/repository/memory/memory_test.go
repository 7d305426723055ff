package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/store-ratings/internal/models"
	repo "github.com/baharkarakas/store-ratings/internal/repository"
)

func seed(t *testing.T) (repo.Repositories, []int64, []int64) {
	t.Helper()
	ctx := context.Background()
	r := NewRepositories()
	var users, stores []int64
	for _, u := range []models.User{
		{Name: "Charlie Owner", Email: "charlie@x.com", Address: "1 Main St", Role: models.RoleStoreOwner},
		{Name: "alice", Email: "alice@x.com", Address: "2 Side Rd", Role: models.RoleUser},
		{Name: "Bob", Email: "bob@y.org", Address: "3 MAIN Ave", Role: models.RoleAdmin},
	} {
		id, err := r.Users.Create(ctx, u)
		require.NoError(t, err)
		users = append(users, id)
	}
	for _, s := range []models.Store{
		{Name: "Zeta Groceries", Email: "zeta@x.com", Address: "Main Street", OwnerID: users[0]},
		{Name: "Alpha Bakery", Email: "alpha@x.com", Address: "Harbour", OwnerID: users[0]},
	} {
		id, err := r.Stores.Create(ctx, s)
		require.NoError(t, err)
		stores = append(stores, id)
	}
	return r, users, stores
}

func TestUsers_DuplicateEmail(t *testing.T) {
	r, _, _ := seed(t)
	_, err := r.Users.Create(context.Background(), models.User{Name: "x", Email: "alice@x.com"})
	require.ErrorIs(t, err, repo.ErrDuplicate)
}

func TestUsers_ListFilterAndSort(t *testing.T) {
	r, _, _ := seed(t)
	ctx := context.Background()

	all, err := r.Users.List(ctx, models.UserFilter{SortBy: models.UserSortEmail, Order: models.Asc})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []string{"alice@x.com", "bob@y.org", "charlie@x.com"}, emails(all))
	for _, u := range all {
		require.Empty(t, u.PasswordHash)
	}

	main, err := r.Users.List(ctx, models.UserFilter{Address: "main", SortBy: models.UserSortName, Order: models.Desc})
	require.NoError(t, err)
	require.Equal(t, []string{"charlie@x.com", "bob@y.org"}, emails(main))

	owners, err := r.Users.List(ctx, models.UserFilter{Role: "STORE_OWNER", SortBy: models.UserSortName})
	require.NoError(t, err)
	require.Equal(t, []string{"charlie@x.com"}, emails(owners))

	_, err = r.Users.List(ctx, models.UserFilter{SortBy: "password"})
	require.ErrorIs(t, err, models.ErrUnknownSortField)
}

func emails(us []models.User) []string {
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.Email
	}
	return out
}

func TestRatings_UpsertOverwrites(t *testing.T) {
	r, users, stores := seed(t)
	ctx := context.Background()

	require.NoError(t, r.Ratings.Upsert(ctx, models.Rating{UserID: users[1], StoreID: stores[0], Rating: 2}))
	require.NoError(t, r.Ratings.Upsert(ctx, models.Rating{UserID: users[1], StoreID: stores[0], Rating: 5}))

	n, err := r.Ratings.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	rows, err := r.Ratings.ListForStore(ctx, stores[0])
	require.NoError(t, err)
	require.Equal(t, []models.RaterRating{{Name: "alice", Rating: 5}}, rows)

	err = r.Ratings.Upsert(ctx, models.Rating{UserID: users[1], StoreID: 999, Rating: 3})
	require.ErrorIs(t, err, repo.ErrReference)
}

func TestRatings_ConcurrentUpsertKeepsOneRow(t *testing.T) {
	r, users, stores := seed(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 5; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			_ = r.Ratings.Upsert(ctx, models.Rating{UserID: users[1], StoreID: stores[1], Rating: v})
		}(i)
	}
	wg.Wait()

	n, err := r.Ratings.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestStores_AverageAndOwnRating(t *testing.T) {
	r, users, stores := seed(t)
	ctx := context.Background()
	require.NoError(t, r.Ratings.Upsert(ctx, models.Rating{UserID: users[1], StoreID: stores[0], Rating: 4}))
	require.NoError(t, r.Ratings.Upsert(ctx, models.Rating{UserID: users[2], StoreID: stores[0], Rating: 1}))

	list, err := r.Stores.List(ctx, models.StoreFilter{SortBy: models.StoreSortRating, Order: models.Desc})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, stores[0], list[0].ID)
	require.InDelta(t, 2.5, *list[0].Rating, 1e-9)
	require.Nil(t, list[1].Rating) // unrated stores sort last in either direction

	mine, err := r.Stores.ListForUser(ctx, users[1], models.StoreFilter{SortBy: models.StoreSortName, Order: models.Asc})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "Alpha Bakery", mine[0].Name)
	require.Nil(t, mine[0].UserRating)
	require.Nil(t, mine[0].OverallRating)
	require.Equal(t, 4, *mine[1].UserRating)

	avg, err := r.Ratings.AverageForStore(ctx, stores[1])
	require.NoError(t, err)
	require.Zero(t, avg)

	d, err := r.Users.Detail(ctx, users[0])
	require.NoError(t, err)
	require.InDelta(t, 2.5, *d.Rating, 1e-9)

	d, err = r.Users.Detail(ctx, users[1])
	require.NoError(t, err)
	require.Nil(t, d.Rating)

	_, err = r.Users.Detail(ctx, 404)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestStores_FirstByOwnerAndReference(t *testing.T) {
	r, users, stores := seed(t)
	ctx := context.Background()

	s, err := r.Stores.FirstByOwner(ctx, users[0])
	require.NoError(t, err)
	require.Equal(t, stores[0], s.ID)

	_, err = r.Stores.FirstByOwner(ctx, users[1])
	require.ErrorIs(t, err, repo.ErrNotFound)

	_, err = r.Stores.Create(ctx, models.Store{Name: "n", Email: "new@x.com", OwnerID: 777})
	require.ErrorIs(t, err, repo.ErrReference)

	_, err = r.Stores.Create(ctx, models.Store{Name: "n", Email: "zeta@x.com", OwnerID: users[0]})
	require.ErrorIs(t, err, repo.ErrDuplicate)
}
