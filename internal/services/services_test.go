package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/store-ratings/internal/auth"
	"github.com/baharkarakas/store-ratings/internal/models"
	repo "github.com/baharkarakas/store-ratings/internal/repository"
	"github.com/baharkarakas/store-ratings/internal/repository/memory"
	"github.com/baharkarakas/store-ratings/internal/validate"
)

func init() { auth.Cost = 4 }

type fixture struct {
	repos  repo.Repositories
	tm     *auth.TokenManager
	auth   *AuthService
	admin  *AdminService
	owner  *OwnerService
	rating *RatingService
}

func newFixture() *fixture {
	r := memory.NewRepositories()
	tm := auth.NewTokenManager("test-secret", "test", time.Hour)
	return &fixture{
		repos:  r,
		tm:     tm,
		auth:   NewAuthService(r.Users, tm),
		admin:  NewAdminService(r),
		owner:  NewOwnerService(r.Stores, r.Ratings),
		rating: NewRatingService(r.Stores, r.Ratings),
	}
}

var alice = SignupInput{Name: "Alice Example", Email: "alice@x.com", Password: "Secret1!", Address: "123 St"}

func TestSignupThenLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id, err := f.auth.Signup(ctx, alice)
	require.NoError(t, err)
	require.Positive(t, id)

	res, err := f.auth.Login(ctx, "alice@x.com", "Secret1!")
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, res.Role)

	ident, err := f.tm.Authorize("Bearer "+res.Token, models.RoleUser)
	require.NoError(t, err)
	require.Equal(t, id, ident.UserID)

	u, err := f.repos.Users.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotEqual(t, "Secret1!", u.PasswordHash)
}

func TestSignup_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cases := map[string]SignupInput{
		"short name":   {Name: "Al", Email: alice.Email, Password: alice.Password},
		"long name":    {Name: strings.Repeat("a", 61), Email: alice.Email, Password: alice.Password},
		"bad email":    {Name: alice.Name, Email: "alice.x.com", Password: alice.Password},
		"weak pass":    {Name: alice.Name, Email: alice.Email, Password: "secret11"},
		"long address": {Name: alice.Name, Email: alice.Email, Password: alice.Password, Address: strings.Repeat("a", 401)},
	}
	for name, in := range cases {
		_, err := f.auth.Signup(ctx, in)
		require.ErrorIs(t, err, ErrValidation, name)
	}
	n, _ := f.repos.Users.Count(ctx)
	require.Zero(t, n)

	// signup accepts a 3 character name
	_, err := f.auth.Signup(ctx, SignupInput{Name: "Ali", Email: "ali@x.com", Password: alice.Password})
	require.NoError(t, err)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.auth.Signup(ctx, alice)
	require.NoError(t, err)
	_, err = f.auth.Signup(ctx, alice)
	require.ErrorIs(t, err, ErrConflict)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.auth.Signup(ctx, alice)
	require.NoError(t, err)

	_, errWrongPass := f.auth.Login(ctx, alice.Email, "Wrong1!!")
	_, errUnknown := f.auth.Login(ctx, "nobody@x.com", alice.Password)
	require.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.Equal(t, errWrongPass.Error(), errUnknown.Error())
}

func TestUpdatePassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.auth.Signup(ctx, alice)
	require.NoError(t, err)

	require.ErrorIs(t, f.auth.UpdatePassword(ctx, alice.Email, alice.Password, "weak"), ErrValidation)
	require.ErrorIs(t, f.auth.UpdatePassword(ctx, "nobody@x.com", alice.Password, "Newpass1!"), ErrNotFound)
	require.ErrorIs(t, f.auth.UpdatePassword(ctx, alice.Email, "Wrong1!!", "Newpass1!"), ErrInvalidCredentials)

	require.NoError(t, f.auth.UpdatePassword(ctx, alice.Email, alice.Password, "Newpass1!"))
	_, err = f.auth.Login(ctx, alice.Email, alice.Password)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, alice.Email, "Newpass1!")
	require.NoError(t, err)
}

func TestAdminCreateUser_NameBoundsDifferFromSignup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.admin.CreateUser(ctx, CreateUserInput{Name: "Alice Example", Email: "a@x.com", Password: "Secret1!", Role: "user"})
	var errs validate.Errs
	require.ErrorAs(t, err, &errs)
	require.Equal(t, "name", errs[0].Field)

	_, err = f.admin.CreateUser(ctx, CreateUserInput{Name: "Alice Example The Second", Email: "a@x.com", Password: "Secret1!", Role: "root"})
	require.ErrorIs(t, err, ErrValidation)

	id, err := f.admin.CreateUser(ctx, CreateUserInput{Name: "Alice Example The Second", Email: "a@x.com", Password: "Secret1!", Role: "store_owner"})
	require.NoError(t, err)
	u, err := f.repos.Users.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, models.RoleStoreOwner, u.Role)
}

// seedStore creates an owner, a store of theirs and a regular user.
func seedStore(t *testing.T, f *fixture) (ownerID, storeID, userID int64) {
	t.Helper()
	ctx := context.Background()
	var err error
	ownerID, err = f.admin.CreateUser(ctx, CreateUserInput{Name: "Owen The Store Owner", Email: "owen@x.com", Password: "Secret1!", Role: "store_owner"})
	require.NoError(t, err)
	storeID, err = f.admin.CreateStore(ctx, CreateStoreInput{Name: "Owen's Fine Groceries", Email: "shop@x.com", Address: "1 Main St", OwnerID: ownerID})
	require.NoError(t, err)
	userID, err = f.auth.Signup(ctx, alice)
	require.NoError(t, err)
	return
}

func TestCreateStore_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ownerID, _, _ := seedStore(t, f)

	_, err := f.admin.CreateStore(ctx, CreateStoreInput{Name: "Too short", Email: "s2@x.com", OwnerID: ownerID})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.admin.CreateStore(ctx, CreateStoreInput{Name: "A Perfectly Fine Store", Email: "s2@x.com", OwnerID: 9999})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.admin.CreateStore(ctx, CreateStoreInput{Name: "A Perfectly Fine Store", Email: "shop@x.com", OwnerID: ownerID})
	require.ErrorIs(t, err, ErrConflict)
}

func TestRatingFlow_OwnerDashboard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ownerID, storeID, userID := seedStore(t, f)

	d, err := f.owner.Dashboard(ctx, ownerID)
	require.NoError(t, err)
	require.Zero(t, d.AverageRating)
	require.Empty(t, d.Ratings)

	require.NoError(t, f.rating.Submit(ctx, userID, storeID, 4))

	d, err = f.owner.Dashboard(ctx, ownerID)
	require.NoError(t, err)
	require.Equal(t, storeID, d.StoreID)
	require.InDelta(t, 4.0, d.AverageRating, 1e-9)
	require.Equal(t, []models.RaterRating{{Name: "Alice Example", Rating: 4}}, d.Ratings)

	_, err = f.owner.Dashboard(ctx, userID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitRating_RejectsOutOfRange(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, storeID, userID := seedStore(t, f)
	require.NoError(t, f.rating.Submit(ctx, userID, storeID, 3))

	for _, v := range []int{0, 6, -1, 100} {
		require.ErrorIs(t, f.rating.Submit(ctx, userID, storeID, v), ErrValidation, v)
	}
	stores, err := f.rating.ListStores(ctx, userID, StoreQuery{})
	require.NoError(t, err)
	require.Equal(t, 3, *stores[0].UserRating)
}

func TestSubmitRating_Resubmission(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, storeID, userID := seedStore(t, f)

	require.NoError(t, f.rating.Submit(ctx, userID, storeID, 2))
	require.NoError(t, f.rating.Submit(ctx, userID, storeID, 5))

	dash, err := f.admin.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, models.AdminDashboard{UserCount: 2, StoreCount: 1, RatingCount: 1}, dash)

	stores, err := f.rating.ListStores(ctx, userID, StoreQuery{})
	require.NoError(t, err)
	require.Equal(t, 5, *stores[0].UserRating)
	require.InDelta(t, 5.0, *stores[0].OverallRating, 1e-9)

	require.ErrorIs(t, f.rating.Submit(ctx, userID, 12345, 3), ErrValidation)
}

func TestListing_SortValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedStore(t, f)

	_, err := f.admin.ListUsers(ctx, UserQuery{SortBy: "password"})
	require.ErrorIs(t, err, ErrValidation)
	_, err = f.admin.ListStores(ctx, StoreQuery{Order: "sideways"})
	require.ErrorIs(t, err, ErrValidation)
	_, err = f.rating.ListStores(ctx, 1, StoreQuery{SortBy: "owner_id"})
	require.ErrorIs(t, err, ErrValidation)

	users, err := f.admin.ListUsers(ctx, UserQuery{SortBy: "name", Order: "desc"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "Owen The Store Owner", users[0].Name)

	users, err = f.admin.ListUsers(ctx, UserQuery{Email: "ALICE"})
	require.NoError(t, err)
	require.Len(t, users, 1)

	stores, err := f.admin.ListStores(ctx, StoreQuery{})
	require.NoError(t, err)
	require.Len(t, stores, 1)
	require.Nil(t, stores[0].Rating)
}

func TestUserDetail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ownerID, storeID, userID := seedStore(t, f)
	require.NoError(t, f.rating.Submit(ctx, userID, storeID, 3))

	d, err := f.admin.UserDetail(ctx, ownerID)
	require.NoError(t, err)
	require.InDelta(t, 3.0, *d.Rating, 1e-9)

	d, err = f.admin.UserDetail(ctx, userID)
	require.NoError(t, err)
	require.Nil(t, d.Rating)

	_, err = f.admin.UserDetail(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStorageErr(t *testing.T) {
	require.NoError(t, storageErr("op", nil))
	require.ErrorIs(t, storageErr("op", repo.ErrNotFound), ErrNotFound)
	require.ErrorIs(t, storageErr("op", repo.ErrDuplicate), ErrConflict)
	require.ErrorIs(t, storageErr("op", repo.ErrReference), ErrValidation)

	boom := errors.New("connection reset")
	err := storageErr("op", boom)
	require.ErrorIs(t, err, boom)
	require.False(t, errors.Is(err, ErrValidation))
}
