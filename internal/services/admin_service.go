package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/baharkarakas/store-ratings/internal/models"
	repo "github.com/baharkarakas/store-ratings/internal/repository"
	"github.com/baharkarakas/store-ratings/internal/validate"
)

type AdminService struct {
	r repo.Repositories
}

func NewAdminService(r repo.Repositories) *AdminService { return &AdminService{r: r} }

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID int64
}

// UserQuery and StoreQuery carry raw query-string values; sort fields are
// resolved against the allow-lists in models before reaching storage.
type UserQuery struct {
	Name, Email, Address, Role string
	SortBy, Order              string
}

type StoreQuery struct {
	Name, Email, Address string
	SortBy, Order        string
}

// CreateUser admits names of 20-60 characters, unlike signup.
func (s *AdminService) CreateUser(ctx context.Context, in CreateUserInput) (int64, error) {
	if err := validate.Collect(
		validate.Length("name", in.Name, adminNameMin, nameMax),
		validate.MaxLength("address", in.Address, addressMax),
		validate.Email("email", in.Email),
		validate.Password("password", in.Password),
		validate.OneOf("role", in.Role, string(models.RoleAdmin), string(models.RoleUser), string(models.RoleStoreOwner)),
	); err != nil {
		return 0, err
	}
	return createUser(ctx, s.r.Users, models.User{
		Name: in.Name, Email: in.Email, Address: in.Address, Role: models.Role(in.Role),
	}, in.Password)
}

func (s *AdminService) CreateStore(ctx context.Context, in CreateStoreInput) (int64, error) {
	if err := validate.Collect(
		validate.Length("name", in.Name, adminNameMin, nameMax),
		validate.MaxLength("address", in.Address, addressMax),
		validate.Email("email", in.Email),
		validate.MinInt("owner_id", in.OwnerID, 1),
	); err != nil {
		return 0, err
	}
	id, err := s.r.Stores.Create(ctx, models.Store{
		Name: in.Name, Email: in.Email, Address: in.Address, OwnerID: in.OwnerID,
	})
	if err != nil {
		return 0, storageErr("create store", err)
	}
	return id, nil
}

// Dashboard runs the three counts concurrently.
func (s *AdminService) Dashboard(ctx context.Context) (models.AdminDashboard, error) {
	var d models.AdminDashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.UserCount, err = s.r.Users.Count(gctx); return })
	g.Go(func() (err error) { d.StoreCount, err = s.r.Stores.Count(gctx); return })
	g.Go(func() (err error) { d.RatingCount, err = s.r.Ratings.Count(gctx); return })
	if err := g.Wait(); err != nil {
		return models.AdminDashboard{}, storageErr("dashboard", err)
	}
	return d, nil
}

func (s *AdminService) ListUsers(ctx context.Context, q UserQuery) ([]models.User, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	users, err := s.r.Users.List(ctx, f)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

func (s *AdminService) ListStores(ctx context.Context, q StoreQuery) ([]models.StoreWithRating, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	stores, err := s.r.Stores.List(ctx, f)
	if err != nil {
		return nil, storageErr("list stores", err)
	}
	return stores, nil
}

func (s *AdminService) UserDetail(ctx context.Context, id int64) (models.UserDetail, error) {
	d, err := s.r.Users.Detail(ctx, id)
	if err != nil {
		return models.UserDetail{}, storageErr("user detail", err)
	}
	return d, nil
}

func (q UserQuery) filter() (models.UserFilter, error) {
	sortBy, err1 := models.ParseUserSortField(q.SortBy)
	order, err2 := models.ParseSortOrder(q.Order)
	if err := sortErrs(err1, err2); err != nil {
		return models.UserFilter{}, err
	}
	return models.UserFilter{
		Name: q.Name, Email: q.Email, Address: q.Address, Role: q.Role,
		SortBy: sortBy, Order: order,
	}, nil
}

func (q StoreQuery) filter() (models.StoreFilter, error) {
	sortBy, err1 := models.ParseStoreSortField(q.SortBy)
	order, err2 := models.ParseSortOrder(q.Order)
	if err := sortErrs(err1, err2); err != nil {
		return models.StoreFilter{}, err
	}
	return models.StoreFilter{
		Name: q.Name, Email: q.Email, Address: q.Address,
		SortBy: sortBy, Order: order,
	}, nil
}

func sortErrs(sortErr, orderErr error) error {
	var errs validate.Errs
	if sortErr != nil {
		errs = append(errs, validate.ErrField{Field: "sortBy", Msg: sortErr.Error()})
	}
	if orderErr != nil {
		errs = append(errs, validate.ErrField{Field: "order", Msg: "must be ASC or DESC"})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
