// Package memory keeps users, stores and ratings in process memory behind the
// same interfaces as the postgres repositories. Filtering and ordering follow
// the postgres queries: case-insensitive substring filters, NULL averages last,
// ties broken by id.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/baharkarakas/store-ratings/internal/models"
	repo "github.com/baharkarakas/store-ratings/internal/repository"
)

type ratingKey struct{ userID, storeID int64 }

type db struct {
	mu          sync.RWMutex
	users       map[int64]models.User
	emails      map[string]int64
	stores      map[int64]models.Store
	storeEmails map[string]int64
	ratings     map[ratingKey]int
	nextUser    int64
	nextStore   int64
}

func NewRepositories() repo.Repositories {
	d := &db{
		users:       map[int64]models.User{},
		emails:      map[string]int64{},
		stores:      map[int64]models.Store{},
		storeEmails: map[string]int64{},
		ratings:     map[ratingKey]int{},
	}
	return repo.Repositories{
		Users:   &usersRepo{d},
		Stores:  &storesRepo{d},
		Ratings: &ratingsRepo{d},
	}
}

func containsFold(field, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(field), strings.ToLower(sub))
}

// avgLocked returns nil when the store has no ratings. Caller holds d.mu.
func (d *db) avgLocked(storeIDs ...int64) *float64 {
	var sum, n int
	for k, v := range d.ratings {
		if slices.Contains(storeIDs, k.storeID) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := float64(sum) / float64(n)
	return &avg
}

func direction(o models.SortOrder, c int) int {
	if o == models.Desc {
		return -c
	}
	return c
}

// compareNullable orders nil after every value regardless of direction.
func compareNullable(a, b *float64, o models.SortOrder) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return direction(o, cmp.Compare(*a, *b))
}

// ---------- users ----------

type usersRepo struct{ d *db }

func (r *usersRepo) Create(_ context.Context, u models.User) (int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.emails[u.Email]; ok {
		return 0, repo.ErrDuplicate
	}
	r.d.nextUser++
	u.ID = r.d.nextUser
	r.d.users[u.ID] = u
	r.d.emails[u.Email] = u.ID
	return u.ID, nil
}

func (r *usersRepo) GetByID(_ context.Context, id int64) (models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	u, ok := r.d.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	r.d.mu.RLock()
	id, ok := r.d.emails[email]
	r.d.mu.RUnlock()
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *usersRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	u, ok := r.d.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = hash
	r.d.users[id] = u
	return nil
}

func (r *usersRepo) List(_ context.Context, f models.UserFilter) ([]models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []models.User{}
	for _, u := range r.d.users {
		if !containsFold(u.Name, f.Name) || !containsFold(u.Email, f.Email) || !containsFold(u.Address, f.Address) {
			continue
		}
		if f.Role != "" && !strings.EqualFold(string(u.Role), f.Role) {
			continue
		}
		u.PasswordHash = ""
		out = append(out, u)
	}
	key, err := userSortKey(f.SortBy)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b models.User) int {
		if c := direction(f.Order, key(a, b)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func userSortKey(f models.UserSortField) (func(a, b models.User) int, error) {
	switch f {
	case models.UserSortID:
		return func(a, b models.User) int { return cmp.Compare(a.ID, b.ID) }, nil
	case models.UserSortName:
		return func(a, b models.User) int { return cmp.Compare(a.Name, b.Name) }, nil
	case models.UserSortEmail:
		return func(a, b models.User) int { return cmp.Compare(a.Email, b.Email) }, nil
	case models.UserSortAddress:
		return func(a, b models.User) int { return cmp.Compare(a.Address, b.Address) }, nil
	case models.UserSortRole:
		return func(a, b models.User) int { return cmp.Compare(a.Role, b.Role) }, nil
	}
	return nil, models.ErrUnknownSortField
}

func (r *usersRepo) Detail(_ context.Context, id int64) (models.UserDetail, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	u, ok := r.d.users[id]
	if !ok {
		return models.UserDetail{}, repo.ErrNotFound
	}
	var owned []int64
	for _, s := range r.d.stores {
		if s.OwnerID == id {
			owned = append(owned, s.ID)
		}
	}
	u.PasswordHash = ""
	return models.UserDetail{User: u, Rating: r.d.avgLocked(owned...)}, nil
}

func (r *usersRepo) Count(context.Context) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return int64(len(r.d.users)), nil
}

// ---------- stores ----------

type storesRepo struct{ d *db }

func (r *storesRepo) Create(_ context.Context, s models.Store) (int64, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.users[s.OwnerID]; !ok {
		return 0, repo.ErrReference
	}
	if _, ok := r.d.storeEmails[s.Email]; ok {
		return 0, repo.ErrDuplicate
	}
	r.d.nextStore++
	s.ID = r.d.nextStore
	r.d.stores[s.ID] = s
	r.d.storeEmails[s.Email] = s.ID
	return s.ID, nil
}

func (r *storesRepo) matchLocked(f models.StoreFilter) []models.Store {
	var out []models.Store
	for _, s := range r.d.stores {
		if containsFold(s.Name, f.Name) && containsFold(s.Email, f.Email) && containsFold(s.Address, f.Address) {
			out = append(out, s)
		}
	}
	return out
}

func storeCompare(f models.StoreFilter, a, b models.Store, ra, rb *float64) int {
	var c int
	switch f.SortBy {
	case models.StoreSortID:
		c = direction(f.Order, cmp.Compare(a.ID, b.ID))
	case models.StoreSortName:
		c = direction(f.Order, cmp.Compare(a.Name, b.Name))
	case models.StoreSortEmail:
		c = direction(f.Order, cmp.Compare(a.Email, b.Email))
	case models.StoreSortAddress:
		c = direction(f.Order, cmp.Compare(a.Address, b.Address))
	case models.StoreSortRating:
		c = compareNullable(ra, rb, f.Order)
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func validStoreSort(f models.StoreSortField) bool {
	switch f {
	case models.StoreSortID, models.StoreSortName, models.StoreSortEmail, models.StoreSortAddress, models.StoreSortRating:
		return true
	}
	return false
}

func (r *storesRepo) List(_ context.Context, f models.StoreFilter) ([]models.StoreWithRating, error) {
	if !validStoreSort(f.SortBy) {
		return nil, models.ErrUnknownSortField
	}
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := []models.StoreWithRating{}
	for _, s := range r.matchLocked(f) {
		out = append(out, models.StoreWithRating{Store: s, Rating: r.d.avgLocked(s.ID)})
	}
	slices.SortFunc(out, func(a, b models.StoreWithRating) int {
		return storeCompare(f, a.Store, b.Store, a.Rating, b.Rating)
	})
	return out, nil
}

func (r *storesRepo) ListForUser(_ context.Context, userID int64, f models.StoreFilter) ([]models.UserStore, error) {
	if !validStoreSort(f.SortBy) {
		return nil, models.ErrUnknownSortField
	}
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	type row struct {
		store models.Store
		us    models.UserStore
	}
	var rows []row
	for _, s := range r.matchLocked(f) {
		us := models.UserStore{ID: s.ID, Name: s.Name, Address: s.Address, OverallRating: r.d.avgLocked(s.ID)}
		if v, ok := r.d.ratings[ratingKey{userID, s.ID}]; ok {
			us.UserRating = &v
		}
		rows = append(rows, row{s, us})
	}
	slices.SortFunc(rows, func(a, b row) int {
		return storeCompare(f, a.store, b.store, a.us.OverallRating, b.us.OverallRating)
	})
	out := make([]models.UserStore, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.us)
	}
	return out, nil
}

func (r *storesRepo) FirstByOwner(_ context.Context, ownerID int64) (models.Store, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var (
		first models.Store
		found bool
	)
	for _, s := range r.d.stores {
		if s.OwnerID == ownerID && (!found || s.ID < first.ID) {
			first, found = s, true
		}
	}
	if !found {
		return models.Store{}, repo.ErrNotFound
	}
	return first, nil
}

func (r *storesRepo) Count(context.Context) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return int64(len(r.d.stores)), nil
}

// ---------- ratings ----------

type ratingsRepo struct{ d *db }

func (r *ratingsRepo) Upsert(_ context.Context, rt models.Rating) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.users[rt.UserID]; !ok {
		return repo.ErrReference
	}
	if _, ok := r.d.stores[rt.StoreID]; !ok {
		return repo.ErrReference
	}
	r.d.ratings[ratingKey{rt.UserID, rt.StoreID}] = rt.Rating
	return nil
}

func (r *ratingsRepo) ListForStore(_ context.Context, storeID int64) ([]models.RaterRating, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	type row struct {
		userID int64
		rr     models.RaterRating
	}
	var rows []row
	for k, v := range r.d.ratings {
		if k.storeID == storeID {
			rows = append(rows, row{k.userID, models.RaterRating{Name: r.d.users[k.userID].Name, Rating: v}})
		}
	}
	slices.SortFunc(rows, func(a, b row) int {
		if c := cmp.Compare(a.rr.Name, b.rr.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.userID, b.userID)
	})
	out := make([]models.RaterRating, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.rr)
	}
	return out, nil
}

func (r *ratingsRepo) AverageForStore(_ context.Context, storeID int64) (float64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	if avg := r.d.avgLocked(storeID); avg != nil {
		return *avg, nil
	}
	return 0, nil
}

func (r *ratingsRepo) Count(context.Context) (int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	return int64(len(r.d.ratings)), nil
}
