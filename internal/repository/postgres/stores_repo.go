package postgres

import (
	"context"

	"github.com/baharkarakas/store-ratings/internal/models"
)

type storesRepo struct{ db querier }

func (r *storesRepo) Create(ctx context.Context, s models.Store) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO stores(name, email, address, owner_id) VALUES($1,$2,$3,$4) RETURNING id`,
		s.Name, s.Email, s.Address, s.OwnerID,
	).Scan(&id)
	return id, mapErr(err)
}

func (r *storesRepo) List(ctx context.Context, f models.StoreFilter) ([]models.StoreWithRating, error) {
	sql, args, err := buildStoreList(f)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.StoreWithRating{}
	for rows.Next() {
		var s models.StoreWithRating
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Address, &s.OwnerID, &s.Rating); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *storesRepo) ListForUser(ctx context.Context, userID int64, f models.StoreFilter) ([]models.UserStore, error) {
	sql, args, err := buildUserStoreList(userID, f)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.UserStore{}
	for rows.Next() {
		var s models.UserStore
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.OverallRating, &s.UserRating); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *storesRepo) FirstByOwner(ctx context.Context, ownerID int64) (models.Store, error) {
	var s models.Store
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, address, owner_id
		   FROM stores
		  WHERE owner_id=$1
		  ORDER BY id
		  LIMIT 1`,
		ownerID,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Address, &s.OwnerID)
	return s, mapErr(err)
}

func (r *storesRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "stores")
}
