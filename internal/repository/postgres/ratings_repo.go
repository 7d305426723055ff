package postgres

import (
	"context"

	"github.com/baharkarakas/store-ratings/internal/models"
)

type ratingsRepo struct{ db querier }

func (r *ratingsRepo) Upsert(ctx context.Context, rt models.Rating) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO ratings(user_id, store_id, rating) VALUES($1,$2,$3)
		 ON CONFLICT (user_id, store_id) DO UPDATE SET rating = EXCLUDED.rating`,
		rt.UserID, rt.StoreID, rt.Rating,
	)
	return mapErr(err)
}

func (r *ratingsRepo) ListForStore(ctx context.Context, storeID int64) ([]models.RaterRating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.name, r.rating
		   FROM ratings r
		   JOIN users u ON u.id = r.user_id
		  WHERE r.store_id = $1
		  ORDER BY u.name, r.user_id`,
		storeID,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.RaterRating{}
	for rows.Next() {
		var rr models.RaterRating
		if err := rows.Scan(&rr.Name, &rr.Rating); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *ratingsRepo) AverageForStore(ctx context.Context, storeID int64) (float64, error) {
	var avg float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0)::float8 FROM ratings WHERE store_id = $1`,
		storeID,
	).Scan(&avg)
	return avg, mapErr(err)
}

func (r *ratingsRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "ratings")
}
