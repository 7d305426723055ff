// internal/repository/postgres/users_repo.go
package postgres

import (
	"context"

	"github.com/baharkarakas/store-ratings/internal/models"
	"github.com/baharkarakas/store-ratings/internal/repository"
)

type usersRepo struct{ db querier }

func (r *usersRepo) Create(ctx context.Context, u models.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO users(name, email, password, address, role) VALUES($1,$2,$3,$4,$5) RETURNING id`,
		u.Name, u.Email, u.PasswordHash, u.Address, string(u.Role),
	).Scan(&id)
	return id, mapErr(err)
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password, address, role FROM users WHERE id=$1`, id)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password, address, role FROM users WHERE email=$1`, email)
}

func (r *usersRepo) getOne(ctx context.Context, sql string, arg any) (models.User, error) {
	var (
		u    models.User
		role string
	)
	err := r.db.QueryRow(ctx, sql, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Address, &role)
	if err != nil {
		return models.User{}, mapErr(err)
	}
	u.Role = models.Role(role)
	return u, nil
}

func (r *usersRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET password=$2 WHERE id=$1`, id, hash)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *usersRepo) List(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	sql, args, err := buildUserList(f)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var (
			u    models.User
			role string
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Address, &role); err != nil {
			return nil, err
		}
		u.Role = models.Role(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Detail(ctx context.Context, id int64) (models.UserDetail, error) {
	var (
		d    models.UserDetail
		role string
	)
	err := r.db.QueryRow(ctx,
		`SELECT u.id, u.name, u.email, u.address, u.role, AVG(r.rating)::float8
		   FROM users u
		   LEFT JOIN stores s ON s.owner_id = u.id
		   LEFT JOIN ratings r ON r.store_id = s.id
		  WHERE u.id = $1
		  GROUP BY u.id`,
		id,
	).Scan(&d.ID, &d.Name, &d.Email, &d.Address, &role, &d.Rating)
	if err != nil {
		return models.UserDetail{}, mapErr(err)
	}
	d.Role = models.Role(role)
	return d, nil
}

func (r *usersRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "users")
}
