package postgres

import (
	"errors"
	"strconv"
	"strings"

	"github.com/baharkarakas/store-ratings/internal/models"
)

var errSortColumn = errors.New("sort field has no column")

var userSortColumns = map[models.UserSortField]string{
	models.UserSortID:      "u.id",
	models.UserSortName:    "u.name",
	models.UserSortEmail:   "u.email",
	models.UserSortAddress: "u.address",
	models.UserSortRole:    "u.role",
}

var storeSortColumns = map[models.StoreSortField]string{
	models.StoreSortID:      "s.id",
	models.StoreSortName:    "s.name",
	models.StoreSortEmail:   "s.email",
	models.StoreSortAddress: "s.address",
	models.StoreSortRating:  "AVG(r.rating)",
}

// selectQuery accumulates a parameterized SELECT. Identifiers only ever come
// from the column maps above; values always go through args.
type selectQuery struct {
	head    string
	where   []string
	args    []any
	groupBy string
	orderBy string
}

func (q *selectQuery) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

// contains adds a case-insensitive substring match; empty values are skipped.
func (q *selectQuery) contains(col, v string) {
	if v == "" {
		return
	}
	q.where = append(q.where, col+" ILIKE '%' || "+q.arg(escapeLike(v))+"::text || '%'")
}

// equalFold adds a case-insensitive equality match; empty values are skipped.
func (q *selectQuery) equalFold(col, v string) {
	if v == "" {
		return
	}
	q.where = append(q.where, "LOWER("+col+") = LOWER("+q.arg(v)+"::text)")
}

func (q *selectQuery) order(expr string, dir models.SortOrder, tiebreak string) {
	d := "ASC"
	if dir == models.Desc {
		d = "DESC"
	}
	q.orderBy = expr + " " + d + " NULLS LAST"
	if tiebreak != "" && tiebreak != expr {
		q.orderBy += ", " + tiebreak + " ASC"
	}
}

func (q *selectQuery) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString(q.head)
	if len(q.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
	}
	if q.groupBy != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(q.groupBy)
	}
	if q.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.orderBy)
	}
	return b.String(), q.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func buildUserList(f models.UserFilter) (string, []any, error) {
	col, ok := userSortColumns[f.SortBy]
	if !ok {
		return "", nil, errSortColumn
	}
	q := &selectQuery{head: `SELECT u.id, u.name, u.email, u.address, u.role FROM users u`}
	q.contains("u.name", f.Name)
	q.contains("u.email", f.Email)
	q.contains("u.address", f.Address)
	q.equalFold("u.role", f.Role)
	q.order(col, f.Order, "u.id")
	sql, args := q.SQL()
	return sql, args, nil
}

func buildStoreList(f models.StoreFilter) (string, []any, error) {
	col, ok := storeSortColumns[f.SortBy]
	if !ok {
		return "", nil, errSortColumn
	}
	q := &selectQuery{
		head: `SELECT s.id, s.name, s.email, s.address, s.owner_id, AVG(r.rating)::float8 AS rating
FROM stores s LEFT JOIN ratings r ON r.store_id = s.id`,
		groupBy: "s.id",
	}
	applyStoreFilter(q, f)
	q.order(col, f.Order, "s.id")
	sql, args := q.SQL()
	return sql, args, nil
}

func buildUserStoreList(userID int64, f models.StoreFilter) (string, []any, error) {
	col, ok := storeSortColumns[f.SortBy]
	if !ok {
		return "", nil, errSortColumn
	}
	q := &selectQuery{groupBy: "s.id"}
	q.head = `SELECT s.id, s.name, s.address, AVG(r.rating)::float8 AS overall_rating,
(SELECT ur.rating FROM ratings ur WHERE ur.user_id = ` + q.arg(userID) + ` AND ur.store_id = s.id) AS user_rating
FROM stores s LEFT JOIN ratings r ON r.store_id = s.id`
	applyStoreFilter(q, f)
	q.order(col, f.Order, "s.id")
	sql, args := q.SQL()
	return sql, args, nil
}

func applyStoreFilter(q *selectQuery, f models.StoreFilter) {
	q.contains("s.name", f.Name)
	q.contains("s.email", f.Email)
	q.contains("s.address", f.Address)
}
