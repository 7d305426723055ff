package models

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
	RoleStoreOwner Role = "store_owner"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleStoreOwner:
		return true
	}
	return false
}

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Address      string `json:"address"`
	Role         Role   `json:"role"`
}

// UserDetail is a user with the average rating of the stores they own.
// Rating is nil when the user owns no rated store.
type UserDetail struct {
	User
	Rating *float64 `json:"rating"`
}
