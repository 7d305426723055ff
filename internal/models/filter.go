package models

import (
	"errors"
	"strings"
)

var (
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrUnknownSortOrder = errors.New("unknown sort order")
)

type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// ParseSortOrder accepts asc/desc in any case; empty means ASC.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ASC":
		return Asc, nil
	case "DESC":
		return Desc, nil
	}
	return "", ErrUnknownSortOrder
}

type UserSortField string

const (
	UserSortID      UserSortField = "id"
	UserSortName    UserSortField = "name"
	UserSortEmail   UserSortField = "email"
	UserSortAddress UserSortField = "address"
	UserSortRole    UserSortField = "role"
)

var userSortFields = map[string]UserSortField{
	"id":      UserSortID,
	"name":    UserSortName,
	"email":   UserSortEmail,
	"address": UserSortAddress,
	"role":    UserSortRole,
}

// ParseUserSortField resolves a sortBy value; empty means name.
func ParseUserSortField(s string) (UserSortField, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return UserSortName, nil
	}
	f, ok := userSortFields[s]
	if !ok {
		return "", ErrUnknownSortField
	}
	return f, nil
}

type StoreSortField string

const (
	StoreSortID      StoreSortField = "id"
	StoreSortName    StoreSortField = "name"
	StoreSortEmail   StoreSortField = "email"
	StoreSortAddress StoreSortField = "address"
	StoreSortRating  StoreSortField = "rating"
)

var storeSortFields = map[string]StoreSortField{
	"id":      StoreSortID,
	"name":    StoreSortName,
	"email":   StoreSortEmail,
	"address": StoreSortAddress,
	"rating":  StoreSortRating,
	// column names used by the user listing
	"overall_rating": StoreSortRating,
}

// ParseStoreSortField resolves a sortBy value; empty means name.
func ParseStoreSortField(s string) (StoreSortField, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StoreSortName, nil
	}
	f, ok := storeSortFields[s]
	if !ok {
		return "", ErrUnknownSortField
	}
	return f, nil
}

// UserFilter selects users. Empty text fields are not applied.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    string
	SortBy  UserSortField
	Order   SortOrder
}

// StoreFilter selects stores. Empty text fields are not applied.
type StoreFilter struct {
	Name    string
	Email   string
	Address string
	SortBy  StoreSortField
	Order   SortOrder
}
