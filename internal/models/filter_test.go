package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSortOrder(t *testing.T) {
	for in, want := range map[string]SortOrder{"": Asc, "asc": Asc, "ASC": Asc, " desc ": Desc, "DESC": Desc} {
		got, err := ParseSortOrder(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseSortOrder("ASC; DROP TABLE users")
	require.ErrorIs(t, err, ErrUnknownSortOrder)
}

func TestParseUserSortField(t *testing.T) {
	f, err := ParseUserSortField("")
	require.NoError(t, err)
	require.Equal(t, UserSortName, f)

	f, err = ParseUserSortField("Email")
	require.NoError(t, err)
	require.Equal(t, UserSortEmail, f)

	for _, bad := range []string{"password", "name desc", "1", "users.name"} {
		_, err := ParseUserSortField(bad)
		require.ErrorIs(t, err, ErrUnknownSortField, bad)
	}
}

func TestParseStoreSortField(t *testing.T) {
	f, err := ParseStoreSortField("overall_rating")
	require.NoError(t, err)
	require.Equal(t, StoreSortRating, f)

	_, err = ParseStoreSortField("owner_id")
	require.ErrorIs(t, err, ErrUnknownSortField)
}

func TestRoleValid(t *testing.T) {
	require.True(t, RoleAdmin.Valid())
	require.True(t, RoleStoreOwner.Valid())
	require.False(t, Role("root").Valid())
	require.False(t, Role("").Valid())
}
