package store

import (
	"testing"

	"github.com/killjoy47/MniseCosmetics/models"
	"github.com/stretchr/testify/require"
)

func newSeededStore(t *testing.T) *Store {
	t.Helper()
	st := newTestStore(t, nil)
	require.NoError(t, st.Seed())
	return st
}

func TestSeed(t *testing.T) {
	st := newSeededStore(t)

	names, err := st.ListCategories()
	require.NoError(t, err)
	require.Equal(t, []string{"Soins", "Parfums", "Maquillage"}, names)

	// Seeding twice must not duplicate anything.
	require.NoError(t, st.Seed())
	names, err = st.ListCategories()
	require.NoError(t, err)
	require.Len(t, names, 3)
}

func TestAuthenticate(t *testing.T) {
	st := newSeededStore(t)

	require.NoError(t, st.Authenticate(models.RoleAdmin, "admin"))
	require.NoError(t, st.Authenticate(models.RoleSeller, "123"))

	require.ErrorIs(t, st.Authenticate(models.RoleAdmin, "wrong"), models.ErrForbidden)
	require.ErrorIs(t, st.Authenticate("ghost", "admin"), models.ErrForbidden)
}

func TestResetCredentials(t *testing.T) {
	t.Run("WrongMasterKeyChangesNothing", func(t *testing.T) {
		st := newSeededStore(t)

		err := st.ResetCredentials("wrong", "newAdmin", "newSeller")
		require.ErrorIs(t, err, models.ErrForbidden)

		require.NoError(t, st.Authenticate(models.RoleAdmin, "admin"))
		require.NoError(t, st.Authenticate(models.RoleSeller, "123"))
		require.ErrorIs(t, st.Authenticate(models.RoleAdmin, "newAdmin"), models.ErrForbidden)
	})

	t.Run("UpdatesOnlyProvidedPasswords", func(t *testing.T) {
		st := newSeededStore(t)

		require.NoError(t, st.ResetCredentials("0000", "nouveau", ""))

		require.NoError(t, st.Authenticate(models.RoleAdmin, "nouveau"))
		require.ErrorIs(t, st.Authenticate(models.RoleAdmin, "admin"), models.ErrForbidden)
		require.NoError(t, st.Authenticate(models.RoleSeller, "123"))
	})
}
