package scribesdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemStore(t *testing.T) {
	t.Parallel()

	t.Run("empty store reads nil", func(t *testing.T) {
		t.Parallel()

		store := NewMemStore()
		creds, err := store.Get()
		require.NoError(t, err)
		require.Nil(t, creds)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		store := NewMemStore()
		require.NoError(t, store.Set(staleCreds()))

		creds, err := store.Get()
		require.NoError(t, err)
		require.Equal(t, staleCreds(), creds)
	})

	t.Run("rejects partial pair", func(t *testing.T) {
		t.Parallel()

		store := NewMemStore()
		require.ErrorIs(t, store.Set(nil), ErrPartialCredentials)
		require.ErrorIs(t, store.Set(&Credentials{AccessToken: "a"}), ErrPartialCredentials)
		require.ErrorIs(t, store.Set(&Credentials{RefreshToken: "r"}), ErrPartialCredentials)

		creds, err := store.Get()
		require.NoError(t, err)
		require.Nil(t, creds, "a rejected write leaves the store untouched")
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		t.Parallel()

		store := NewMemStore()
		require.NoError(t, store.Set(staleCreds()))
		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())

		creds, err := store.Get()
		require.NoError(t, err)
		require.Nil(t, creds)
	})

	t.Run("reads are copies", func(t *testing.T) {
		t.Parallel()

		store := NewMemStore()
		require.NoError(t, store.Set(staleCreds()))

		first, err := store.Get()
		require.NoError(t, err)
		first.AccessToken = "mutated"

		second, err := store.Get()
		require.NoError(t, err)
		require.Equal(t, "stale-access", second.AccessToken)
	})
}
