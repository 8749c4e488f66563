package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealRoundTrip(t *testing.T) {
	t.Parallel()

	salt, err := NewSalt()
	require.NoError(t, err)

	box, err := NewBox([]byte("correct horse battery staple"), salt)
	require.NoError(t, err)

	plain := []byte("eyJhbGciOiJIUzI1NiJ9.access-token")

	sealed, err := box.Seal(plain)
	require.NoError(t, err)
	require.NotContains(t, string(sealed), string(plain))

	opened, err := box.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, plain, opened)
}

func TestSealNonceIsFreshPerCall(t *testing.T) {
	t.Parallel()

	salt, err := NewSalt()
	require.NoError(t, err)

	box, err := NewBox([]byte("passphrase"), salt)
	require.NoError(t, err)

	a, err := box.Seal([]byte("same input"))
	require.NoError(t, err)
	b, err := box.Seal([]byte("same input"))
	require.NoError(t, err)
	require.False(t, bytes.Equal(a, b), "two seals of the same input must differ")
}

func TestOpenRejectsTampering(t *testing.T) {
	t.Parallel()

	salt, err := NewSalt()
	require.NoError(t, err)

	box, err := NewBox([]byte("passphrase"), salt)
	require.NoError(t, err)

	sealed, err := box.Seal([]byte("refresh-token"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = box.Open(sealed)
	require.ErrorIs(t, err, ErrCiphertext)
}

func TestOpenRejectsWrongPassphrase(t *testing.T) {
	t.Parallel()

	salt, err := NewSalt()
	require.NoError(t, err)

	box, err := NewBox([]byte("passphrase"), salt)
	require.NoError(t, err)
	other, err := NewBox([]byte("different"), salt)
	require.NoError(t, err)

	sealed, err := box.Seal([]byte("secret"))
	require.NoError(t, err)

	_, err = other.Open(sealed)
	require.ErrorIs(t, err, ErrCiphertext)
}

func TestOpenRejectsShortInput(t *testing.T) {
	t.Parallel()

	salt, err := NewSalt()
	require.NoError(t, err)

	box, err := NewBox([]byte("passphrase"), salt)
	require.NoError(t, err)

	_, err = box.Open([]byte{0x01, 0x02})
	require.ErrorIs(t, err, ErrCiphertext)
}

func TestNewBoxValidatesInputs(t *testing.T) {
	t.Parallel()

	salt, err := NewSalt()
	require.NoError(t, err)

	_, err = NewBox(nil, salt)
	require.Error(t, err)

	_, err = NewBox([]byte("passphrase"), []byte("short"))
	require.Error(t, err)
}
