package address

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pk, err := GenerateKey()
	require.NoError(t, err)
	msg := []byte("transfer 10 coins")
	sig, err := pk.Sign(msg)
	require.NoError(t, err)
	require.True(t, Verify(msg, sig, pk.PublicKey()))
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	pk, err := GenerateKey()
	require.NoError(t, err)
	sig, err := pk.Sign([]byte("original"))
	require.NoError(t, err)
	require.False(t, Verify([]byte("tampered"), sig, pk.PublicKey()))
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	pk1, _ := GenerateKey()
	pk2, _ := GenerateKey()
	sig, err := pk1.Sign([]byte("msg"))
	require.NoError(t, err)
	require.False(t, Verify([]byte("msg"), sig, pk2.PublicKey()))
}

func TestDeriveIsDeterministic(t *testing.T) {
	pk, err := GenerateKey()
	require.NoError(t, err)
	a1 := Derive(pk.PublicKey())
	a2 := Derive(pk.PublicKey())
	require.Equal(t, a1, a2)
	require.NotEmpty(t, a1)
}

func TestPublicKeyBase64RoundTrip(t *testing.T) {
	pk, err := GenerateKey()
	require.NoError(t, err)
	pub := pk.PublicKey()
	decoded, err := PublicKeyFromBase64(pub.Base64())
	require.NoError(t, err)
	require.Equal(t, pub, decoded)
}
