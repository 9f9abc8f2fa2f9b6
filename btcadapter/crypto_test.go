package btcadapter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash160IsRipemdOfSha256(t *testing.T) {
	c := NewCrypto(nil)
	data := []byte("hello world")
	want := c.Ripemd160(c.Sha256(data))
	require.Equal(t, want, c.Hash160(data))
}

func TestDoubleSha256(t *testing.T) {
	c := NewCrypto(nil)
	data := []byte("hello world")
	require.Equal(t, c.Sha256(c.Sha256(data)), c.DoubleSha256(data))
}

func TestEcdsaVerifyDERRejectsMalformedInput(t *testing.T) {
	c := NewCrypto(nil)
	require.False(t, c.EcdsaVerifyDER([]byte{0x01}, []byte{0x02}, []byte{0x03}))
}
