package digest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	digests := Sum([]Algorithm{SHA256, BLAKE3}, []byte("abc"))
	require.Len(t, digests, 2)

	require.Equal(t, SHA256, digests[0].Algorithm)
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", digests[0].Value)

	require.Equal(t, BLAKE3, digests[1].Algorithm)
	require.Equal(t, "6437b3ac38465133ffb63b75273a8db548c558465d79db03fd359c6cd5bd9d85", digests[1].Value)
}

func TestParseAlgorithms(t *testing.T) {
	algs, err := ParseAlgorithms([]string{"SHA256", "", "blake3", "sha256"})
	require.NoError(t, err)
	require.Equal(t, []Algorithm{SHA256, BLAKE3}, algs)

	_, err = ParseAlgorithms([]string{"md5"})
	require.Error(t, err)
}
