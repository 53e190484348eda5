package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "100B", FormatBytes(100))
	require.Equal(t, "1KB", FormatBytes(1024))
	require.Equal(t, "1.50MB", FormatBytes(3*MB/2))
	require.Equal(t, "4GB", FormatBytes(4*GB))
}

func TestParseBytes(t *testing.T) {
	cases := map[string]uint64{
		"":      0,
		"512":   512,
		"512B":  512,
		"4KB":   4 * KB,
		"1.5mb": 3 * MB / 2,
		" 4GB ": 4 * GB,
		"1TB":   TB,
	}
	for in, want := range cases {
		got, err := ParseBytes(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, in := range []string{"abc", "-1KB", "KB"} {
		_, err := ParseBytes(in)
		require.Error(t, err, in)
	}
}
