package sysinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStat(t *testing.T) {
	info, err := Stat()
	require.NoError(t, err)
	require.Equal(t, runtime.GOOS, info.Name)
	require.NotEmpty(t, info.Release)
}
