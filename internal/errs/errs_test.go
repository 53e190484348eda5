package errs_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/ostafen/carver/internal/errs"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	require.Equal(t, errs.KindUnknown, errs.Classify(nil))
	require.Equal(t, errs.KindUnknown, errs.Classify(errors.New("boom")))

	err := errs.Config("line %d: expected 2 fields", 3)
	require.Equal(t, errs.KindConfig, errs.Classify(err))
	require.Contains(t, err.Error(), "line 3")

	err = fmt.Errorf("carving: %w", errs.Decode("odd length"))
	require.Equal(t, errs.KindDecode, errs.Classify(err))
}

func TestIOKeepsCause(t *testing.T) {
	_, cause := os.Open("/does/not/exist")
	require.Error(t, cause)

	err := errs.IO("reading input: %w", cause)
	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, 3, errs.Classify(err).ExitCode())
}
