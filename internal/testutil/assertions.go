package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "loomhouse/internal/errors"
)

// AssertAppError fails unless err carries an *AppError with code. The
// message is shown on mismatch since several sentinels share a status.
func AssertAppError(t *testing.T, err error, code string) *apperrors.AppError {
	t.Helper()

	require.Error(t, err, "expected AppError %s", code)
	var appErr *apperrors.AppError
	require.Truef(t, errors.As(err, &appErr), "expected *AppError, got %T: %v", err, err)
	require.Equalf(t, code, appErr.Code, "message: %s", appErr.Message)
	return appErr
}

// AssertNoError stops the test on a non-nil err.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	require.NoError(t, err)
}
