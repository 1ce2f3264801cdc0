package api

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/dbmanager"
)

func TestMapErrorPassesThroughUnknown(t *testing.T) {
	assert.NoError(t, mapError(nil))

	boom := errors.New("boom")
	assert.Same(t, boom, mapError(boom))
}

func TestMapErrorRewritesDomainErrors(t *testing.T) {
	for _, err := range []error{
		fmt.Errorf("update: %w", dbmanager.ErrUnauthorized),
		fmt.Errorf("save: %w", dbmanager.ErrMalformedInput),
		fmt.Errorf("save: %w", dbmanager.ErrConditionExists),
		dbmanager.ErrNotConfigured,
	} {
		mapped := mapError(err)
		require.Error(t, mapped)
		assert.NotEqual(t, err, mapped)
	}
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("incptnDtTm", "2024-06-01T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), got)

	got, err = parseTime("incptnDtTm", "")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = parseTime("incptnDtTm", "yesterday")
	assert.Error(t, err)

	exp, err := parseOptionalTime("xprtnDtTm", "")
	require.NoError(t, err)
	assert.Nil(t, exp)
}
