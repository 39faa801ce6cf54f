package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func timeMustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return ts
}
