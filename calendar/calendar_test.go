// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UsesReferenceZone(t *testing.T) {
	loc, err := LoadZone("")
	require.NoError(t, err)

	// 16:30 UTC is already the next day in UTC+8.
	ts := time.Date(2025, 3, 1, 16, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-02", Date(ts, loc))
	assert.Equal(t, "2025-03-01", Date(ts, time.UTC))
}

func TestSameDay(t *testing.T) {
	loc, err := LoadZone("Asia/Taipei")
	require.NoError(t, err)

	before := time.Date(2025, 3, 1, 15, 59, 59, 0, time.UTC) // 23:59:59 local
	after := time.Date(2025, 3, 1, 16, 0, 0, 0, time.UTC)    // 00:00:00 local

	assert.False(t, SameDay(before, after, loc))
	assert.True(t, SameDay(before, before.Add(-time.Hour), loc))
	assert.True(t, SameDay(before, after, time.UTC))
}

func TestLoadZone_Unknown(t *testing.T) {
	_, err := LoadZone("Mars/Olympus_Mons")
	assert.Error(t, err)
}
