package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketScores(t *testing.T) {
	buckets := BucketScores([]int{0, 10, 25, 26, 50, 51, 75, 76, 100})

	assert.Equal(t, 3, buckets["0-25"])
	assert.Equal(t, 2, buckets["26-50"])
	assert.Equal(t, 2, buckets["51-75"])
	assert.Equal(t, 2, buckets["76-100"])
}

func TestBucketScoresEmpty(t *testing.T) {
	buckets := BucketScores(nil)

	assert.Len(t, buckets, 4)
	for label, count := range buckets {
		assert.Equal(t, 0, count, "bucket %s", label)
	}
}

func TestStreakFromDates(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return today.AddDate(0, 0, offset).Add(time.Duration(hour-15) * time.Hour)
	}

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"no completions", nil, 0},
		{"today only", []time.Time{day(0, 9)}, 1},
		{"three consecutive days ending today", []time.Time{day(0, 9), day(-1, 20), day(-2, 8)}, 3},
		{"anchored on yesterday", []time.Time{day(-1, 11), day(-2, 11)}, 2},
		{"gap breaks the streak", []time.Time{day(0, 9), day(-1, 9), day(-3, 9)}, 2},
		{"stale streak resets to zero", []time.Time{day(-2, 9), day(-3, 9)}, 0},
		{"multiple completions same day count once", []time.Time{day(0, 18), day(0, 9), day(-1, 9)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StreakFromDates(tt.dates, today))
		})
	}
}

func TestStreakFromDatesAcrossDSTChange(t *testing.T) {
	// US spring-forward on 2026-03-08 makes the Mar 7 to Mar 8 gap 23 hours
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	today := time.Date(2026, 3, 9, 10, 0, 0, 0, loc)
	dates := []time.Time{
		time.Date(2026, 3, 9, 9, 0, 0, 0, loc),
		time.Date(2026, 3, 8, 9, 0, 0, 0, loc),
		time.Date(2026, 3, 7, 9, 0, 0, 0, loc),
	}

	assert.Equal(t, 3, StreakFromDates(dates, today))
}
