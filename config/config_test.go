package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 21, cfg.TotalDays)
	assert.Equal(t, "fitchallenge_db", cfg.DBName)
	// без CHALLENGE_START_DATE стартом считается сегодняшний день
	assert.False(t, cfg.ChallengeStart.IsZero())
}

func TestLoad_ChallengeWindow(t *testing.T) {
	t.Setenv("CHALLENGE_START_DATE", "2025-09-05")
	t.Setenv("CHALLENGE_TOTAL_DAYS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC), cfg.ChallengeStart)
	assert.Equal(t, 30, cfg.TotalDays)
}

func TestLoad_BadStartDate(t *testing.T) {
	t.Setenv("CHALLENGE_START_DATE", "05.09.2025")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadTotalDays(t *testing.T) {
	t.Setenv("CHALLENGE_TOTAL_DAYS", "three weeks")

	_, err := Load()
	assert.Error(t, err)
}
