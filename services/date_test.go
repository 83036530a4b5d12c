package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid ISO Date", func(t *testing.T) {
		parsed, err := ParseDate("2026-06-15")
		assert.NoError(t, err)
		assert.Equal(t, 2026, parsed.Year())
		assert.Equal(t, time.June, parsed.Month())
		assert.Equal(t, 15, parsed.Day())
	})

	t.Run("Rejects Other Formats", func(t *testing.T) {
		for _, input := range []string{"15/06/2026", "15-06-2026", "2026/06/15", "junio 15", ""} {
			_, err := ParseDate(input)
			assert.Error(t, err, "expected %q to be rejected", input)
		}
	})

	t.Run("Rejects Impossible Dates", func(t *testing.T) {
		_, err := ParseDate("2026-02-30")
		assert.Error(t, err)
	})
}

func TestParseHora(t *testing.T) {
	t.Run("Valid Time", func(t *testing.T) {
		parsed, err := ParseHora("09:30")
		assert.NoError(t, err)
		assert.Equal(t, 9, parsed.Hour())
		assert.Equal(t, 30, parsed.Minute())
	})

	t.Run("Rejects Invalid Times", func(t *testing.T) {
		for _, input := range []string{"25:00", "10:61", "9.30", ""} {
			_, err := ParseHora(input)
			assert.Error(t, err, "expected %q to be rejected", input)
		}
	})
}

func TestIsFutureDate(t *testing.T) {
	now := time.Now()

	t.Run("Today Is Not Future", func(t *testing.T) {
		assert.False(t, IsFutureDate(now))
	})

	t.Run("Earlier Today Is Not Future", func(t *testing.T) {
		morning := time.Date(now.Year(), now.Month(), now.Day(), 0, 1, 0, 0, now.Location())
		assert.False(t, IsFutureDate(morning))
	})

	t.Run("Tomorrow Is Future", func(t *testing.T) {
		assert.True(t, IsFutureDate(now.AddDate(0, 0, 1)))
	})

	t.Run("Yesterday Is Not Future", func(t *testing.T) {
		assert.False(t, IsFutureDate(now.AddDate(0, 0, -1)))
	})
}
