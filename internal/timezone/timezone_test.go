package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
)

func TestMonthRange(t *testing.T) {
	from, to, err := MonthRange("2030-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC), to)

	_, _, err = MonthRange("2030-13")
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestParseInstant_NormalisesToUTC(t *testing.T) {
	got, err := ParseInstant("2030-05-06T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 10, got.Hour())

	_, err = ParseInstant("2030-05-06 12:00")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2030-05-06", "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 5, 6, 9, 30, 0, 0, time.UTC), got)

	_, err = ParseDateTime("2030-05-06", "9h30")
	assert.Error(t, err)
}
