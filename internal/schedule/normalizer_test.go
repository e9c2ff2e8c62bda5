package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_ToLocal(t *testing.T) {
	n, err := NewNormalizer("Europe/Moscow")
	require.NoError(t, err)

	// 06:30 UTC = 09:30 по Москве (UTC+3)
	instant := time.Date(2026, 4, 15, 6, 30, 0, 0, time.UTC)
	date, minute := n.ToLocal(instant)

	assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, 9*60+30, minute)
}

func TestNormalizer_ToLocal_CrossesMidnight(t *testing.T) {
	n, err := NewNormalizer("Europe/Moscow")
	require.NoError(t, err)

	// 22:30 UTC = 01:30 следующего дня по Москве
	instant := time.Date(2026, 4, 15, 22, 30, 0, 0, time.UTC)
	date, minute := n.ToLocal(instant)

	assert.Equal(t, time.Date(2026, 4, 16, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, 90, minute)
}

func TestNormalizer_RoundTrip(t *testing.T) {
	n, err := NewNormalizer("Europe/Berlin")
	require.NoError(t, err)

	instants := []time.Time{
		time.Date(2026, 1, 10, 8, 45, 0, 0, time.UTC),
		time.Date(2026, 6, 20, 23, 15, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 22, 59, 0, 0, time.UTC),
	}

	for _, instant := range instants {
		date, minute := n.ToLocal(instant)
		back, err := n.ToUTC(date, minute)
		require.NoError(t, err)
		assert.True(t, back.Equal(instant), "round trip mismatch for %s: got %s", instant, back)
	}
}

func TestNormalizer_ToUTC_DSTGap(t *testing.T) {
	n, err := NewNormalizer("Europe/Berlin")
	require.NoError(t, err)

	// 29 марта 2026 в Берлине часы переводятся с 02:00 сразу на 03:00 -
	// локального времени 02:30 в этот день не существует
	gapDay := time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC)

	_, err = n.ToUTC(gapDay, 2*60+30)
	assert.ErrorIs(t, err, ErrAmbiguousLocalTime)

	// 03:00 того же дня уже существует
	instant, err := n.ToUTC(gapDay, 3*60)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 29, 1, 0, 0, 0, time.UTC), instant)
}

func TestNormalizer_ToUTC_OutOfRange(t *testing.T) {
	n, err := NewNormalizer("UTC")
	require.NoError(t, err)

	date := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	_, err = n.ToUTC(date, -1)
	assert.ErrorIs(t, err, ErrAmbiguousLocalTime)

	_, err = n.ToUTC(date, 1440)
	assert.ErrorIs(t, err, ErrAmbiguousLocalTime)
}

func TestNormalizer_DayBoundsUTC(t *testing.T) {
	n, err := NewNormalizer("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	start, end := n.DayBoundsUTC(date)

	// Московская полночь = 21:00 UTC предыдущего дня
	assert.Equal(t, time.Date(2026, 4, 14, 21, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 4, 15, 21, 0, 0, 0, time.UTC), end)
}

func TestNormalizer_DayBoundsUTC_DSTDay(t *testing.T) {
	n, err := NewNormalizer("Europe/Berlin")
	require.NoError(t, err)

	// День перевода часов короче на час - границы это отражают
	date := time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC)
	start, end := n.DayBoundsUTC(date)

	assert.Equal(t, 23*time.Hour, end.Sub(start))
}

func TestNewNormalizer_UnknownTimezone(t *testing.T) {
	_, err := NewNormalizer("Mars/Olympus_Mons")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}
