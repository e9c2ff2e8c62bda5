package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeWindow_Validate(t *testing.T) {
	assert.NoError(t, TimeWindow{StartMinute: 0, EndMinute: 1440}.Validate())
	assert.NoError(t, TimeWindow{StartMinute: 540, EndMinute: 600}.Validate())

	assert.ErrorIs(t, TimeWindow{StartMinute: -1, EndMinute: 60}.Validate(), ErrInvalidTimeWindow)
	assert.ErrorIs(t, TimeWindow{StartMinute: 0, EndMinute: 1441}.Validate(), ErrInvalidTimeWindow)
	assert.ErrorIs(t, TimeWindow{StartMinute: 600, EndMinute: 600}.Validate(), ErrInvalidTimeWindow)
	assert.ErrorIs(t, TimeWindow{StartMinute: 600, EndMinute: 540}.Validate(), ErrInvalidTimeWindow)
}

func TestTimeWindow_Overlaps(t *testing.T) {
	a := TimeWindow{StartMinute: 540, EndMinute: 600} // 09:00-10:00

	// Частичное пересечение
	assert.True(t, a.Overlaps(TimeWindow{StartMinute: 570, EndMinute: 630}))
	assert.True(t, a.Overlaps(TimeWindow{StartMinute: 500, EndMinute: 560}))

	// Вложенность
	assert.True(t, a.Overlaps(TimeWindow{StartMinute: 550, EndMinute: 590}))
	assert.True(t, a.Overlaps(TimeWindow{StartMinute: 500, EndMinute: 700}))

	// Встык - не пересечение (полуоткрытые интервалы)
	assert.False(t, a.Overlaps(TimeWindow{StartMinute: 600, EndMinute: 660}))
	assert.False(t, a.Overlaps(TimeWindow{StartMinute: 480, EndMinute: 540}))

	// Полностью раздельные
	assert.False(t, a.Overlaps(TimeWindow{StartMinute: 700, EndMinute: 760}))
}

func TestTimeWindow_Contains(t *testing.T) {
	open := TimeWindow{StartMinute: 540, EndMinute: 1080}

	assert.True(t, open.Contains(TimeWindow{StartMinute: 720, EndMinute: 780}))
	assert.True(t, open.Contains(open))
	assert.False(t, open.Contains(TimeWindow{StartMinute: 500, EndMinute: 600}))
	assert.False(t, open.Contains(TimeWindow{StartMinute: 1000, EndMinute: 1100}))
}

func TestTimeWindow_ClampToDay(t *testing.T) {
	clamped := TimeWindow{StartMinute: -60, EndMinute: 60}.ClampToDay()
	assert.Equal(t, TimeWindow{StartMinute: 0, EndMinute: 60}, clamped)

	clamped = TimeWindow{StartMinute: 1380, EndMinute: 1500}.ClampToDay()
	assert.Equal(t, TimeWindow{StartMinute: 1380, EndMinute: 1440}, clamped)

	// Интервал целиком вне суток схлопывается в пустой
	assert.True(t, TimeWindow{StartMinute: -120, EndMinute: -60}.ClampToDay().IsEmpty())
}

func TestBooking_Occupies(t *testing.T) {
	for status, expected := range map[BookingStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCompleted: false,
		StatusCancelled: false,
	} {
		b := Booking{Status: status}
		assert.Equal(t, expected, b.Occupies(), "status %s", status)
	}
}

func TestBooking_CanTransitionTo(t *testing.T) {
	pending := Booking{Status: StatusPending}
	assert.True(t, pending.CanTransitionTo(StatusConfirmed))
	assert.True(t, pending.CanTransitionTo(StatusCancelled))
	assert.False(t, pending.CanTransitionTo(StatusCompleted))

	confirmed := Booking{Status: StatusConfirmed}
	assert.True(t, confirmed.CanTransitionTo(StatusCompleted))
	assert.True(t, confirmed.CanTransitionTo(StatusCancelled))
	assert.False(t, confirmed.CanTransitionTo(StatusPending))

	completed := Booking{Status: StatusCompleted}
	assert.False(t, completed.CanTransitionTo(StatusCancelled))
}

func TestScheduleConfig_Validate(t *testing.T) {
	cfg := DefaultScheduleConfig("UTC")
	assert.NoError(t, cfg.Validate())

	broken := DefaultScheduleConfig("UTC")
	broken.SlotGranularityMinutes = 0
	assert.ErrorIs(t, broken.Validate(), ErrInvalidConfig)

	broken = DefaultScheduleConfig("UTC")
	broken.Timezone = "Not/AZone"
	assert.ErrorIs(t, broken.Validate(), ErrInvalidConfig)
}
