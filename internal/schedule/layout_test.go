package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

func entry(id int64, start, end int) domain.LayoutEntry {
	return domain.LayoutEntry{
		BookingID: id,
		Window:    domain.TimeWindow{StartMinute: start, EndMinute: end},
	}
}

func byBookingID(assignments []domain.LayoutAssignment) map[int64]domain.LayoutAssignment {
	result := make(map[int64]domain.LayoutAssignment, len(assignments))
	for _, a := range assignments {
		result[a.BookingID] = a
	}
	return result
}

func TestPackDayLayout_Empty(t *testing.T) {
	assert.Empty(t, PackDayLayout(nil))
	assert.Empty(t, PackDayLayout([]domain.LayoutEntry{}))
}

func TestPackDayLayout_SingleBooking(t *testing.T) {
	assignments := PackDayLayout([]domain.LayoutEntry{entry(1, 540, 570)})
	require.Len(t, assignments, 1)

	assert.Equal(t, 0, assignments[0].ColumnIndex)
	assert.Equal(t, 1, assignments[0].TotalColumns)
}

func TestPackDayLayout_NonOverlappingShareColumnZero(t *testing.T) {
	// Встык: одно заканчивается в 10:00, другое начинается в 10:00
	assignments := PackDayLayout([]domain.LayoutEntry{
		entry(1, 540, 600),
		entry(2, 600, 660),
	})
	require.Len(t, assignments, 2)

	byID := byBookingID(assignments)
	assert.Equal(t, 0, byID[1].ColumnIndex)
	assert.Equal(t, 0, byID[2].ColumnIndex)
	assert.Equal(t, 1, byID[1].TotalColumns)
	assert.Equal(t, 1, byID[2].TotalColumns)
}

func TestPackDayLayout_OverlappingPair(t *testing.T) {
	assignments := PackDayLayout([]domain.LayoutEntry{
		entry(1, 540, 600),
		entry(2, 570, 630),
	})

	byID := byBookingID(assignments)
	assert.Equal(t, 0, byID[1].ColumnIndex)
	assert.Equal(t, 1, byID[2].ColumnIndex)
	assert.Equal(t, 2, byID[1].TotalColumns)
	assert.Equal(t, 2, byID[2].TotalColumns)
}

func TestPackDayLayout_ChainReusesColumnZero(t *testing.T) {
	// 09:00-09:30, 09:15-09:45, 09:45-10:00:
	// третье бронирование возвращается в колонку 0 и, не пересекаясь
	// ни с кем, рендерится в полную ширину
	assignments := PackDayLayout([]domain.LayoutEntry{
		entry(1, 540, 570),
		entry(2, 555, 585),
		entry(3, 585, 600),
	})

	byID := byBookingID(assignments)
	assert.Equal(t, 0, byID[1].ColumnIndex)
	assert.Equal(t, 1, byID[2].ColumnIndex)
	assert.Equal(t, 0, byID[3].ColumnIndex)

	assert.Equal(t, 2, byID[1].TotalColumns)
	assert.Equal(t, 2, byID[2].TotalColumns)
	assert.Equal(t, 1, byID[3].TotalColumns)
}

func TestPackDayLayout_ChainWithPartialOverlap(t *testing.T) {
	// 09:00-09:30, 09:15-09:45, 09:40-10:00: третье пересекается только
	// со вторым, но занимает колонку 0 - на его интервале активны две колонки
	assignments := PackDayLayout([]domain.LayoutEntry{
		entry(1, 540, 570),
		entry(2, 555, 585),
		entry(3, 580, 600),
	})

	byID := byBookingID(assignments)
	assert.Equal(t, 0, byID[1].ColumnIndex)
	assert.Equal(t, 1, byID[2].ColumnIndex)
	assert.Equal(t, 0, byID[3].ColumnIndex)

	assert.Equal(t, 2, byID[1].TotalColumns)
	assert.Equal(t, 2, byID[2].TotalColumns)
	assert.Equal(t, 2, byID[3].TotalColumns)
}

func TestPackDayLayout_TripleOverlap(t *testing.T) {
	assignments := PackDayLayout([]domain.LayoutEntry{
		entry(1, 540, 660),
		entry(2, 560, 620),
		entry(3, 580, 640),
	})

	byID := byBookingID(assignments)
	assert.Equal(t, 0, byID[1].ColumnIndex)
	assert.Equal(t, 1, byID[2].ColumnIndex)
	assert.Equal(t, 2, byID[3].ColumnIndex)

	for id := int64(1); id <= 3; id++ {
		assert.Equal(t, 3, byID[id].TotalColumns)
	}
}

func TestPackDayLayout_NoSharedColumnAmongOverlapping(t *testing.T) {
	// Инвариант: никакие два пересекающихся бронирования не делят колонку
	entries := []domain.LayoutEntry{
		entry(1, 540, 600),
		entry(2, 550, 610),
		entry(3, 560, 620),
		entry(4, 605, 665),
		entry(5, 615, 675),
	}

	assignments := PackDayLayout(entries)
	require.Len(t, assignments, len(entries))

	windows := make(map[int64]domain.TimeWindow)
	for _, e := range entries {
		windows[e.BookingID] = e.Window
	}

	for i, a := range assignments {
		for j, b := range assignments {
			if i == j {
				continue
			}
			if windows[a.BookingID].Overlaps(windows[b.BookingID]) {
				assert.NotEqual(t, a.ColumnIndex, b.ColumnIndex,
					"overlapping bookings %d and %d share column %d", a.BookingID, b.BookingID, a.ColumnIndex)
			}
		}
	}
}

func TestPackDayLayout_DeterministicUnderPermutation(t *testing.T) {
	original := []domain.LayoutEntry{
		entry(1, 540, 570),
		entry(2, 555, 585),
		entry(3, 585, 600),
		entry(4, 550, 580),
	}
	permuted := []domain.LayoutEntry{original[3], original[1], original[0], original[2]}

	first := byBookingID(PackDayLayout(original))
	second := byBookingID(PackDayLayout(permuted))

	assert.Equal(t, first, second)
}

func TestPackDayLayout_EqualStartStableOrder(t *testing.T) {
	// При равном времени начала порядок входа определяет колонки
	assignments := PackDayLayout([]domain.LayoutEntry{
		entry(10, 540, 600),
		entry(20, 540, 600),
	})

	byID := byBookingID(assignments)
	assert.Equal(t, 0, byID[10].ColumnIndex)
	assert.Equal(t, 1, byID[20].ColumnIndex)
}

func TestPackDayLayout_SkipsEmptyWindows(t *testing.T) {
	assignments := PackDayLayout([]domain.LayoutEntry{
		entry(1, 540, 570),
		entry(2, 600, 600), // пустой интервал
	})

	require.Len(t, assignments, 1)
	assert.Equal(t, int64(1), assignments[0].BookingID)
}
