package schedule

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// DayEntries конвертирует бронирования в элементы раскладки целевого дня.
// Бронирования, не пересекающие день, и бронирования нулевой длительности
// отбрасываются; переходящие через полночь обрезаются до границ дня.
// Статусы не фильтруются, это забота вызывающего.
func DayEntries(bookings []*domain.Booking, date time.Time, normalizer *Normalizer) []domain.LayoutEntry {
	entries := make([]domain.LayoutEntry, 0, len(bookings))

	for _, booking := range bookings {
		window, ok := bookingWindow(booking, date, normalizer)
		if !ok {
			continue
		}
		entries = append(entries, domain.LayoutEntry{
			BookingID: booking.ID,
			Window:    window,
		})
	}

	return entries
}

// PackDayLayout раскладывает бронирования одного дня по колонкам для отрисовки
// календаря без визуальных пересечений (жадное интервальное разбиение)
//
// Алгоритм:
//  1. Сортировка по времени начала (стабильная - при равном начале сохраняется
//     порядок входа, что делает результат воспроизводимым для одного и того же
//     набора).
//  2. Каждое бронирование кладется в первую колонку, чьё последнее бронирование
//     закончилось не позже его начала; иначе открывается новая колонка.
//  3. Вторым проходом для каждого бронирования считается TotalColumns - число
//     различных колонок среди пересекающихся с ним бронирований (включая его
//     собственную). Это максимум одновременно активных колонок на его интервале,
//     а не глобальное число колонок дня: бронирование, пересекающееся с одним
//     соседом, рендерится в полширины.
//
// Фильтрация по статусу - забота вызывающего: раскладка отрисовывает и
// отменённые бронирования, если их передали
func PackDayLayout(entries []domain.LayoutEntry) []domain.LayoutAssignment {
	// Пустые интервалы не занимают места на календаре
	valid := make([]domain.LayoutEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Window.IsEmpty() {
			valid = append(valid, e)
		}
	}

	if len(valid) == 0 {
		return []domain.LayoutAssignment{}
	}

	sorted := make([]domain.LayoutEntry, len(valid))
	copy(sorted, valid)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Window.StartMinute < sorted[j].Window.StartMinute
	})

	// columnEnds[i] - конец последнего бронирования в колонке i
	columnEnds := make([]int, 0, 4)
	columns := make([]int, len(sorted))

	for i, entry := range sorted {
		placed := false
		for col, end := range columnEnds {
			if end <= entry.Window.StartMinute {
				columns[i] = col
				columnEnds[col] = entry.Window.EndMinute
				placed = true
				break
			}
		}
		if !placed {
			columns[i] = len(columnEnds)
			columnEnds = append(columnEnds, entry.Window.EndMinute)
		}
	}

	assignments := make([]domain.LayoutAssignment, len(sorted))

	for i, entry := range sorted {
		// Колонки, занятые бронированиями, пересекающимися с текущим
		// (включая его собственную колонку)
		touched := make(map[int]struct{}, 2)
		touched[columns[i]] = struct{}{}

		for j, other := range sorted {
			if j == i {
				continue
			}
			if entry.Window.Overlaps(other.Window) {
				touched[columns[j]] = struct{}{}
			}
		}

		assignments[i] = domain.LayoutAssignment{
			BookingID:    entry.BookingID,
			ColumnIndex:  columns[i],
			TotalColumns: len(touched),
		}
	}

	return assignments
}
