package domain

// LayoutEntry is a booking reduced to its local-time interval,
// the input of the calendar layout packer
type LayoutEntry struct {
	BookingID int64
	Window    TimeWindow
}

// LayoutAssignment places one booking into a rendering column.
// TotalColumns reflects the maximum number of simultaneously active
// bookings over the booking's own interval, so a booking overlapping
// a single neighbour renders at half width regardless of how many
// columns the whole day needs.
type LayoutAssignment struct {
	BookingID    int64
	ColumnIndex  int // >= 0
	TotalColumns int // >= 1
}
