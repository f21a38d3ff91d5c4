package workday

// DueMinutes returns how many minutes short of the expected shift the
// total is, clamped to [0, expected].
func DueMinutes(expectedMinutes, totalMinutes int) int {
	due := expectedMinutes - totalMinutes
	if due < 0 {
		due = 0
	}
	if due > expectedMinutes {
		due = expectedMinutes
	}
	return due
}

// OvertimeMinutes returns how many minutes beyond the expected shift the
// total is, never negative.
func OvertimeMinutes(expectedMinutes, totalMinutes int) int {
	if totalMinutes > expectedMinutes {
		return totalMinutes - expectedMinutes
	}
	return 0
}
