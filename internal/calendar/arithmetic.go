package calendar

// RollForward returns day if it is a business day, otherwise the first
// business day after it.
func RollForward[T Day[T]](c *Calendar, day T) T {
	for !c.IsBusinessDay(day) {
		day = day.AddDays(1)
	}
	return day
}

// RollBackward returns day if it is a business day, otherwise the last
// business day before it.
func RollBackward[T Day[T]](c *Calendar, day T) T {
	for !c.IsBusinessDay(day) {
		day = day.AddDays(-1)
	}
	return day
}

// NextBusinessDay returns the first business day strictly after day.
func NextBusinessDay[T Day[T]](c *Calendar, day T) T {
	for {
		day = day.AddDays(1)
		if c.IsBusinessDay(day) {
			return day
		}
	}
}

// PreviousBusinessDay returns the last business day strictly before day.
func PreviousBusinessDay[T Day[T]](c *Calendar, day T) T {
	for {
		day = day.AddDays(-1)
		if c.IsBusinessDay(day) {
			return day
		}
	}
}

// AddBusinessDays rolls day forward and then moves n business days ahead:
//
//	monday + 1 = tuesday
//	friday + 1 = monday
//	sunday + 1 = tuesday
//
// A negative n is handled as SubtractBusinessDays(c, day, -n).
func AddBusinessDays[T Day[T]](c *Calendar, day T, n int) T {
	if n < 0 {
		return SubtractBusinessDays(c, day, -n)
	}

	day = RollForward(c, day)
	for i := 0; i < n; i++ {
		day = NextBusinessDay(c, day)
	}
	return day
}

// SubtractBusinessDays rolls day backward and then moves n business days
// back:
//
//	friday - 1 = thursday
//	monday - 1 = friday
//	sunday - 1 = thursday
//
// A negative n is handled as AddBusinessDays(c, day, -n).
func SubtractBusinessDays[T Day[T]](c *Calendar, day T, n int) T {
	if n < 0 {
		return AddBusinessDays(c, day, -n)
	}

	day = RollBackward(c, day)
	for i := 0; i < n; i++ {
		day = PreviousBusinessDay(c, day)
	}
	return day
}
