package entity

import "time"

// clinic hours: half-hour slots, morning 08:00-11:30 and afternoon 13:00-16:30
var timeSlots = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

// TimeSlots returns the clinic's bookable times in display order
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// ValidSlot reports whether t is one of the clinic's bookable times
func ValidSlot(t string) bool {
	for _, s := range timeSlots {
		if s == t {
			return true
		}
	}
	return false
}

// IsWeekend reports whether date (YYYY-MM-DD) falls on Saturday or Sunday
func IsWeekend(date string) (bool, error) {
	d, err := ParseDate(date)
	if err != nil {
		return false, err
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday, nil
}
