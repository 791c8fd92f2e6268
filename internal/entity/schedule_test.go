package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()
	require.Len(t, slots, 16)
	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "11:30", slots[7])
	assert.Equal(t, "13:00", slots[8], "lunch hour has no slot")
	assert.Equal(t, "16:30", slots[15])

	// Callers get a copy, not the backing array
	slots[0] = "00:00"
	assert.Equal(t, "08:00", TimeSlots()[0])
}

func TestValidSlot(t *testing.T) {
	for _, s := range TimeSlots() {
		assert.True(t, ValidSlot(s), "slot %s", s)
	}

	assert.False(t, ValidSlot("12:00"), "lunch gap")
	assert.False(t, ValidSlot("12:30"), "lunch gap")
	assert.False(t, ValidSlot("07:30"), "before opening")
	assert.False(t, ValidSlot("17:00"), "after closing")
	assert.False(t, ValidSlot("9:00"), "slots are zero padded")
	assert.False(t, ValidSlot(""))
}

func TestIsWeekend(t *testing.T) {
	cases := []struct {
		date    string
		weekend bool
	}{
		{"2025-03-01", true},  // saturday
		{"2025-03-02", true},  // sunday
		{"2025-03-03", false}, // monday
		{"2025-03-07", false}, // friday
		{"2025-07-05", true},  // saturday
	}
	for _, c := range cases {
		got, err := IsWeekend(c.date)
		require.NoError(t, err, c.date)
		assert.Equal(t, c.weekend, got, c.date)
	}

	_, err := IsWeekend("03/01/2025")
	assert.Error(t, err)
}
