package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/lmxriel/petcare/internal/config"
	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAppointmentService() *AppointmentService {
	cfg := &config.Config{}
	cfg.Clinic.Holidays = []string{"2025-12-25", "2025-01-01"}
	return NewAppointmentService(nil, cfg)
}

func TestDateBlocked(t *testing.T) {
	s := testAppointmentService()

	cases := []struct {
		date    string
		blocked bool
	}{
		{"2025-12-25", true},  // holiday on a thursday
		{"2025-01-01", true},  // holiday on a wednesday
		{"2025-03-01", true},  // saturday
		{"2025-03-02", true},  // sunday
		{"2025-03-03", false}, // monday
		{"2025-12-23", false}, // tuesday before the holiday
	}

	for _, c := range cases {
		blocked, err := s.DateBlocked(c.date)
		require.NoError(t, err, c.date)
		assert.Equal(t, c.blocked, blocked, c.date)
	}
}

// nextOpenDate returns the next weekday at least a week out, formatted as
// a calendar date, so booking validation tests never trip the past-date or
// weekend checks
func nextOpenDate() string {
	d := time.Now().AddDate(0, 0, 7)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(entity.DateLayout)
}

func nextWeekendDate() string {
	d := time.Now().AddDate(0, 0, 7)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(entity.DateLayout)
}

func TestBookValidation(t *testing.T) {
	s := testAppointmentService()
	ctx := context.Background()
	open := nextOpenDate()

	t.Run("unknown service", func(t *testing.T) {
		_, err := s.Book(ctx, 1, &BookRequest{Service: "Grooming", Date: open, Time: "09:00"})
		assert.ErrorIs(t, err, errcode.ErrInvalidService)
	})

	t.Run("weekend date", func(t *testing.T) {
		_, err := s.Book(ctx, 1, &BookRequest{
			Service: string(constant.AppointmentTypeConsultation), Date: nextWeekendDate(), Time: "09:00",
		})
		assert.ErrorIs(t, err, errcode.ErrDateBlocked)
	})

	t.Run("past date", func(t *testing.T) {
		_, err := s.Book(ctx, 1, &BookRequest{
			Service: string(constant.AppointmentTypeConsultation), Date: "2023-06-05", Time: "09:00",
		})
		assert.ErrorIs(t, err, errcode.ErrInvalidParam)
	})

	t.Run("time outside the slot grid", func(t *testing.T) {
		for _, slot := range []string{"12:00", "07:30", "17:00", "9:00"} {
			_, err := s.Book(ctx, 1, &BookRequest{
				Service: string(constant.AppointmentTypeConsultation), Date: open, Time: slot,
			})
			assert.ErrorIs(t, err, errcode.ErrInvalidSlot, slot)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := s.Book(ctx, 1, &BookRequest{
			Service: string(constant.AppointmentTypeConsultation), Date: "06/05/2030", Time: "09:00",
		})
		assert.ErrorIs(t, err, errcode.ErrInvalidParam)
	})
}

func TestDateBlockedRejectsMalformedDates(t *testing.T) {
	s := testAppointmentService()

	for _, date := range []string{"", "25-12-2025", "2025/12/25", "junk"} {
		_, err := s.DateBlocked(date)
		assert.Error(t, err, date)
	}
}

func TestPastDate(t *testing.T) {
	day := func(offset int) time.Time {
		d, err := entity.ParseDate(time.Now().AddDate(0, 0, offset).Format(entity.DateLayout))
		require.NoError(t, err)
		return d
	}

	assert.True(t, pastDate(day(-1)))
	assert.False(t, pastDate(day(0)), "today is still bookable")
	assert.False(t, pastDate(day(1)))
}

func TestBookingWireFieldNames(t *testing.T) {
	var req BookRequest
	body := `{"appointment_type":"Consultation","appointment_date":"2030-06-03","timeschedule":"10:00"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, "Consultation", req.Service)
	assert.Equal(t, "2030-06-03", req.Date)
	assert.Equal(t, "10:00", req.Time)

	out, err := json.Marshal(&Availability{
		Date:        "2030-06-03",
		Slots:       []string{"08:00"},
		BookedTimes: []string{"09:00"},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"booked":["09:00"]`)
}
