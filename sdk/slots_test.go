package sdk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingAPI is a scriptable bookingAPI
type fakeBookingAPI struct {
	availability map[string]*Availability
	availErr     error
	bookErr      error

	availCalls []string
	bookCalls  int
}

func newFakeBookingAPI() *fakeBookingAPI {
	return &fakeBookingAPI{availability: make(map[string]*Availability)}
}

func (f *fakeBookingAPI) GetAvailability(ctx context.Context, date string) (*Availability, error) {
	f.availCalls = append(f.availCalls, date)
	if f.availErr != nil {
		return nil, f.availErr
	}
	if avail, ok := f.availability[date]; ok {
		return avail, nil
	}
	return &Availability{Date: date, Slots: TimeSlots}, nil
}

func (f *fakeBookingAPI) Book(ctx context.Context, service, date, timeSlot string) (*Appointment, error) {
	f.bookCalls++
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return &Appointment{Id: int64(f.bookCalls), Service: service, Date: date, Time: timeSlot, Status: ReviewStatusPending}, nil
}

// manualTimers replaces the allocator's debounce with hand-fired callbacks
func manualTimers(a *SlotAllocator) *[]func() {
	pending := &[]func(){}
	a.afterFunc = func(d time.Duration, f func()) *time.Timer {
		*pending = append(*pending, f)
		return time.NewTimer(time.Hour)
	}
	return pending
}

func fireLast(t *testing.T, pending *[]func()) {
	t.Helper()
	require.NotEmpty(t, *pending)
	(*pending)[len(*pending)-1]()
}

func TestAllocator_IsBlockedDate(t *testing.T) {
	a := NewSlotAllocator(newFakeBookingAPI())

	t.Run("every holiday is blocked", func(t *testing.T) {
		for _, d := range Holidays {
			assert.True(t, a.IsBlockedDate(d), "holiday %s should be blocked", d)
		}
	})

	t.Run("weekends are blocked", func(t *testing.T) {
		assert.True(t, a.IsBlockedDate("2025-03-01"), "saturday")
		assert.True(t, a.IsBlockedDate("2025-03-02"), "sunday")
		assert.True(t, a.IsBlockedDate("2025-07-05"), "saturday")
		assert.True(t, a.IsBlockedDate("2025-07-06"), "sunday")
	})

	t.Run("regular weekdays are open", func(t *testing.T) {
		assert.False(t, a.IsBlockedDate("2025-03-03"), "monday")
		assert.False(t, a.IsBlockedDate("2025-07-09"), "wednesday")
	})

	t.Run("malformed dates are blocked", func(t *testing.T) {
		assert.True(t, a.IsBlockedDate("not-a-date"))
		assert.True(t, a.IsBlockedDate(""))
	})
}

func TestAllocator_BlockedDateNeverFetches(t *testing.T) {
	api := newFakeBookingAPI()
	a := NewSlotAllocator(api)
	pending := manualTimers(a)

	a.SetDate(context.Background(), "2025-12-25")

	assert.True(t, a.Blocked())
	assert.Empty(t, *pending, "no fetch scheduled for a blocked date")
	assert.Empty(t, api.availCalls)
}

func TestAllocator_FetchAppliesBookedSet(t *testing.T) {
	api := newFakeBookingAPI()
	api.availability["2025-03-03"] = &Availability{
		Date:        "2025-03-03",
		Slots:       TimeSlots,
		BookedTimes: []string{"09:00", "09:30"},
	}
	a := NewSlotAllocator(api)
	pending := manualTimers(a)

	a.SetDate(context.Background(), "2025-03-03")
	fireLast(t, pending)

	assert.Equal(t, []string{"09:00", "09:30"}, a.BookedTimes())

	t.Run("booked slot rejected", func(t *testing.T) {
		assert.ErrorIs(t, a.SelectSlot("09:00"), ErrSlotTaken)
	})

	t.Run("open slot accepted", func(t *testing.T) {
		require.NoError(t, a.SelectSlot("10:00"))
		assert.Equal(t, "10:00", a.Selection())
	})

	t.Run("lunch gap and unknown times rejected", func(t *testing.T) {
		assert.ErrorIs(t, a.SelectSlot("12:00"), ErrInvalidSlot)
		assert.ErrorIs(t, a.SelectSlot("23:59"), ErrInvalidSlot)
	})
}

func TestAllocator_StaleResponseDiscarded(t *testing.T) {
	api := newFakeBookingAPI()
	api.availability["2025-03-03"] = &Availability{Date: "2025-03-03", Slots: TimeSlots, BookedTimes: []string{"08:00"}}
	api.availability["2025-03-04"] = &Availability{Date: "2025-03-04", Slots: TimeSlots, BookedTimes: []string{"14:00"}}
	a := NewSlotAllocator(api)
	pending := manualTimers(a)

	a.SetDate(context.Background(), "2025-03-03")
	a.SetDate(context.Background(), "2025-03-04")

	// The superseded date's fetch resolves late; it must not touch state
	fireLast(t, pending)
	(*pending)[0]()

	assert.Equal(t, "2025-03-04", a.Date())
	assert.Equal(t, []string{"14:00"}, a.BookedTimes())
}

func TestAllocator_FetchFailureFailsOpen(t *testing.T) {
	api := newFakeBookingAPI()
	api.availErr = ErrInternalServer
	a := NewSlotAllocator(api)
	pending := manualTimers(a)

	a.SetDate(context.Background(), "2025-03-03")
	fireLast(t, pending)

	assert.Empty(t, a.BookedTimes(), "hint level fails open to no known bookings")
	assert.NoError(t, a.SelectSlot("09:00"), "selection still allowed, server decides at submit")
}

func TestAllocator_Submit(t *testing.T) {
	t.Run("books the selection", func(t *testing.T) {
		api := newFakeBookingAPI()
		a := NewSlotAllocator(api)
		pending := manualTimers(a)

		a.SetDate(context.Background(), "2025-03-03")
		fireLast(t, pending)
		require.NoError(t, a.SelectSlot("10:00"))

		appt, err := a.Submit(context.Background(), ServiceConsultation)
		require.NoError(t, err)
		assert.Equal(t, "2025-03-03", appt.Date)
		assert.Equal(t, "10:00", appt.Time)
		assert.Equal(t, ReviewStatusPending, appt.Status)
		assert.Empty(t, a.Selection(), "selection clears after booking")
	})

	t.Run("nothing selected", func(t *testing.T) {
		a := NewSlotAllocator(newFakeBookingAPI())
		_, err := a.Submit(context.Background(), ServiceConsultation)
		assert.ErrorIs(t, err, ErrInvalidParam)
	})

	t.Run("revalidation catches a freshly taken slot", func(t *testing.T) {
		api := newFakeBookingAPI()
		a := NewSlotAllocator(api)
		pending := manualTimers(a)

		a.SetDate(context.Background(), "2025-03-03")
		fireLast(t, pending)
		require.NoError(t, a.SelectSlot("10:00"))

		// Another user claims the slot between fetch and submit
		api.availability["2025-03-03"] = &Availability{
			Date: "2025-03-03", Slots: TimeSlots, BookedTimes: []string{"10:00"},
		}

		_, err := a.Submit(context.Background(), ServiceConsultation)
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Equal(t, 0, api.bookCalls, "conflict caught before the POST")
	})

	t.Run("server conflict is a normal rejection", func(t *testing.T) {
		api := newFakeBookingAPI()
		api.bookErr = NewError(CodeSlotTaken, "time slot already booked")
		a := NewSlotAllocator(api)
		pending := manualTimers(a)

		a.SetDate(context.Background(), "2025-03-03")
		fireLast(t, pending)
		require.NoError(t, a.SelectSlot("10:00"))

		_, err := a.Submit(context.Background(), ServiceConsultation)
		require.Error(t, err)
		assert.True(t, IsCode(err, CodeSlotTaken))
	})
}
