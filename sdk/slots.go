package sdk

import (
	"context"
	"sync"
	"time"

	"github.com/mbeoliero/kit/log"
)

// AvailabilityDebounce is how long the allocator waits after a date change
// before fetching, so scrubbing through a date picker doesn't fire a
// request per keystroke
const AvailabilityDebounce = 300 * time.Millisecond

// bookingAPI is the REST surface the allocator needs. *Client satisfies it;
// tests inject a fake.
type bookingAPI interface {
	GetAvailability(ctx context.Context, date string) (*Availability, error)
	Book(ctx context.Context, service, date, timeSlot string) (*Appointment, error)
}

// SlotAllocator drives the booking form: blocked-date checks, live slot
// occupancy for the picked date, and final submission. The server remains
// the authority on conflicts; the allocator only keeps the user from
// submitting requests that are already known to be impossible.
type SlotAllocator struct {
	api      bookingAPI
	holidays map[string]struct{}

	mu        sync.Mutex
	date      string
	blocked   bool
	booked    map[string]struct{}
	selection string
	fetchGen  uint64
	debounce  *time.Timer

	// afterFunc is swapped out in tests to drive the debounce by hand
	afterFunc     func(d time.Duration, f func()) *time.Timer
	debounceDelay time.Duration
}

// NewSlotAllocator creates an allocator using the package-level holiday list
func NewSlotAllocator(api bookingAPI) *SlotAllocator {
	holidays := make(map[string]struct{}, len(Holidays))
	for _, d := range Holidays {
		holidays[d] = struct{}{}
	}

	return &SlotAllocator{
		api:           api,
		holidays:      holidays,
		booked:        make(map[string]struct{}),
		afterFunc:     time.AfterFunc,
		debounceDelay: AvailabilityDebounce,
	}
}

// IsBlockedDate reports whether the clinic is closed on date: weekends,
// holidays, and anything that isn't a valid calendar date
func (a *SlotAllocator) IsBlockedDate(date string) bool {
	if _, ok := a.holidays[date]; ok {
		return true
	}

	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return true
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// SetDate makes date the active date and schedules an availability fetch.
// Blocked dates never reach the server. Rapid date changes are debounced,
// and a superseded date's response never overwrites the current state.
func (a *SlotAllocator) SetDate(ctx context.Context, date string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.date = date
	a.selection = ""
	a.booked = make(map[string]struct{})
	a.fetchGen++
	gen := a.fetchGen

	if a.debounce != nil {
		a.debounce.Stop()
		a.debounce = nil
	}

	if a.IsBlockedDate(date) {
		a.blocked = true
		return
	}
	a.blocked = false

	a.debounce = a.afterFunc(a.debounceDelay, func() {
		a.fetch(ctx, date, gen)
	})
}

// fetch pulls the booked set for date and applies it only if no newer
// SetDate has happened since. On failure the hint stays empty; the server
// still validates at submit time.
func (a *SlotAllocator) fetch(ctx context.Context, date string, gen uint64) {
	avail, err := a.api.GetAvailability(ctx, date)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.fetchGen != gen {
		return
	}

	if err != nil {
		log.CtxWarn(ctx, "slot allocator: availability fetch for %s failed: %v", date, err)
		return
	}

	booked := make(map[string]struct{}, len(avail.BookedTimes))
	for _, t := range avail.BookedTimes {
		booked[t] = struct{}{}
	}
	a.booked = booked
	a.blocked = avail.Blocked
}

// SelectSlot makes timeSlot the tentative selection. Unknown times and
// times already in the booked set are rejected.
func (a *SlotAllocator) SelectSlot(timeSlot string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.date == "" || a.blocked {
		return ErrDateBlocked
	}

	valid := false
	for _, s := range TimeSlots {
		if s == timeSlot {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidSlot
	}

	if _, taken := a.booked[timeSlot]; taken {
		return ErrSlotTaken
	}

	a.selection = timeSlot
	return nil
}

// Submit books the current selection. The blocked-date and availability
// checks run once more with fresh data right before the POST; the server
// may still reject a concurrent claim, which comes back as ErrSlotTaken
// rather than a fault.
func (a *SlotAllocator) Submit(ctx context.Context, service string) (*Appointment, error) {
	a.mu.Lock()
	date := a.date
	selection := a.selection
	a.mu.Unlock()

	if date == "" || selection == "" {
		return nil, ErrInvalidParam
	}
	if a.IsBlockedDate(date) {
		return nil, ErrDateBlocked
	}

	avail, err := a.api.GetAvailability(ctx, date)
	if err != nil {
		// Fetch failure only loses the hint; the server decides below
		log.CtxWarn(ctx, "slot allocator: pre-submit availability check failed: %v", err)
	} else {
		for _, t := range avail.BookedTimes {
			if t == selection {
				return nil, ErrSlotTaken
			}
		}
	}

	appt, err := a.api.Book(ctx, service, date, selection)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.booked[selection] = struct{}{}
	a.selection = ""
	a.mu.Unlock()

	return appt, nil
}

// Date returns the active date
func (a *SlotAllocator) Date() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.date
}

// Blocked reports whether the active date is closed
func (a *SlotAllocator) Blocked() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.blocked
}

// BookedTimes returns the known-taken slots for the active date
func (a *SlotAllocator) BookedTimes() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]string, 0, len(a.booked))
	for _, s := range TimeSlots {
		if _, taken := a.booked[s]; taken {
			out = append(out, s)
		}
	}
	return out
}

// Selection returns the tentative slot, empty when none is picked
func (a *SlotAllocator) Selection() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selection
}
