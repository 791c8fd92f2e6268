package sdk

import (
	"context"
	"fmt"
)

// GetAvailability returns the slot picture for a date
func (c *Client) GetAvailability(ctx context.Context, date string) (*Availability, error) {
	var avail Availability
	err := c.get(ctx, "/process/appointments/availability", map[string]string{"date": date}, &avail)
	if err != nil {
		return nil, err
	}
	return &avail, nil
}

// Book reserves a slot for the caller
func (c *Client) Book(ctx context.Context, service, date, timeSlot string) (*Appointment, error) {
	req := &BookRequest{Service: service, Date: date, Time: timeSlot}

	var appt Appointment
	if err := c.post(ctx, "/users/booking", req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// MyAppointments returns the caller's appointments
func (c *Client) MyAppointments(ctx context.Context) ([]*Appointment, error) {
	var appts []*Appointment
	if err := c.get(ctx, "/process/appointments/me", nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// ListAppointments returns every appointment with owner detail (staff only)
func (c *Client) ListAppointments(ctx context.Context) ([]*AppointmentWithUser, error) {
	var results []*AppointmentWithUser
	if err := c.get(ctx, "/process/getAllAppointment", nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ApproveAppointment approves a pending appointment (staff only)
func (c *Client) ApproveAppointment(ctx context.Context, id int64) (*Appointment, error) {
	var appt Appointment
	if err := c.put(ctx, fmt.Sprintf("/appointment/%d/approved", id), nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// RejectAppointment rejects a pending appointment, releasing its slot (staff only)
func (c *Client) RejectAppointment(ctx context.Context, id int64) (*Appointment, error) {
	var appt Appointment
	if err := c.put(ctx, fmt.Sprintf("/appointment/%d/rejected", id), nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}
