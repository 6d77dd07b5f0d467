package models

import "time"

// Booking statuses. "canceled" on the wire is normalized to "cancelled" before persisting.
const (
	BookingStatusPending   = "pending"
	BookingStatusBooked    = "booked"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a user's claim on a slot's time window. The slot's date and times
// are copied by value at booking time; there is no foreign key to the slot.
type Booking struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	BookingDate string    `bson:"bookingDate" json:"bookingDate"` // "2006-01-02"
	StartTime   string    `bson:"startTime" json:"startTime"`
	EndTime     string    `bson:"endTime" json:"endTime"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Key returns the time-window tuple the booking was made against.
func (b Booking) Key() SlotKey {
	return SlotKey{Date: b.BookingDate, StartTime: b.StartTime, EndTime: b.EndTime}
}

// Active reports whether the booking still holds its slot.
func (b Booking) Active() bool {
	return b.Status != BookingStatusCancelled
}

// BookingDetail is a booking with its user resolved for display.
type BookingDetail struct {
	Booking
	User *User `json:"user,omitempty"`
}

// BookingFilter narrows ListBookings. Zero values mean "no filter".
type BookingFilter struct {
	UserID string
	Date   string
	SlotID string
}
