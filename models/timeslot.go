package models

import "time"

// TimeSlot is a bookable lesson window on a calendar day.
type TimeSlot struct {
	ID        string    `bson:"id" json:"id"`
	Date      string    `bson:"date" json:"date"`           // "2006-01-02"
	StartTime string    `bson:"startTime" json:"startTime"` // "15:04"
	EndTime   string    `bson:"endTime" json:"endTime"`     // "15:04"
	IsBooked  bool      `bson:"isBooked" json:"isBooked"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SlotKey is the value tuple that identifies a slot's time window.
// Slots and bookings are correlated by this tuple, not by a stored reference.
type SlotKey struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Key returns the slot's value tuple.
func (s TimeSlot) Key() SlotKey {
	return SlotKey{Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime}
}

// SlotInput is one entry of a batch-create request.
type SlotInput struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DuplicateReport describes the outcome of a duplicate-slot reconciliation.
type DuplicateReport struct {
	Deleted    int      `json:"deleted"`
	DeletedIDs []string `json:"deletedIds"`
	KeptSlotID string   `json:"keptSlotId,omitempty"`
}
