package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"melodia/models"
)

// fakeSlotRepo is an in-memory slot store preserving insertion order, which
// stands in for the createdAt ordering of FindByKey.
type fakeSlotRepo struct {
	slots     []models.TimeSlot
	createErr error
}

func (f *fakeSlotRepo) CreateMany(_ context.Context, slots []models.TimeSlot) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.slots = append(f.slots, slots...)
	return nil
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id string) (*models.TimeSlot, error) {
	for i := range f.slots {
		if f.slots[i].ID == id {
			s := f.slots[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotRepo) List(_ context.Context, date string) ([]models.TimeSlot, error) {
	var out []models.TimeSlot
	for _, s := range f.slots {
		if date == "" || s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) FindByKey(_ context.Context, key models.SlotKey) ([]models.TimeSlot, error) {
	var out []models.TimeSlot
	for _, s := range f.slots {
		if s.Key() == key {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) Reserve(_ context.Context, id string) (bool, error) {
	for i := range f.slots {
		if f.slots[i].ID == id && !f.slots[i].IsBooked {
			f.slots[i].IsBooked = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSlotRepo) ReleaseByKey(_ context.Context, key models.SlotKey) error {
	for i := range f.slots {
		if f.slots[i].Key() == key {
			f.slots[i].IsBooked = false
		}
	}
	return nil
}

func (f *fakeSlotRepo) DeleteByID(_ context.Context, id string) error {
	for i := range f.slots {
		if f.slots[i].ID == id {
			f.slots = append(f.slots[:i], f.slots[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeSlotRepo) EnsureIndexes() error { return nil }

type fakeBookingRepo struct {
	bookings  []models.Booking
	insertErr error
}

func (f *fakeBookingRepo) Insert(_ context.Context, b models.Booking) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) List(_ context.Context, userID, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if userID != "" && b.UserID != userID {
			continue
		}
		if date != "" && b.BookingDate != date {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) FindActiveByUserAndKey(_ context.Context, userID string, key models.SlotKey) (*models.Booking, error) {
	for i := range f.bookings {
		b := f.bookings[i]
		if b.UserID == userID && b.Key() == key && b.Active() {
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id, status string) error {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeBookingRepo) CancelByKey(_ context.Context, key models.SlotKey) (int64, error) {
	var n int64
	for i := range f.bookings {
		if f.bookings[i].Key() == key && f.bookings[i].Active() {
			f.bookings[i].Status = models.BookingStatusCancelled
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) Insert(_ context.Context, u models.User) error {
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByAuthUID(_ context.Context, authUID string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].AuthUID == authUID {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		for i := range f.users {
			if f.users[i].ID == id {
				out = append(out, f.users[i])
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) List(_ context.Context, authUID string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if authUID == "" || u.AuthUID == authUID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateFields(_ context.Context, id string, fields map[string]any) error {
	return nil
}

func (f *fakeUserRepo) EnsureIndexes() error { return nil }

func newTestService() (*DefaultScheduleService, *fakeSlotRepo, *fakeBookingRepo, *fakeUserRepo) {
	slots := &fakeSlotRepo{}
	bookings := &fakeBookingRepo{}
	users := &fakeUserRepo{}
	svc := &DefaultScheduleService{Slots: slots, Bookings: bookings, Users: users}
	return svc, slots, bookings, users
}

func seedSlot(slots *fakeSlotRepo, id, date, start, end string, booked bool) {
	slots.slots = append(slots.slots, models.TimeSlot{
		ID: id, Date: date, StartTime: start, EndTime: end,
		IsBooked: booked, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
}

func TestCreateSlotsValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name    string
		entries []models.SlotInput
	}{
		{"empty batch", nil},
		{"missing field", []models.SlotInput{{Date: "2025-09-01", StartTime: "08:00"}}},
		{"bad date", []models.SlotInput{{Date: "09/01/2025", StartTime: "08:00", EndTime: "08:40"}}},
		{"bad time", []models.SlotInput{{Date: "2025-09-01", StartTime: "8am", EndTime: "08:40"}}},
		{"inverted window", []models.SlotInput{{Date: "2025-09-01", StartTime: "09:00", EndTime: "08:40"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSlots(ctx, tc.entries)
			if CodeOf(err) != CodeInvalidArgument {
				t.Errorf("expected invalidArgument, got %v", err)
			}
		})
	}
}

func TestCreateSlotsSkipsDuplicates(t *testing.T) {
	svc, slots, _, _ := newTestService()
	ctx := context.Background()
	seedSlot(slots, "existing", "2025-09-01", "08:00", "08:40", false)

	created, err := svc.CreateSlots(ctx, []models.SlotInput{
		{Date: "2025-09-01", StartTime: "08:00", EndTime: "08:40"}, // already stored
		{Date: "2025-09-01", StartTime: "09:00", EndTime: "09:40"},
		{Date: "2025-09-01", StartTime: "09:00", EndTime: "09:40"}, // repeated in batch
	})
	if err != nil {
		t.Fatalf("CreateSlots: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("expected 1 created slot, got %d", len(created))
	}
	if created[0].StartTime != "09:00" {
		t.Errorf("created wrong slot: %+v", created[0])
	}
	if created[0].ID == "" {
		t.Error("created slot has no ID")
	}
	if len(slots.slots) != 2 {
		t.Errorf("store holds %d slots, want 2", len(slots.slots))
	}
}

func TestCreateSlotsAllExist(t *testing.T) {
	svc, slots, _, _ := newTestService()
	ctx := context.Background()
	seedSlot(slots, "s1", "2025-09-01", "08:00", "08:40", false)

	_, err := svc.CreateSlots(ctx, []models.SlotInput{
		{Date: "2025-09-01", StartTime: "08:00", EndTime: "08:40"},
	})
	if CodeOf(err) != CodeInvalidArgument {
		t.Errorf("expected invalidArgument, got %v", err)
	}
}

func TestCreateSlotsUniqueIndexCollision(t *testing.T) {
	svc, slots, _, _ := newTestService()
	ctx := context.Background()

	// A concurrent batch that slipped past the pre-check trips the unique
	// (date, startTime, endTime) index on insert.
	slots.createErr = mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}

	_, err := svc.CreateSlots(ctx, []models.SlotInput{
		{Date: "2025-09-01", StartTime: "08:00", EndTime: "08:40"},
	})
	if CodeOf(err) != CodeConflict {
		t.Errorf("expected conflict from duplicate key, got %v", err)
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	svc, slots, bookings, users := newTestService()
	ctx := context.Background()
	seedSlot(slots, "s1", "2025-09-01", "08:00", "08:40", false)

	detail, err := svc.CreateBooking(ctx, "s1", "firebase-uid-1")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if detail.Status != models.BookingStatusBooked {
		t.Errorf("status = %q, want booked", detail.Status)
	}
	if detail.BookingDate != "2025-09-01" || detail.StartTime != "08:00" || detail.EndTime != "08:40" {
		t.Errorf("booking window not copied from slot: %+v", detail.Booking)
	}

	// The slot is now reserved and the auth subject has a stub record.
	if got, _ := slots.GetByID(ctx, "s1"); !got.IsBooked {
		t.Error("slot not marked booked")
	}
	if u, _ := users.GetByAuthUID(ctx, "firebase-uid-1"); u == nil {
		t.Error("stub user not created")
	} else if detail.User == nil || detail.User.ID != u.ID {
		t.Error("booking detail does not carry the resolved user")
	}
	if len(bookings.bookings) != 1 {
		t.Fatalf("store holds %d bookings, want 1", len(bookings.bookings))
	}
}

func TestCreateBookingConflicts(t *testing.T) {
	svc, slots, _, _ := newTestService()
	ctx := context.Background()
	seedSlot(slots, "s1", "2025-09-01", "08:00", "08:40", false)

	if _, err := svc.CreateBooking(ctx, "s1", "uid-a"); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// Same slot again, different user.
	if _, err := svc.CreateBooking(ctx, "s1", "uid-b"); CodeOf(err) != CodeConflict {
		t.Errorf("expected conflict for booked slot, got %v", err)
	}

	// Unknown slot.
	if _, err := svc.CreateBooking(ctx, "missing", "uid-a"); CodeOf(err) != CodeNotFound {
		t.Errorf("expected notFound, got %v", err)
	}
}

func TestCreateBookingDuplicateForSameUser(t *testing.T) {
	svc, slots, _, _ := newTestService()
	ctx := context.Background()
	seedSlot(slots, "s1", "2025-09-01", "08:00", "08:40", false)
	// A duplicate slot sharing the same window.
	seedSlot(slots, "s2", "2025-09-01", "08:00", "08:40", false)

	if _, err := svc.CreateBooking(ctx, "s1", "uid-a"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	// Booking the duplicate slot would double-book the same window.
	if _, err := svc.CreateBooking(ctx, "s2", "uid-a"); CodeOf(err) != CodeConflict {
		t.Errorf("expected conflict for same window, got %v", err)
	}
}

func TestCreateBookingCompensatesOnInsertFailure(t *testing.T) {
	svc, slots, bookings, _ := newTestService()
	ctx := context.Background()
	seedSlot(slots, "s1", "2025-09-01", "08:00", "08:40", false)
	bookings.insertErr = errors.New("write failed")

	if _, err := svc.CreateBooking(ctx, "s1", "uid-a"); err == nil {
		t.Fatal("expected error from failed insert")
	}
	// The reservation must have been rolled back.
	if got, _ := slots.GetByID(ctx, "s1"); got.IsBooked {
		t.Error("slot left reserved after booking insert failure")
	}

	bookings.insertErr = nil
	if _, err := svc.CreateBooking(ctx, "s1", "uid-b"); err != nil {
		t.Errorf("slot not bookable after rollback: %v", err)
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	svc, slots, _, _ := newTestService()
	ctx := context.Background()
	seedSlot(slots, "s1", "2025-09-01", "08:00", "08:40", false)

	detail, err := svc.CreateBooking(ctx, "s1", "uid-a")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Wire spelling "canceled" is normalized and the slot is freed.
	updated, err := svc.UpdateBookingStatus(ctx, detail.ID, "canceled")
	if err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}
	if updated.Status != models.BookingStatusCancelled {
		t.Errorf("status = %q, want cancelled", updated.Status)
	}
	if got, _ := slots.GetByID(ctx, "s1"); got.IsBooked {
		t.Error("slot still booked after cancellation")
	}

	// The freed slot can be booked again.
	if _, err := svc.CreateBooking(ctx, "s1", "uid-b"); err != nil {
		t.Errorf("rebooking freed slot: %v", err)
	}
}

func TestUpdateBookingStatusValidation(t *testing.T) {
	svc, slots, _, _ := newTestService()
	ctx := context.Background()
	seedSlot(slots, "s1", "2025-09-01", "08:00", "08:40", false)
	detail, _ := svc.CreateBooking(ctx, "s1", "uid-a")

	if _, err := svc.UpdateBookingStatus(ctx, detail.ID, "done"); CodeOf(err) != CodeInvalidArgument {
		t.Errorf("expected invalidArgument for unknown status, got %v", err)
	}
	if _, err := svc.UpdateBookingStatus(ctx, "missing", "confirmed"); CodeOf(err) != CodeNotFound {
		t.Errorf("expected notFound, got %v", err)
	}
}

func TestDeleteSlotCancelsBookings(t *testing.T) {
	svc, slots, bookings, _ := newTestService()
	ctx := context.Background()
	seedSlot(slots, "s1", "2025-09-01", "08:00", "08:40", false)

	detail, err := svc.CreateBooking(ctx, "s1", "uid-a")
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if err := svc.DeleteSlot(ctx, "s1"); err != nil {
		t.Fatalf("DeleteSlot: %v", err)
	}
	if got, _ := slots.GetByID(ctx, "s1"); got != nil {
		t.Error("slot still present after delete")
	}
	b, _ := bookings.GetByID(ctx, detail.ID)
	if b.Status != models.BookingStatusCancelled {
		t.Errorf("booking status = %q, want cancelled", b.Status)
	}

	if err := svc.DeleteSlot(ctx, "s1"); CodeOf(err) != CodeNotFound {
		t.Errorf("expected notFound on second delete, got %v", err)
	}
}

func TestDeleteDuplicatesKeepsOldest(t *testing.T) {
	svc, slots, _, _ := newTestService()
	ctx := context.Background()
	key := models.SlotKey{Date: "2025-09-01", StartTime: "08:00", EndTime: "08:40"}
	seedSlot(slots, "oldest", key.Date, key.StartTime, key.EndTime, false)
	seedSlot(slots, "dup1", key.Date, key.StartTime, key.EndTime, false)
	seedSlot(slots, "dup2", key.Date, key.StartTime, key.EndTime, true)

	report, err := svc.DeleteDuplicates(ctx, key)
	if err != nil {
		t.Fatalf("DeleteDuplicates: %v", err)
	}
	if report.Deleted != 2 || report.KeptSlotID != "oldest" {
		t.Fatalf("report = %+v, want 2 deleted keeping oldest", report)
	}
	if got, _ := slots.GetByID(ctx, "oldest"); got == nil {
		t.Error("kept slot was deleted")
	}

	// A second run finds nothing left to reconcile.
	again, err := svc.DeleteDuplicates(ctx, key)
	if err != nil {
		t.Fatalf("second DeleteDuplicates: %v", err)
	}
	if again.Deleted != 0 {
		t.Errorf("second run deleted %d, want 0", again.Deleted)
	}
}

func TestDeleteDuplicatesReleasesKeptSlot(t *testing.T) {
	svc, slots, _, _ := newTestService()
	ctx := context.Background()
	key := models.SlotKey{Date: "2025-09-01", StartTime: "08:00", EndTime: "08:40"}
	seedSlot(slots, "kept", key.Date, key.StartTime, key.EndTime, false)
	seedSlot(slots, "dup", key.Date, key.StartTime, key.EndTime, false)

	// Both copies of the window got booked while the duplicate existed.
	if _, err := svc.CreateBooking(ctx, "kept", "uid-a"); err != nil {
		t.Fatalf("CreateBooking kept: %v", err)
	}
	if _, err := svc.CreateBooking(ctx, "dup", "uid-b"); err != nil {
		t.Fatalf("CreateBooking dup: %v", err)
	}

	report, err := svc.DeleteDuplicates(ctx, key)
	if err != nil {
		t.Fatalf("DeleteDuplicates: %v", err)
	}
	if report.Deleted != 1 || report.KeptSlotID != "kept" {
		t.Fatalf("report = %+v", report)
	}

	// The sweep cancelled every booking on the window, so the kept slot
	// must be free again.
	got, _ := slots.GetByID(ctx, "kept")
	if got.IsBooked {
		t.Error("kept slot still marked booked with no active booking left")
	}
	if _, err := svc.CreateBooking(ctx, "kept", "uid-b"); err != nil {
		t.Errorf("kept slot not bookable after reconciliation: %v", err)
	}
}

func TestListBookingsSlotFilter(t *testing.T) {
	svc, slots, _, _ := newTestService()
	ctx := context.Background()
	seedSlot(slots, "s1", "2025-09-01", "08:00", "08:40", false)
	seedSlot(slots, "s2", "2025-09-01", "09:00", "09:40", false)

	b1, err := svc.CreateBooking(ctx, "s1", "uid-a")
	if err != nil {
		t.Fatalf("CreateBooking s1: %v", err)
	}
	if _, err := svc.CreateBooking(ctx, "s2", "uid-b"); err != nil {
		t.Fatalf("CreateBooking s2: %v", err)
	}

	got, err := svc.ListBookings(ctx, models.BookingFilter{SlotID: "s1"})
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(got) != 1 || got[0].ID != b1.ID {
		t.Fatalf("slot filter returned %d bookings", len(got))
	}
	if got[0].User == nil || got[0].User.AuthUID != "uid-a" {
		t.Error("booking user not resolved")
	}

	// Cancelled bookings fall out of the slot view.
	if _, err := svc.UpdateBookingStatus(ctx, b1.ID, "cancelled"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	got, err = svc.ListBookings(ctx, models.BookingFilter{SlotID: "s1"})
	if err != nil {
		t.Fatalf("ListBookings after cancel: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no active bookings for slot, got %d", len(got))
	}

	// The user filter still shows the cancelled booking (history view).
	history, err := svc.ListBookings(ctx, models.BookingFilter{UserID: b1.UserID})
	if err != nil {
		t.Fatalf("ListBookings by user: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected 1 booking in user history, got %d", len(history))
	}
}

func TestListSlots(t *testing.T) {
	svc, slots, _, _ := newTestService()
	ctx := context.Background()
	seedSlot(slots, "s1", "2025-09-01", "08:00", "08:40", false)
	seedSlot(slots, "s2", "2025-09-02", "08:00", "08:40", false)

	got, err := svc.ListSlots(ctx, "2025-09-01")
	if err != nil {
		t.Fatalf("ListSlots: %v", err)
	}
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("date filter returned %d slots", len(got))
	}

	if _, err := svc.ListSlots(ctx, "not-a-date"); CodeOf(err) != CodeInvalidArgument {
		t.Errorf("expected invalidArgument, got %v", err)
	}

	empty, err := svc.ListSlots(ctx, "2025-12-25")
	if err != nil {
		t.Fatalf("ListSlots empty day: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}
