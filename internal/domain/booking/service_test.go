package booking

import (
	"context"
	"testing"
	"time"

	"hostelflow/internal/database/dbtest"
	"hostelflow/internal/domain/auth"
	"hostelflow/internal/domain/catalog"
	"hostelflow/internal/domain/notification"
	"hostelflow/internal/domain/provider"
	"hostelflow/internal/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	svc       *Service
	notifs    *notification.Service
	laundryID int64
	provider  int64 // provider identity linked to Laundry
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t,
		&auth.User{}, &catalog.HostelService{},
		&provider.ServiceProvider{}, &provider.ServiceProviderService{},
		&Booking{}, &notification.Notification{},
	)
	ctx := context.Background()

	created, err := provider.NewService(db, "serviceprovider", zap.NewNop()).
		Create(ctx, provider.CreateRequest{Name: "Bob", Email: "bob@hostel.test", Services: []int64{1}})
	require.NoError(t, err)
	require.Len(t, created.CreatedServices, 1)

	f := &fixture{
		db:        db,
		laundryID: created.CreatedServices[0].ID,
		provider:  created.Provider.UserID,
		now:       time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
	}
	f.notifs = notification.NewService(db, nil, zap.NewNop())
	f.svc = NewService(db,
		catalog.NewService(catalog.NewRepository(db)),
		f.notifs,
		time.UTC,
		func() time.Time { return f.now },
		zap.NewNop(),
	)
	return f
}

func (f *fixture) book(t *testing.T, userID int64, date string, slot TimeSlot) (*Booking, error) {
	t.Helper()
	return f.svc.Create(context.Background(), userID, CreateRequest{
		ServiceID: f.laundryID, Date: date, TimeSlot: string(slot),
	})
}

func TestCreate_SameSlotConflicts(t *testing.T) {
	f := newFixture(t)

	first, err := f.book(t, 100, "2025-03-12", Slot0800)
	require.NoError(t, err)
	assert.Equal(t, StatusBooked, first.Status)

	_, err = f.book(t, 101, "2025-03-12", Slot0800)
	assert.ErrorIs(t, err, ErrSlotConflict)

	_, err = f.book(t, 101, "2025-03-12", Slot1000)
	assert.NoError(t, err)
}

func TestCreate_NotifiesLinkedProviders(t *testing.T) {
	f := newFixture(t)

	_, err := f.book(t, 100, "2025-03-12", Slot1400)
	require.NoError(t, err)

	feed, err := f.notifs.List(context.Background(), f.provider, notification.Filter{})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "New booking for Laundry on 2025-03-12 at 14:00-16:00.", feed[0].Message)
	assert.False(t, feed[0].Read)
}

func TestCreate_ConflictWritesNoNotification(t *testing.T) {
	f := newFixture(t)

	_, err := f.book(t, 100, "2025-03-12", Slot0800)
	require.NoError(t, err)
	_, err = f.book(t, 101, "2025-03-12", Slot0800)
	require.ErrorIs(t, err, ErrSlotConflict)

	var n int64
	require.NoError(t, f.db.Model(&notification.Notification{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, 100, CreateRequest{ServiceID: f.laundryID, Date: "12/03/2025", TimeSlot: string(Slot0800)})
	var fe validator.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "date")

	_, err = f.svc.Create(ctx, 100, CreateRequest{ServiceID: f.laundryID, Date: "2025-03-12", TimeSlot: "09:00-11:00"})
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "time_slot")

	_, err = f.svc.Create(ctx, 100, CreateRequest{ServiceID: 999, Date: "2025-03-12", TimeSlot: string(Slot0800)})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUnavailableSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	future, err := f.svc.UnavailableSlots(ctx, f.laundryID, "2025-03-20")
	require.NoError(t, err)
	assert.Empty(t, future)

	// 12:30 on the 10th: the first two bands are over.
	today, err := f.svc.UnavailableSlots(ctx, f.laundryID, "today")
	require.NoError(t, err)
	assert.Equal(t, []TimeSlot{Slot0800, Slot1000}, today)

	_, err = f.book(t, 100, "2025-03-10", Slot1600)
	require.NoError(t, err)
	today, err = f.svc.UnavailableSlots(ctx, f.laundryID, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []TimeSlot{Slot0800, Slot1000, Slot1600}, today)

	_, err = f.book(t, 100, "2025-03-11", Slot1200)
	require.NoError(t, err)
	tomorrow, err := f.svc.UnavailableSlots(ctx, f.laundryID, "Tomorrow")
	require.NoError(t, err)
	assert.Equal(t, []TimeSlot{Slot1200}, tomorrow)

	_, err = f.svc.UnavailableSlots(ctx, f.laundryID, "next week")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUnavailableSlots_EndBoundaryIsExclusive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	atEnd, err := f.svc.UnavailableSlots(ctx, f.laundryID, "today")
	require.NoError(t, err)
	assert.Empty(t, atEnd)

	f.now = f.now.Add(time.Second)
	after, err := f.svc.UnavailableSlots(ctx, f.laundryID, "today")
	require.NoError(t, err)
	assert.Equal(t, []TimeSlot{Slot0800}, after)
}

func TestCancel_FreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.book(t, 100, "2025-03-12", Slot0800)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, b.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	cancelled, err := f.svc.Cancel(ctx, b.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	slots, err := f.svc.UnavailableSlots(ctx, f.laundryID, "2025-03-12")
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = f.book(t, 101, "2025-03-12", Slot0800)
	assert.NoError(t, err)
}

func TestReschedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.book(t, 100, "2025-03-12", Slot0800)
	require.NoError(t, err)
	_, err = f.book(t, 101, "2025-03-12", Slot1000)
	require.NoError(t, err)

	_, err = f.svc.Reschedule(ctx, a.ID, 100, RescheduleRequest{Date: "2025-03-12", TimeSlot: string(Slot1000)})
	assert.ErrorIs(t, err, ErrSlotConflict)

	moved, err := f.svc.Reschedule(ctx, a.ID, 100, RescheduleRequest{Date: "2025-03-13", TimeSlot: string(Slot1000)})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-13", moved.Date)

	_, err = f.svc.Reschedule(ctx, a.ID, 101, RescheduleRequest{Date: "2025-03-14", TimeSlot: string(Slot1000)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRate_RejectsOutOfRangeBeforePersisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.book(t, 100, "2025-03-12", Slot0800)
	require.NoError(t, err)

	_, err = f.svc.Rate(ctx, b.ID, 100, RateRequest{Rating: 6, Comment: "great"})
	var fe validator.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "max", fe["rating"])

	stored, err := NewRepository(f.db).GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Rating)
	assert.Empty(t, stored.Comment)

	rated, err := f.svc.Rate(ctx, b.ID, 100, RateRequest{Rating: 5, Comment: "great"})
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 5, *rated.Rating)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.book(t, 100, "2025-03-12", Slot0800)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, b.ID, 101), ErrNotFound)
	require.NoError(t, f.svc.Delete(ctx, b.ID, 100))
	assert.ErrorIs(t, f.svc.Delete(ctx, b.ID, 100), ErrNotFound)
}

func TestProviderOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.book(t, 100, "2025-03-12", Slot0800)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.provider, b.ID, "done")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// a provider with no link to Laundry cannot touch the booking
	other, err := provider.NewService(f.db, "serviceprovider", zap.NewNop()).
		Create(ctx, provider.CreateRequest{Name: "Zed", Email: "zed@hostel.test", Services: []int64{5}})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, other.Provider.UserID, b.ID, StatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.svc.NotifyCompletion(ctx, other.Provider.UserID, b.ID, ""), ErrNotFound)

	updated, err := f.svc.UpdateStatus(ctx, f.provider, b.ID, StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, updated.Status)

	assigned, err := f.svc.ListAssigned(ctx, f.provider)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "Laundry", assigned[0].ServiceName)

	none, err := f.svc.ListAssigned(ctx, other.Provider.UserID)
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, f.svc.NotifyCompletion(ctx, f.provider, b.ID, ""))
	feed, err := f.notifs.List(ctx, 100, notification.Filter{})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Service completed", feed[0].Message)
}

func TestProviderOperations_CancelledBookingStaysCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// slot given up and taken by someone else
	a, err := f.book(t, 100, "2025-03-12", Slot0800)
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, a.ID, 100)
	require.NoError(t, err)
	_, err = f.book(t, 101, "2025-03-12", Slot0800)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.provider, a.ID, StatusCompleted)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, f.svc.NotifyCompletion(ctx, f.provider, a.ID, ""), ErrCancelled)

	// slot given up and still free
	c, err := f.book(t, 100, "2025-03-12", Slot1000)
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, c.ID, 100)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, f.provider, c.ID, StatusInProgress)
	assert.ErrorIs(t, err, ErrCancelled)

	stored, err := NewRepository(f.db).GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, stored.Status)

	slots, err := f.svc.UnavailableSlots(ctx, f.laundryID, "2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, []TimeSlot{Slot0800}, slots)
}

func TestAskIfCompleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.book(t, 100, "2025-03-12", Slot0800)
	require.NoError(t, err)

	_, err = f.svc.AskIfCompleted(ctx, b.ID, 101)
	assert.ErrorIs(t, err, ErrNotFound)

	n, err := f.svc.AskIfCompleted(ctx, b.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	feed, err := f.notifs.List(ctx, f.provider, notification.Filter{NewestFirst: true})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Contains(t, feed[0].Message, `for service "Laundry" on 2025-03-12 at 08:00-10:00 has been completed.`)
}

func TestSendBookingUpdateAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.book(t, 100, "2025-03-12", Slot0800)
	require.NoError(t, err)
	_, err = f.book(t, 101, "2025-03-12", Slot1000)
	require.NoError(t, err)

	require.NoError(t, f.svc.SendBookingUpdate(ctx, b.ID))
	assert.ErrorIs(t, f.svc.SendBookingUpdate(ctx, 999), ErrNotFound)

	feed, err := f.notifs.List(ctx, 100, notification.Filter{})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Booking update notification", feed[0].Message)

	stats, err := f.svc.DashboardStats(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{TotalServices: 1, TotalBookings: 2, YourBookings: 1}, *stats)

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
