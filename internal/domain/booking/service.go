package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hostelflow/internal/database"
	"hostelflow/internal/domain/catalog"
	"hostelflow/internal/domain/notification"
	"hostelflow/internal/domain/provider"
	"hostelflow/internal/pkg/validator"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultCompletionMessage = "Service completed"
	bookingUpdateMessage     = "Booking update notification"
)

type catalogReader interface {
	GetByID(ctx context.Context, id int64) (*catalog.HostelService, error)
	Count(ctx context.Context) (int64, error)
}

type notifier interface {
	Create(ctx context.Context, userID int64, message string) (*notification.Notification, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, userIDs []int64, message string) ([]notification.Notification, error)
	Publish(ns ...notification.Notification)
}

type Service struct {
	db      *gorm.DB
	catalog catalogReader
	notifs  notifier
	loc     *time.Location
	now     func() time.Time
	log     *zap.Logger
}

// NewService builds the ledger. loc decides what "today" is; now defaults to
// time.Now when nil.
func NewService(db *gorm.DB, catalog catalogReader, notifs notifier, loc *time.Location, now func() time.Time, log *zap.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Service{db: db, catalog: catalog, notifs: notifs, loc: loc, now: now, log: log}
}

// Create books a slot and notifies every provider linked to the service.
// The booking and its notifications commit together; live pushes follow
// the commit.
func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (*Booking, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	svc, err := s.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	b := &Booking{
		UserID:              userID,
		ServiceID:           svc.ID,
		Date:                req.Date,
		TimeSlot:            req.TimeSlot,
		SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
		Status:              StatusBooked,
	}

	var sent []notification.Notification
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewRepository(tx).Create(ctx, b); err != nil {
			if database.IsUniqueViolation(err) {
				return ErrSlotConflict
			}
			return err
		}

		providerUsers, err := provider.NewRepository(tx).UserIDsForService(ctx, svc.ID)
		if err != nil {
			return fmt.Errorf("load providers: %w", err)
		}

		msg := fmt.Sprintf("New booking for %s on %s at %s.", svc.Name, b.Date, b.TimeSlot)
		sent, err = s.notifs.CreateBatch(ctx, tx, providerUsers, msg)
		if err != nil {
			return fmt.Errorf("notify providers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifs.Publish(sent...)
	s.log.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("service_id", b.ServiceID),
		zap.String("date", b.Date),
		zap.String("time_slot", b.TimeSlot),
		zap.Int("providers_notified", len(sent)),
	)
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]View, error) {
	return NewRepository(s.db).ListViews(ctx, ViewFilter{UserID: userID})
}

func (s *Service) ListAll(ctx context.Context) ([]View, error) {
	return NewRepository(s.db).ListViews(ctx, ViewFilter{})
}

// ListAssigned returns bookings for every service the provider offers.
func (s *Service) ListAssigned(ctx context.Context, providerUserID int64) ([]View, error) {
	ids, err := provider.NewRepository(s.db).ServiceIDsForUser(ctx, providerUserID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return NewRepository(s.db).ListViews(ctx, ViewFilter{ServiceIDs: ids})
}

func (s *Service) Cancel(ctx context.Context, id, userID int64) (*Booking, error) {
	repo := NewRepository(s.db)
	b, err := repo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	b.Status = StatusCancelled
	if err := repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Reschedule moves a booking; the store rejects a move onto a held slot.
func (s *Service) Reschedule(ctx context.Context, id, userID int64, req RescheduleRequest) (*Booking, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	repo := NewRepository(s.db)
	b, err := repo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	b.Date = req.Date
	b.TimeSlot = req.TimeSlot
	if err := repo.Save(ctx, b); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}
	return b, nil
}

// Rate records a 1-5 rating and comment. Status is not checked.
func (s *Service) Rate(ctx context.Context, id, userID int64, req RateRequest) (*Booking, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	repo := NewRepository(s.db)
	b, err := repo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	rating := req.Rating
	b.Rating = &rating
	b.Comment = strings.TrimSpace(req.Comment)
	if err := repo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	repo := NewRepository(s.db)
	if _, err := repo.GetOwned(ctx, id, userID); err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

// UnavailableSlots lists, in band order, the slots that cannot be booked for
// a service on a day: held by a live booking, or already over when the day
// is today.
func (s *Service) UnavailableSlots(ctx context.Context, serviceID int64, dateInput string) ([]TimeSlot, error) {
	now := s.now().In(s.loc)
	day, err := ParseDay(dateInput, now)
	if err != nil {
		return nil, err
	}
	date := day.Format(dateLayout)

	taken, err := NewRepository(s.db).TakenSlots(ctx, serviceID, date)
	if err != nil {
		return nil, err
	}
	held := make(map[TimeSlot]bool, len(taken))
	for _, t := range taken {
		held[TimeSlot(t)] = true
	}

	isToday := date == now.Format(dateLayout)

	out := []TimeSlot{}
	for _, slot := range AllSlots {
		if held[slot] || (isToday && now.After(slot.EndOn(day, s.loc))) {
			out = append(out, slot)
		}
	}
	return out, nil
}

// UpdateStatus lets a provider move a booking of one of their services to
// in_progress or completed.
func (s *Service) UpdateStatus(ctx context.Context, providerUserID, id int64, status string) (*Booking, error) {
	if status != StatusInProgress && status != StatusCompleted {
		return nil, ErrInvalidStatus
	}

	b, err := s.assigned(ctx, providerUserID, id)
	if err != nil {
		return nil, err
	}

	b.Status = status
	if err := NewRepository(s.db).Save(ctx, b); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}
	return b, nil
}

// NotifyCompletion tells the booking owner their service is done.
func (s *Service) NotifyCompletion(ctx context.Context, providerUserID, id int64, message string) error {
	b, err := s.assigned(ctx, providerUserID, id)
	if err != nil {
		return err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		message = defaultCompletionMessage
	}
	_, err = s.notifs.Create(ctx, b.UserID, message)
	return err
}

// AskIfCompleted lets the owner ping every provider of the booked service.
func (s *Service) AskIfCompleted(ctx context.Context, id, userID int64) (int, error) {
	b, err := NewRepository(s.db).GetOwned(ctx, id, userID)
	if err != nil {
		return 0, err
	}

	svc, err := s.catalog.GetByID(ctx, b.ServiceID)
	if err != nil {
		return 0, err
	}

	var sent []notification.Notification
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providerUsers, err := provider.NewRepository(tx).UserIDsForService(ctx, b.ServiceID)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("User asked if booking %d for service \"%s\" on %s at %s has been completed.",
			b.ID, svc.Name, b.Date, b.TimeSlot)
		sent, err = s.notifs.CreateBatch(ctx, tx, providerUsers, msg)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.notifs.Publish(sent...)
	return len(sent), nil
}

// SendBookingUpdate sends the generic update notice to the booking owner.
func (s *Service) SendBookingUpdate(ctx context.Context, id int64) error {
	b, err := NewRepository(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.notifs.Create(ctx, b.UserID, bookingUpdateMessage)
	return err
}

func (s *Service) DashboardStats(ctx context.Context, userID int64) (*DashboardStats, error) {
	services, err := s.catalog.Count(ctx)
	if err != nil {
		return nil, err
	}
	repo := NewRepository(s.db)
	total, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	mine, err := repo.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{TotalServices: services, TotalBookings: total, YourBookings: mine}, nil
}

// assigned finds a live booking among the services linked to the provider.
// Cancelled bookings have given up their slot and stay cancelled.
func (s *Service) assigned(ctx context.Context, providerUserID, id int64) (*Booking, error) {
	ids, err := provider.NewRepository(s.db).ServiceIDsForUser(ctx, providerUserID)
	if err != nil {
		return nil, err
	}
	b, err := NewRepository(s.db).GetForServices(ctx, id, ids)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusCancelled {
		return nil, ErrCancelled
	}
	return b, nil
}
