package notification

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Publisher delivers committed notifications to live listeners.
type Publisher interface {
	Publish(n Notification)
}

type Service struct {
	db        *gorm.DB
	publisher Publisher
	log       *zap.Logger
}

// NewService accepts a nil publisher when live delivery is not wanted.
func NewService(db *gorm.DB, publisher Publisher, log *zap.Logger) *Service {
	return &Service{db: db, publisher: publisher, log: log}
}

func (s *Service) List(ctx context.Context, userID int64, f Filter) ([]Notification, error) {
	return NewRepository(s.db).List(ctx, userID, f)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	return NewRepository(s.db).MarkRead(ctx, id, userID)
}

func (s *Service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return NewRepository(s.db).UnreadCount(ctx, userID)
}

// Create appends one notification and pushes it live.
func (s *Service) Create(ctx context.Context, userID int64, message string) (*Notification, error) {
	n := &Notification{UserID: userID, Message: message}
	if err := NewRepository(s.db).Create(ctx, n); err != nil {
		return nil, err
	}
	s.Publish(*n)
	return n, nil
}

// CreateBatch writes the same message for every user inside the caller's
// transaction. The caller publishes the result after commit.
func (s *Service) CreateBatch(ctx context.Context, tx *gorm.DB, userIDs []int64, message string) ([]Notification, error) {
	ns := make([]Notification, 0, len(userIDs))
	for _, id := range userIDs {
		ns = append(ns, Notification{UserID: id, Message: message})
	}
	if err := NewRepository(tx).CreateBatch(ctx, ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// Publish is best-effort; the rows are already durable.
func (s *Service) Publish(ns ...Notification) {
	if s.publisher == nil {
		return
	}
	for _, n := range ns {
		s.publisher.Publish(n)
	}
	if len(ns) > 0 {
		s.log.Debug("notifications published", zap.Int("count", len(ns)))
	}
}
