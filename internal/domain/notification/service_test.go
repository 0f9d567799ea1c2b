package notification

import (
	"context"
	"testing"

	"hostelflow/internal/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(n Notification) {
	m.Called(n)
}

func TestService_MarkRead_OnlyOwner(t *testing.T) {
	db := dbtest.New(t, &Notification{})
	svc := NewService(db, nil, zap.NewNop())
	ctx := context.Background()

	n, err := svc.Create(ctx, 1, "hello")
	require.NoError(t, err)

	err = svc.MarkRead(ctx, n.ID, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.List(ctx, 1, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Read)

	require.NoError(t, svc.MarkRead(ctx, n.ID, 1))
	require.NoError(t, svc.MarkRead(ctx, n.ID, 1))

	count, err := svc.UnreadCount(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.MarkRead(ctx, 9999, 1), ErrNotFound)
}

func TestService_ListFilters(t *testing.T) {
	db := dbtest.New(t, &Notification{})
	svc := NewService(db, nil, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Create(ctx, 1, "first")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, "second")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "someone else")
	require.NoError(t, err)
	require.NoError(t, svc.MarkRead(ctx, first.ID, 1))

	all, err := svc.List(ctx, 1, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Message)

	newest, err := svc.List(ctx, 1, Filter{NewestFirst: true})
	require.NoError(t, err)
	assert.Equal(t, "second", newest[0].Message)

	unread, err := svc.List(ctx, 1, Filter{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "second", unread[0].Message)
}

func TestService_CreateBatchThenPublish(t *testing.T) {
	db := dbtest.New(t, &Notification{})
	pub := new(mockPublisher)
	pub.On("Publish", mock.AnythingOfType("notification.Notification")).Return()
	svc := NewService(db, pub, zap.NewNop())
	ctx := context.Background()

	var created []Notification
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = svc.CreateBatch(ctx, tx, []int64{3, 4}, "New booking")
		return err
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.NotZero(t, created[0].ID)

	pub.AssertNotCalled(t, "Publish", mock.Anything)
	svc.Publish(created...)
	pub.AssertNumberOfCalls(t, "Publish", 2)
}

func TestService_CreateBatchRollsBack(t *testing.T) {
	db := dbtest.New(t, &Notification{})
	svc := NewService(db, nil, zap.NewNop())
	ctx := context.Background()

	_ = db.Transaction(func(tx *gorm.DB) error {
		_, err := svc.CreateBatch(ctx, tx, []int64{3, 4}, "New booking")
		require.NoError(t, err)
		return gorm.ErrInvalidTransaction
	})

	var n int64
	require.NoError(t, db.Model(&Notification{}).Count(&n).Error)
	assert.Zero(t, n)
}
