package provider

import (
	"context"
	"testing"

	"hostelflow/internal/database/dbtest"
	"hostelflow/internal/domain/auth"
	"hostelflow/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := dbtest.New(t, &auth.User{}, &catalog.HostelService{}, &ServiceProvider{}, &ServiceProviderService{})
	return NewService(db, "serviceprovider", zap.NewNop()), db
}

func countServices(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&catalog.HostelService{}).Where("name = ?", name).Count(&n).Error)
	return n
}

func TestService_Create_GetOrCreatesPredefined(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateRequest{Name: "Bob", Email: "bob@hostel.test", Services: []int64{1}})
	require.NoError(t, err)
	require.Len(t, first.CreatedServices, 1)
	assert.Equal(t, "Laundry", first.CreatedServices[0].Name)
	assert.Equal(t, "Professional laundry services including washing, drying, and ironing.", first.CreatedServices[0].Description)
	assert.Equal(t, int64(1), countServices(t, db, "Laundry"))

	second, err := svc.Create(ctx, CreateRequest{Name: "Carol", Email: "carol@hostel.test", Services: []int64{1}})
	require.NoError(t, err)
	assert.Empty(t, second.CreatedServices)
	assert.Equal(t, int64(1), countServices(t, db, "Laundry"))

	var links int64
	require.NoError(t, db.Model(&ServiceProviderService{}).Count(&links).Error)
	assert.Equal(t, int64(2), links)

	laundry, err := catalog.NewRepository(db).GetByName(ctx, "laundry")
	require.NoError(t, err)
	assert.Equal(t, "Carol", laundry.ProviderName)

	userIDs, err := NewRepository(db).UserIDsForService(ctx, laundry.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{first.Provider.UserID, second.Provider.UserID}, userIDs)
}

func TestService_Create_ProviderIdentity(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateRequest{
		Name: "Dan", Email: "Dan@Hostel.test", Phone: "123", Specialization: "repairs",
		Services: []int64{4, 4, 99},
	})
	require.NoError(t, err)
	assert.Len(t, res.CreatedServices, 1)

	user, err := auth.NewUserRepository(db).GetByID(ctx, res.Provider.UserID)
	require.NoError(t, err)
	assert.True(t, user.IsServiceProvider)
	assert.Equal(t, "Dan", user.Username)
	assert.Equal(t, "dan@hostel.test", user.Email)
	assert.NoError(t, auth.CheckPassword("serviceprovider", user.PasswordHash))

	ids, err := NewRepository(db).ServiceIDsForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestService_Create_DuplicateEmailRollsBack(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Eve", Email: "eve@hostel.test"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Name: "Eve2", Email: "eve@hostel.test", Services: []int64{2}})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	assert.Equal(t, int64(0), countServices(t, db, "Room Cleaning"))
	var users int64
	require.NoError(t, db.Model(&auth.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestService_UpdateAndList(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateRequest{Name: "Fay", Email: "fay@hostel.test", Services: []int64{1, 2}})
	require.NoError(t, err)

	name := "Faye"
	phone := "555"
	roomCleaning, err := catalog.NewRepository(db).GetByName(ctx, "Room Cleaning")
	require.NoError(t, err)
	only := []int64{roomCleaning.ID}

	view, err := svc.Update(ctx, res.Provider.ID, UpdateRequest{Name: &name, Phone: &phone, ServiceIDs: &only})
	require.NoError(t, err)
	assert.Equal(t, "Faye", view.Name)
	assert.Equal(t, "555", view.Phone)
	assert.Equal(t, "fay@hostel.test", view.Email)
	require.Len(t, view.Services, 1)
	assert.Equal(t, "Room Cleaning", view.Services[0].Name)

	stored, err := catalog.NewRepository(db).GetByID(ctx, roomCleaning.ID)
	require.NoError(t, err)
	assert.Equal(t, "Faye", stored.ProviderName)

	bad := []int64{roomCleaning.ID, 999}
	_, err = svc.Update(ctx, res.Provider.ID, UpdateRequest{ServiceIDs: &bad})
	assert.ErrorIs(t, err, ErrUnknownService)

	_, err = svc.Update(ctx, 12345, UpdateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrProviderNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Services, 1)
}

func TestService_Delete(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateRequest{Name: "Gus", Email: "gus@hostel.test", Services: []int64{5}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, res.Provider.ID))
	assert.ErrorIs(t, svc.Delete(ctx, res.Provider.ID), ErrProviderNotFound)

	var links int64
	require.NoError(t, db.Model(&ServiceProviderService{}).Count(&links).Error)
	assert.Zero(t, links)

	_, err = auth.NewUserRepository(db).GetByID(ctx, res.Provider.UserID)
	assert.NoError(t, err)

	_, err = svc.Profile(ctx, res.Provider.UserID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestService_Profile(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, CreateRequest{Name: "Hal", Email: "hal@hostel.test", Specialization: "tech"})
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, res.Provider.UserID)
	require.NoError(t, err)
	assert.Equal(t, res.Provider.ID, profile.ID)
	assert.Equal(t, "hal@hostel.test", profile.User.Email)
	assert.Equal(t, "Hal", profile.User.Username)
	assert.Equal(t, "tech", profile.Specialization)
}
