package gym

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, q *listing.Query) ([]GymWithOwner, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]GymWithOwner), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, q *listing.Query) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockRepository) ListCities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) SetFeatured(ctx context.Context, id int, featured bool) error {
	args := m.Called(ctx, id, featured)
	return args.Error(0)
}

func (m *MockRepository) HasActiveMemberships(ctx context.Context, gymID int) (bool, error) {
	args := m.Called(ctx, gymID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) DeleteWithDependents(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecorder is a mock implementation of activitylog.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, entry activitylog.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func testActor() activitylog.Actor {
	return activitylog.Actor{ID: 1, IPAddress: "10.0.0.1", UserAgent: "test"}
}

func TestService_List(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	gyms := []GymWithOwner{
		{Gym: Gym{ID: 1, Name: "Iron Paradise", Status: StatusPending}, OwnerName: "Ravi", ActiveMembers: 3},
	}

	mockRepo.On("Count", mock.Anything, mock.Anything).Return(11, nil)
	mockRepo.On("List", mock.Anything, mock.Anything).Return(gyms, nil)
	mockRepo.On("ListCities", mock.Anything).Return([]string{"Mumbai", "Pune"}, nil)

	result, err := service.List(context.Background(), Filter{Status: "pending", Search: "Iron", Page: 1})
	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, 11, result.Meta.TotalCount)
	assert.Equal(t, 2, result.Meta.TotalPages)
	assert.Equal(t, "Showing 1-10 of 11", result.Meta.Caption())
	assert.Equal(t, []string{"Mumbai", "Pune"}, result.Cities)
	mockRepo.AssertExpectations(t)
}

func TestService_UpdateStatus(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	mockRepo.On("GetByID", mock.Anything, 3).Return(&Gym{ID: 3, Name: "Iron Paradise", Status: StatusPending}, nil)
	mockRepo.On("UpdateStatus", mock.Anything, 3, StatusActive).Return(nil)
	mockLog.On("Record", mock.Anything, mock.MatchedBy(func(e activitylog.Entry) bool {
		return e.Action == "update_gym_status" && e.UserType == activitylog.UserTypeAdmin
	})).Return(nil)

	err := service.UpdateStatus(context.Background(), testActor(), 3, StatusActive)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockLog.AssertNumberOfCalls(t, "Record", 1)
}

func TestService_UpdateStatus_InvalidStatus(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	err := service.UpdateStatus(context.Background(), testActor(), 3, "turbo")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// rejected before any read or write
	mockRepo.AssertNotCalled(t, "GetByID")
	mockRepo.AssertNotCalled(t, "UpdateStatus")
	mockLog.AssertNotCalled(t, "Record")
}

func TestService_Delete_RefusedWithActiveMemberships(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	mockRepo.On("GetByID", mock.Anything, 5).Return(&Gym{ID: 5, Name: "Flex Zone"}, nil)
	mockRepo.On("HasActiveMemberships", mock.Anything, 5).Return(true, nil)

	err := service.Delete(context.Background(), testActor(), 5)
	assert.ErrorIs(t, err, ErrHasActiveMemberships)
	mockRepo.AssertNotCalled(t, "DeleteWithDependents")
	mockLog.AssertNotCalled(t, "Record")
}

func TestService_Delete_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	mockRepo.On("GetByID", mock.Anything, 5).Return(&Gym{ID: 5, Name: "Flex Zone"}, nil)
	mockRepo.On("HasActiveMemberships", mock.Anything, 5).Return(false, nil)
	mockRepo.On("DeleteWithDependents", mock.Anything, 5).Return(nil)
	mockLog.On("Record", mock.Anything, mock.MatchedBy(func(e activitylog.Entry) bool {
		return e.Action == "delete_gym"
	})).Return(nil)

	err := service.Delete(context.Background(), testActor(), 5)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockLog.AssertNumberOfCalls(t, "Record", 1)
}

func TestService_Delete_LogFailureDoesNotFailMutation(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	mockRepo.On("GetByID", mock.Anything, 5).Return(&Gym{ID: 5, Name: "Flex Zone"}, nil)
	mockRepo.On("HasActiveMemberships", mock.Anything, 5).Return(false, nil)
	mockRepo.On("DeleteWithDependents", mock.Anything, 5).Return(nil)
	mockLog.On("Record", mock.Anything, mock.Anything).Return(errors.New("log table unavailable"))

	err := service.Delete(context.Background(), testActor(), 5)
	assert.NoError(t, err)
}

func TestService_ToggleFeatured(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	mockRepo.On("GetByID", mock.Anything, 2).Return(&Gym{ID: 2, Name: "Flex Zone", IsFeatured: false, CreatedAt: time.Now()}, nil)
	mockRepo.On("SetFeatured", mock.Anything, 2, true).Return(nil)
	mockLog.On("Record", mock.Anything, mock.Anything).Return(nil)

	featured, err := service.ToggleFeatured(context.Background(), testActor(), 2)
	assert.NoError(t, err)
	assert.True(t, featured)
	mockRepo.AssertExpectations(t)
}

func TestBuildQueryDefaultsAndAllowList(t *testing.T) {
	// arbitrary sort_by falls back to featured-first, newest-first
	q := buildQuery(Filter{SortBy: "evil;--", SortOrder: "asc", Page: 1}, 10)
	sql, _ := q.BuildSelect("SELECT g.* FROM gyms g JOIN gym_owners o ON g.owner_id = o.id")
	assert.Contains(t, sql, "ORDER BY g.is_featured DESC, g.created_at DESC")

	// allow-listed sort key is honored
	q = buildQuery(Filter{SortBy: "name", SortOrder: "asc", Page: 1}, 10)
	sql, _ = q.BuildSelect("SELECT g.* FROM gyms g JOIN gym_owners o ON g.owner_id = o.id")
	assert.Contains(t, sql, "ORDER BY g.name ASC")

	// no explicit status filter hides soft-deleted gyms
	q = buildQuery(Filter{Page: 1}, 10)
	sql, _ = q.BuildSelect("SELECT g.* FROM gyms g JOIN gym_owners o ON g.owner_id = o.id")
	assert.Contains(t, sql, "g.status <> $1")
}
