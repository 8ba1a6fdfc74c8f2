package owner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, q *listing.Query) ([]OwnerWithStats, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]OwnerWithStats), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, q *listing.Query) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Owner), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) SetApproved(ctx context.Context, id int, approved bool) error {
	args := m.Called(ctx, id, approved)
	return args.Error(0)
}

func (m *MockRepository) SetGymLimit(ctx context.Context, id int, limit int) error {
	args := m.Called(ctx, id, limit)
	return args.Error(0)
}

func (m *MockRepository) CountActiveMembershipsAcrossGyms(ctx context.Context, ownerID int) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) DeleteWithDependents(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

func TestService_UpdateStatus_InvalidStatus(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	// "deleted" is a gym status, not an owner status
	err := service.UpdateStatus(context.Background(), testActor(), 1, "deleted")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	mockRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestService_UpdateStatus_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	mockRepo.On("GetByID", mock.Anything, 4).Return(&Owner{ID: 4, Name: "Ravi", Status: StatusActive}, nil)
	mockRepo.On("UpdateStatus", mock.Anything, 4, StatusSuspended).Return(nil)
	mockLog.On("Record", mock.Anything, mock.MatchedBy(func(e activitylog.Entry) bool {
		return e.Action == "update_owner_status"
	})).Return(nil)

	err := service.UpdateStatus(context.Background(), testActor(), 4, StatusSuspended)
	assert.NoError(t, err)
	mockLog.AssertNumberOfCalls(t, "Record", 1)
}

func TestService_SetGymLimitBounds(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	assert.ErrorIs(t, service.SetGymLimit(context.Background(), testActor(), 4, -1), ErrInvalidGymLimit)
	assert.ErrorIs(t, service.SetGymLimit(context.Background(), testActor(), 4, MaxGymLimit+1), ErrInvalidGymLimit)
	mockRepo.AssertNotCalled(t, "SetGymLimit")

	// zero means unlimited and is allowed
	mockRepo.On("GetByID", mock.Anything, 4).Return(&Owner{ID: 4, Name: "Ravi", GymLimit: 3}, nil)
	mockRepo.On("SetGymLimit", mock.Anything, 4, 0).Return(nil)
	mockLog.On("Record", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, service.SetGymLimit(context.Background(), testActor(), 4, 0))
}

func TestService_Delete_Guarded(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	mockRepo.On("GetByID", mock.Anything, 4).Return(&Owner{ID: 4, Name: "Ravi"}, nil)
	mockRepo.On("CountActiveMembershipsAcrossGyms", mock.Anything, 4).Return(5, nil)

	err := service.Delete(context.Background(), testActor(), 4)
	assert.ErrorIs(t, err, ErrHasActiveMemberships)
	mockRepo.AssertNotCalled(t, "DeleteWithDependents")
}

func TestService_List(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	owners := []OwnerWithStats{{Owner: Owner{ID: 1, Name: "Ravi"}, GymsCount: 2}}
	mockRepo.On("Count", mock.Anything, mock.Anything).Return(1, nil)
	mockRepo.On("List", mock.Anything, mock.Anything).Return(owners, nil)

	result, err := service.List(context.Background(), Filter{Approved: "no", Page: 1})
	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, "Showing 1-1 of 1", result.Meta.Caption())
}

func TestBuildQueryApprovedFilter(t *testing.T) {
	q := buildQuery(Filter{Approved: "no", Page: 1}, 10)
	sql, args := q.BuildCount("SELECT COUNT(*) FROM gym_owners o")
	assert.Contains(t, sql, "o.is_approved = $1")
	assert.Equal(t, false, args[0])

	// unrecognized values add no filter
	q = buildQuery(Filter{Approved: "maybe", Page: 1}, 10)
	sql, _ = q.BuildCount("SELECT COUNT(*) FROM gym_owners o")
	assert.NotContains(t, sql, "is_approved")
}
