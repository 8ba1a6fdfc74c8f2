package member

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

func (m *MockRepository) List(ctx context.Context, q *listing.Query) ([]MemberWithStats, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MemberWithStats), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, q *listing.Query) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) CountActiveMemberships(ctx context.Context, memberID int) (int, error) {
	args := m.Called(ctx, memberID)
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

func TestToggleStatusFlips(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	mockRepo.On("GetByID", mock.Anything, 9).Return(&Member{ID: 9, Name: "Asha", Status: StatusActive}, nil)
	mockRepo.On("UpdateStatus", mock.Anything, 9, StatusInactive).Return(nil)
	mockLog.On("Record", mock.Anything, mock.Anything).Return(nil)

	newStatus, err := service.ToggleStatus(context.Background(), testActor(), 9)
	assert.NoError(t, err)
	assert.Equal(t, StatusInactive, newStatus)
	mockLog.AssertNumberOfCalls(t, "Record", 1)
}

func TestDeleteGuardedByActiveMembership(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, 10)

	mockRepo.On("GetByID", mock.Anything, 9).Return(&Member{ID: 9, Name: "Asha"}, nil)
	mockRepo.On("CountActiveMemberships", mock.Anything, 9).Return(1, nil)

	err := service.Delete(context.Background(), testActor(), 9)
	assert.ErrorIs(t, err, ErrHasActiveMemberships)
	mockRepo.AssertNotCalled(t, "DeleteWithDependents")
	mockLog.AssertNotCalled(t, "Record")
}

func TestBuildQueryAlwaysScopedToMembers(t *testing.T) {
	q := buildQuery(Filter{Search: "asha", Page: 1}, 10)
	sql, args := q.BuildCount("SELECT COUNT(*) FROM users u")
	assert.Contains(t, sql, "u.role = $1")
	assert.Equal(t, RoleMember, args[0])
}
