package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, q *listing.Query) ([]ScheduleDetail, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ScheduleDetail), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, q *listing.Query) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*ScheduleDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ScheduleDetail), args.Error(1)
}

func (m *MockRepository) Complete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) MarkMissed(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) Cancel(ctx context.Context, id int, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockRepository) MarkReminderSent(ctx context.Context, id int) error {
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

type MockReminderSender struct {
	mock.Mock
}

func (m *MockReminderSender) SendBookingReminder(ctx context.Context, to, name, gymName string, when time.Time) error {
	args := m.Called(ctx, to, name, gymName, when)
	return args.Error(0)
}

func testActor() activitylog.Actor {
	return activitylog.Actor{ID: 1, IPAddress: "10.0.0.1", UserAgent: "test"}
}

func scheduledDetail(id int) *ScheduleDetail {
	return &ScheduleDetail{
		Schedule: Schedule{
			ID:        id,
			UserID:    7,
			GymID:     3,
			Status:    StatusScheduled,
			StartDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			StartTime: "07:30",
		},
		MemberName:  "Asha",
		MemberEmail: "asha@example.com",
		GymName:     "Iron Paradise",
	}
}

func TestCancelRequiresReason(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, new(MockReminderSender), 10)

	for _, reason := range []string{"", "   "} {
		err := service.Cancel(context.Background(), testActor(), 42, reason)
		assert.ErrorIs(t, err, ErrEmptyReason)
	}

	mockRepo.AssertNotCalled(t, "Cancel")
	mockLog.AssertNotCalled(t, "Record")
}

func TestCancelTrimsReasonAndLogs(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, new(MockReminderSender), 10)

	mockRepo.On("GetByID", mock.Anything, 42).Return(scheduledDetail(42), nil)
	mockRepo.On("Cancel", mock.Anything, 42, "gym closed for repairs").Return(nil)
	mockLog.On("Record", mock.Anything, mock.MatchedBy(func(e activitylog.Entry) bool {
		return e.Action == "cancel_booking" && e.UserID == 1
	})).Return(nil)

	err := service.Cancel(context.Background(), testActor(), 42, "  gym closed for repairs  ")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockLog.AssertNumberOfCalls(t, "Record", 1)
}

func TestCompleteTerminalState(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	service := NewService(mockRepo, mockLog, new(MockReminderSender), 10)

	done := scheduledDetail(42)
	done.Status = StatusCompleted
	mockRepo.On("GetByID", mock.Anything, 42).Return(done, nil)
	mockRepo.On("Complete", mock.Anything, 42).Return(ErrNotScheduled)

	err := service.Complete(context.Background(), testActor(), 42)
	assert.ErrorIs(t, err, ErrNotScheduled)
	mockLog.AssertNotCalled(t, "Record")
}

func TestSendReminderMarksSentAfterEnqueue(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	mockMail := new(MockReminderSender)
	service := NewService(mockRepo, mockLog, mockMail, 10)

	sch := scheduledDetail(42)
	mockRepo.On("GetByID", mock.Anything, 42).Return(sch, nil)
	mockMail.On("SendBookingReminder", mock.Anything, "asha@example.com", "Asha", "Iron Paradise",
		mock.MatchedBy(func(when time.Time) bool {
			return when.Hour() == 7 && when.Minute() == 30
		})).Return(nil)
	mockRepo.On("MarkReminderSent", mock.Anything, 42).Return(nil)
	mockLog.On("Record", mock.Anything, mock.Anything).Return(nil)

	err := service.SendReminder(context.Background(), testActor(), 42)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockMail.AssertExpectations(t)
}

func TestSendReminderEnqueueFailureLeavesFlagUnset(t *testing.T) {
	mockRepo := new(MockRepository)
	mockLog := new(MockRecorder)
	mockMail := new(MockReminderSender)
	service := NewService(mockRepo, mockLog, mockMail, 10)

	mockRepo.On("GetByID", mock.Anything, 42).Return(scheduledDetail(42), nil)
	mockMail.On("SendBookingReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("redis down"))

	err := service.SendReminder(context.Background(), testActor(), 42)
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "MarkReminderSent")
	mockLog.AssertNotCalled(t, "Record")
}

func TestSendReminderOnlyOnce(t *testing.T) {
	mockRepo := new(MockRepository)
	mockMail := new(MockReminderSender)
	service := NewService(mockRepo, new(MockRecorder), mockMail, 10)

	sch := scheduledDetail(42)
	sch.ReminderSent = true
	mockRepo.On("GetByID", mock.Anything, 42).Return(sch, nil)

	err := service.SendReminder(context.Background(), testActor(), 42)
	assert.ErrorIs(t, err, ErrReminderAlreadySent)
	mockMail.AssertNotCalled(t, "SendBookingReminder")
}

func TestBuildQueryDateRange(t *testing.T) {
	q := buildQuery(Filter{Status: "scheduled", DateFrom: "2024-02-01", DateTo: "2024-02-29", Page: 1}, 10)
	sql, args := q.BuildCount("SELECT COUNT(*) FROM schedules s")

	assert.Contains(t, sql, "s.status = $1")
	assert.Contains(t, sql, "s.start_date >= $2")
	assert.Contains(t, sql, "s.start_date <= $3")
	assert.Equal(t, "2024-02-01", args[1])
}

func TestBuildQuerySortFallback(t *testing.T) {
	q := buildQuery(Filter{SortBy: "notes; DROP TABLE schedules", Page: 1}, 10)
	sql, _ := q.BuildSelect("SELECT s.* FROM schedules s")

	assert.Contains(t, sql, "ORDER BY s.start_date DESC")
	assert.NotContains(t, sql, "DROP TABLE")
}
