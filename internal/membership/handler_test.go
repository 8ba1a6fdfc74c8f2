package membership

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, f Filter) (*ListResult, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ListResult), args.Error(1)
}

func (m *MockService) Cancel(ctx context.Context, actor activitylog.Actor, membershipID int) error {
	args := m.Called(ctx, actor, membershipID)
	return args.Error(0)
}

func (m *MockService) Extend(ctx context.Context, actor activitylog.Actor, membershipID, days int) error {
	args := m.Called(ctx, actor, membershipID, days)
	return args.Error(0)
}

func (m *MockService) UpdatePaymentStatus(ctx context.Context, actor activitylog.Actor, membershipID int, paymentStatus string) error {
	args := m.Called(ctx, actor, membershipID, paymentStatus)
	return args.Error(0)
}

func (m *MockService) ListPlans(ctx context.Context, sortBy, sortOrder string, page int) (*PlanListResult, error) {
	args := m.Called(ctx, sortBy, sortOrder, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PlanListResult), args.Error(1)
}

func postForm(router *gin.Engine, path, referer string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestExtendRedirectPreservesListState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockService)
	h := &Handler{service: mockSvc}

	router := gin.New()
	router.POST("/memberships/extend", h.Extend)

	mockSvc.On("Extend", mock.Anything, mock.Anything, 42, 15).Return(nil)

	referer := "/memberships?status=active&sort_by=end_date&page=2"
	w := postForm(router, "/memberships/extend", referer, url.Values{
		"membership_id": {"42"},
		"days":          {"15"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, referer, w.Header().Get("Location"), "redirect keeps the prior filter/sort/page state")

	cookies := w.Result().Cookies()
	var flash string
	for _, c := range cookies {
		if c.Name == "fg_flash" {
			flash, _ = url.QueryUnescape(c.Value)
		}
	}
	assert.Contains(t, flash, "success|")
	assert.Contains(t, flash, "extended by 15 days")
}

func TestExtendInvalidDaysShowsError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockService)
	h := &Handler{service: mockSvc}

	router := gin.New()
	router.POST("/memberships/extend", h.Extend)

	mockSvc.On("Extend", mock.Anything, mock.Anything, 42, -3).Return(ErrInvalidDays)

	w := postForm(router, "/memberships/extend", "/memberships", url.Values{
		"membership_id": {"42"},
		"days":          {"-3"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)

	var flash string
	for _, c := range w.Result().Cookies() {
		if c.Name == "fg_flash" {
			flash, _ = url.QueryUnescape(c.Value)
		}
	}
	assert.Contains(t, flash, "error|")
}

func TestCancelMissingIDRedirectsToList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := new(MockService)
	h := &Handler{service: mockSvc}

	router := gin.New()
	router.POST("/memberships/cancel", h.Cancel)

	w := postForm(router, "/memberships/cancel", "", url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/memberships", w.Header().Get("Location"))
	mockSvc.AssertNotCalled(t, "Cancel")
}
