package membership

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/auth"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/web"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, activityLog activitylog.Recorder, pageSize int) *Handler {
	return &Handler{
		service: NewService(NewRepository(db), activityLog, pageSize),
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	f := Filter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		GymID:         c.Query("gym_id"),
		Search:        c.Query("search"),
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
		Page:          page,
	}

	result, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		web.Render(c, "memberships.html", gin.H{
			"Title":  "Manage Memberships",
			"Flash":  &web.Flash{Type: "error", Message: "Database error: " + err.Error()},
			"Filter": f,
		})
		return
	}

	web.Render(c, "memberships.html", gin.H{
		"Title":       "Manage Memberships",
		"Memberships": result.Items,
		"Meta":        result.Meta,
		"Caption":     result.Meta.Caption(),
		"Filter":      f,
	})
}

type cancelRequest struct {
	MembershipID int `form:"membership_id" binding:"required,min=1"`
}

func (h *Handler) Cancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/memberships")
		return
	}

	err := h.service.Cancel(c.Request.Context(), auth.Actor(c), req.MembershipID)
	switch {
	case err == nil:
		web.Success(c, "Membership cancelled")
	case errors.Is(err, ErrMembershipNotFound):
		web.Error(c, "Membership not found")
	case errors.Is(err, ErrNotActive):
		web.Error(c, "Only active memberships can be cancelled")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/memberships")
}

type extendRequest struct {
	MembershipID int `form:"membership_id" binding:"required,min=1"`
	Days         int `form:"days" binding:"required"`
}

func (h *Handler) Extend(c *gin.Context) {
	var req extendRequest
	if err := c.ShouldBind(&req); err != nil {
		web.Error(c, "Membership and number of days are required")
		web.RedirectBack(c, "/memberships")
		return
	}

	err := h.service.Extend(c.Request.Context(), auth.Actor(c), req.MembershipID, req.Days)
	switch {
	case err == nil:
		web.Success(c, "Membership extended by "+strconv.Itoa(req.Days)+" days")
	case errors.Is(err, ErrInvalidDays):
		web.Error(c, "Extension must be between 1 and 365 days")
	case errors.Is(err, ErrMembershipNotFound):
		web.Error(c, "Membership not found")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/memberships")
}

type paymentStatusRequest struct {
	MembershipID  int    `form:"membership_id" binding:"required,min=1"`
	PaymentStatus string `form:"payment_status" binding:"required"`
}

func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	var req paymentStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/memberships")
		return
	}

	err := h.service.UpdatePaymentStatus(c.Request.Context(), auth.Actor(c), req.MembershipID, req.PaymentStatus)
	switch {
	case err == nil:
		web.Success(c, "Payment status updated")
	case errors.Is(err, ErrInvalidPaymentStatus):
		web.Error(c, "Invalid payment status")
	case errors.Is(err, ErrMembershipNotFound):
		web.Error(c, "Membership not found")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/memberships")
}

func (h *Handler) ListPlans(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))

	result, err := h.service.ListPlans(c.Request.Context(), c.Query("sort_by"), c.Query("sort_order"), page)
	if err != nil {
		web.Render(c, "plans.html", gin.H{
			"Title": "Membership Plans",
			"Flash": &web.Flash{Type: "error", Message: "Database error: " + err.Error()},
		})
		return
	}

	web.Render(c, "plans.html", gin.H{
		"Title":   "Membership Plans",
		"Plans":   result.Items,
		"Meta":    result.Meta,
		"Caption": result.Meta.Caption(),
	})
}
