package booking

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

func NewHandler(db *sqlx.DB, activityLog activitylog.Recorder, reminders ReminderSender, pageSize int) *Handler {
	return &Handler{
		service: NewService(NewRepository(db), activityLog, reminders, pageSize),
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	f := Filter{
		Status:    c.Query("status"),
		GymID:     c.Query("gym_id"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
	}

	result, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		web.Render(c, "bookings.html", gin.H{
			"Title":  "Manage Bookings",
			"Flash":  &web.Flash{Type: "error", Message: "Database error: " + err.Error()},
			"Filter": f,
		})
		return
	}

	web.Render(c, "bookings.html", gin.H{
		"Title":    "Manage Bookings",
		"Bookings": result.Items,
		"Meta":     result.Meta,
		"Caption":  result.Meta.Caption(),
		"Filter":   f,
	})
}

type scheduleRequest struct {
	ScheduleID int `form:"schedule_id" binding:"required,min=1"`
}

func (h *Handler) Complete(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/bookings")
		return
	}

	err := h.service.Complete(c.Request.Context(), auth.Actor(c), req.ScheduleID)
	switch {
	case err == nil:
		web.Success(c, "Booking marked as completed")
	case errors.Is(err, ErrScheduleNotFound):
		web.Error(c, "Booking not found")
	case errors.Is(err, ErrNotScheduled):
		web.Error(c, "Only scheduled bookings can be updated")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/bookings")
}

func (h *Handler) MarkMissed(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/bookings")
		return
	}

	err := h.service.MarkMissed(c.Request.Context(), auth.Actor(c), req.ScheduleID)
	switch {
	case err == nil:
		web.Success(c, "Booking marked as missed")
	case errors.Is(err, ErrScheduleNotFound):
		web.Error(c, "Booking not found")
	case errors.Is(err, ErrNotScheduled):
		web.Error(c, "Only scheduled bookings can be updated")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/bookings")
}

type cancelRequest struct {
	ScheduleID int    `form:"schedule_id" binding:"required,min=1"`
	Reason     string `form:"reason"`
}

func (h *Handler) Cancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/bookings")
		return
	}

	err := h.service.Cancel(c.Request.Context(), auth.Actor(c), req.ScheduleID, req.Reason)
	switch {
	case err == nil:
		web.Success(c, "Booking cancelled")
	case errors.Is(err, ErrEmptyReason):
		web.Error(c, "A cancellation reason is required")
	case errors.Is(err, ErrScheduleNotFound):
		web.Error(c, "Booking not found")
	case errors.Is(err, ErrNotScheduled):
		web.Error(c, "Only scheduled bookings can be cancelled")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/bookings")
}

func (h *Handler) SendReminder(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/bookings")
		return
	}

	err := h.service.SendReminder(c.Request.Context(), auth.Actor(c), req.ScheduleID)
	switch {
	case err == nil:
		web.Success(c, "Reminder queued")
	case errors.Is(err, ErrReminderAlreadySent):
		web.Error(c, "A reminder was already sent for this booking")
	case errors.Is(err, ErrNotScheduled):
		web.Error(c, "Reminders can only be sent for scheduled bookings")
	case errors.Is(err, ErrScheduleNotFound):
		web.Error(c, "Booking not found")
	default:
		web.Error(c, "Could not queue the reminder: "+err.Error())
	}

	web.RedirectBack(c, "/bookings")
}
