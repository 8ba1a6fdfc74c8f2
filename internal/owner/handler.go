package owner

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
		Status:    c.Query("status"),
		Approved:  c.Query("approved"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
	}

	result, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		web.Render(c, "owners.html", gin.H{
			"Title":  "Manage Gym Owners",
			"Flash":  &web.Flash{Type: "error", Message: "Database error: " + err.Error()},
			"Filter": f,
		})
		return
	}

	web.Render(c, "owners.html", gin.H{
		"Title":   "Manage Gym Owners",
		"Owners":  result.Items,
		"Meta":    result.Meta,
		"Caption": result.Meta.Caption(),
		"Filter":  f,
	})
}

type updateStatusRequest struct {
	OwnerID int    `form:"owner_id" binding:"required,min=1"`
	Status  string `form:"status" binding:"required"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/owners")
		return
	}

	err := h.service.UpdateStatus(c.Request.Context(), auth.Actor(c), req.OwnerID, req.Status)
	switch {
	case err == nil:
		web.Success(c, "Owner status updated")
	case errors.Is(err, ErrInvalidStatus):
		web.Error(c, "Invalid status value")
	case errors.Is(err, ErrOwnerNotFound):
		web.Error(c, "Gym owner not found")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/owners")
}

type approveRequest struct {
	OwnerID int `form:"owner_id" binding:"required,min=1"`
}

func (h *Handler) Approve(c *gin.Context) {
	var req approveRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/owners")
		return
	}

	err := h.service.Approve(c.Request.Context(), auth.Actor(c), req.OwnerID)
	switch {
	case err == nil:
		web.Success(c, "Owner approved")
	case errors.Is(err, ErrOwnerNotFound):
		web.Error(c, "Gym owner not found")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/owners")
}

type gymLimitRequest struct {
	OwnerID  int `form:"owner_id" binding:"required,min=1"`
	GymLimit int `form:"gym_limit"`
}

func (h *Handler) SetGymLimit(c *gin.Context) {
	var req gymLimitRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/owners")
		return
	}

	err := h.service.SetGymLimit(c.Request.Context(), auth.Actor(c), req.OwnerID, req.GymLimit)
	switch {
	case err == nil:
		web.Success(c, "Gym limit updated")
	case errors.Is(err, ErrInvalidGymLimit):
		web.Error(c, "Gym limit must be between 0 and 100 (0 = unlimited)")
	case errors.Is(err, ErrOwnerNotFound):
		web.Error(c, "Gym owner not found")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/owners")
}

type deleteRequest struct {
	OwnerID int `form:"owner_id" binding:"required,min=1"`
}

func (h *Handler) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/owners")
		return
	}

	err := h.service.Delete(c.Request.Context(), auth.Actor(c), req.OwnerID)
	switch {
	case err == nil:
		web.Success(c, "Owner and their gyms deleted")
	case errors.Is(err, ErrOwnerNotFound):
		web.Error(c, "Gym owner not found")
	case errors.Is(err, ErrHasActiveMemberships):
		web.Error(c, "Cannot delete owner: their gyms still have active memberships")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/owners")
}
