package member

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
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
	}

	result, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		web.Render(c, "members.html", gin.H{
			"Title":  "Manage Members",
			"Flash":  &web.Flash{Type: "error", Message: "Database error: " + err.Error()},
			"Filter": f,
		})
		return
	}

	web.Render(c, "members.html", gin.H{
		"Title":   "Manage Members",
		"Members": result.Items,
		"Meta":    result.Meta,
		"Caption": result.Meta.Caption(),
		"Filter":  f,
	})
}

// ToggleStatus backs the fetch-based status button on the members table.
func (h *Handler) ToggleStatus(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid member ID"})
		return
	}

	newStatus, err := h.service.ToggleStatus(c.Request.Context(), auth.Actor(c), memberID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Member is now " + newStatus, "status": newStatus})
}

type deleteRequest struct {
	MemberID int `form:"member_id" binding:"required,min=1"`
}

func (h *Handler) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/members")
		return
	}

	err := h.service.Delete(c.Request.Context(), auth.Actor(c), req.MemberID)
	switch {
	case err == nil:
		web.Success(c, "Member deleted")
	case errors.Is(err, ErrMemberNotFound):
		web.Error(c, "Member not found")
	case errors.Is(err, ErrHasActiveMemberships):
		web.Error(c, "Cannot delete member: they still have an active membership")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/members")
}
