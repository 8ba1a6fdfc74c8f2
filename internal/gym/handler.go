package gym

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

// List renders the gyms list page with filters, sort and pagination taken
// from the query string so the state stays bookmarkable.
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	f := Filter{
		Status:    c.Query("status"),
		City:      c.Query("city"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
	}

	result, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		web.Render(c, "gyms.html", gin.H{
			"Title":  "Manage Gyms",
			"Flash":  &web.Flash{Type: "error", Message: "Database error: " + err.Error()},
			"Filter": f,
		})
		return
	}

	web.Render(c, "gyms.html", gin.H{
		"Title":   "Manage Gyms",
		"Gyms":    result.Items,
		"Meta":    result.Meta,
		"Caption": result.Meta.Caption(),
		"Cities":  result.Cities,
		"Filter":  f,
	})
}

type updateStatusRequest struct {
	GymID  int    `form:"gym_id" binding:"required,min=1"`
	Status string `form:"status" binding:"required"`
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/gyms")
		return
	}

	err := h.service.UpdateStatus(c.Request.Context(), auth.Actor(c), req.GymID, req.Status)
	switch {
	case err == nil:
		web.Success(c, "Gym status updated")
	case errors.Is(err, ErrInvalidStatus):
		web.Error(c, "Invalid status value")
	case errors.Is(err, ErrGymNotFound):
		web.Error(c, "Gym not found")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/gyms")
}

type deleteRequest struct {
	GymID int `form:"gym_id" binding:"required,min=1"`
}

func (h *Handler) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Redirect(http.StatusSeeOther, "/gyms")
		return
	}

	err := h.service.Delete(c.Request.Context(), auth.Actor(c), req.GymID)
	switch {
	case err == nil:
		web.Success(c, "Gym and its dependent records deleted")
	case errors.Is(err, ErrGymNotFound):
		web.Error(c, "Gym not found")
	case errors.Is(err, ErrHasActiveMemberships):
		web.Error(c, "Cannot delete gym: it still has active memberships")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/gyms")
}

// ToggleFeatured backs the fetch-based featured toggle button and returns a
// small JSON envelope instead of a page.
func (h *Handler) ToggleFeatured(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid gym ID"})
		return
	}

	featured, err := h.service.ToggleFeatured(c.Request.Context(), auth.Actor(c), gymID)
	if err != nil {
		if errors.Is(err, ErrGymNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Gym not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error: " + err.Error()})
		return
	}

	message := "Gym removed from featured"
	if featured {
		message = "Gym marked as featured"
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "is_featured": featured})
}
