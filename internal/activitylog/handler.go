package activitylog

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/metrics"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/web"
)

// Handler serves the audit trail page. Reads only, so it talks to the
// repository without a service in between.
type Handler struct {
	repo     Repository
	pageSize int
}

func NewHandler(db *sqlx.DB, pageSize int) *Handler {
	return &Handler{
		repo:     NewRepository(db),
		pageSize: pageSize,
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	userType := c.Query("user_type")
	search := c.Query("search")

	q := listing.NewQuery(h.pageSize).
		WhereEq("user_type", userType).
		WhereSearch(search, "action", "details").
		OrderBy("created_at", listing.Desc).
		Page(page)

	total, err := h.repo.Count(c.Request.Context(), q)
	if err != nil {
		h.renderError(c, err)
		return
	}

	entries, err := h.repo.List(c.Request.Context(), q)
	if err != nil {
		h.renderError(c, err)
		return
	}

	meta := listing.NewMeta(total, q.PageNum(), q.PageSize())
	metrics.RecordListQuery("activity")

	web.Render(c, "activity.html", gin.H{
		"Title":    "Activity Log",
		"Entries":  entries,
		"Meta":     meta,
		"Caption":  meta.Caption(),
		"UserType": userType,
		"Search":   search,
	})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	web.Render(c, "activity.html", gin.H{
		"Title": "Activity Log",
		"Flash": &web.Flash{Type: "error", Message: "Database error: " + err.Error()},
	})
}
