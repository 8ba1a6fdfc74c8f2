package revenue

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/web"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, activityLog activitylog.Repository) *Handler {
	return &Handler{
		service: NewService(NewRepository(db), activityLog),
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	dash, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		web.Render(c, "dashboard.html", gin.H{
			"Title": "Dashboard",
			"Flash": &web.Flash{Type: "error", Message: "Database error: " + err.Error()},
		})
		return
	}

	web.Render(c, "dashboard.html", gin.H{
		"Title":                "Dashboard",
		"Summary":              dash.Summary,
		"BookingsByStatus":     dash.Summary.BookingsByStatus,
		"MembershipsByPayment": dash.Summary.MembershipsByPayment,
		"TopGyms":              dash.TopGyms,
		"RecentActivity":       dash.RecentActivity,
	})
}

func (h *Handler) Report(c *gin.Context) {
	f := ReportFilter{
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		GymID:    c.Query("gym_id"),
	}

	report, err := h.service.Report(c.Request.Context(), f)
	if err != nil {
		web.Render(c, "revenue.html", gin.H{
			"Title":  "Revenue Report",
			"Flash":  &web.Flash{Type: "error", Message: "Database error: " + err.Error()},
			"Filter": f,
		})
		return
	}

	web.Render(c, "revenue.html", gin.H{
		"Title":   "Revenue Report",
		"Totals":  report.Totals,
		"ByGym":   report.ByGym,
		"Monthly": report.Monthly,
		"TopGyms": report.TopGyms,
		"Filter":  f,
	})
}
