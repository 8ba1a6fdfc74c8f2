package settings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/auth"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/web"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, activityLog activitylog.Recorder) *Handler {
	return &Handler{
		service: NewService(NewRepository(db), activityLog),
	}
}

func (h *Handler) Show(c *gin.Context) {
	group := c.Param("group")

	values, err := h.service.Group(c.Request.Context(), group)
	if err != nil {
		if errors.Is(err, ErrUnknownGroup) {
			c.Redirect(http.StatusSeeOther, "/settings/theme")
			return
		}
		web.Render(c, "settings.html", gin.H{
			"Title": "Site Settings",
			"Group": group,
			"Flash": &web.Flash{Type: "error", Message: "Database error: " + err.Error()},
		})
		return
	}

	data := gin.H{
		"Title":  "Site Settings",
		"Group":  group,
		"Values": values,
	}
	if group == GroupHomepage {
		data["AboutPreview"] = web.RenderMarkdown(values.String("about_markdown", ""))
	}

	web.Render(c, "settings.html", data)
}

func (h *Handler) Update(c *gin.Context) {
	group := c.Param("group")

	// checkbox fields post a hidden "false" followed by "true" when checked,
	// so the last value wins
	posted := map[string]string{}
	if err := c.Request.ParseForm(); err == nil {
		for key, vals := range c.Request.PostForm {
			if len(vals) > 0 {
				posted[key] = vals[len(vals)-1]
			}
		}
	}

	err := h.service.UpdateGroup(c.Request.Context(), auth.Actor(c), group, posted)
	switch {
	case err == nil:
		web.Success(c, "Settings saved")
	case errors.Is(err, ErrUnknownGroup):
		web.Error(c, "Unknown settings group")
	default:
		web.Error(c, "Database error: "+err.Error())
	}

	web.RedirectBack(c, "/settings/"+group)
}

// Preview renders posted markdown so the homepage editor can show the result
// without saving.
func (h *Handler) Preview(c *gin.Context) {
	var req struct {
		Markdown string `json:"markdown"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "markdown field is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"html":    string(web.RenderMarkdown(req.Markdown)),
	})
}
