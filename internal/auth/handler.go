package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/logger"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/metrics"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/web"
)

type Handler struct {
	repo          Repository
	activityLog   activitylog.Recorder
	sessionSecret string
}

func NewHandler(db *sqlx.DB, activityLog activitylog.Recorder, sessionSecret string) *Handler {
	return &Handler{
		repo:          NewRepository(db),
		activityLog:   activityLog,
		sessionSecret: sessionSecret,
	}
}

type loginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (h *Handler) ShowLogin(c *gin.Context) {
	// already signed in; skip the form
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		if _, err := ValidateSession(cookie, h.sessionSecret); err == nil {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flash": web.PopFlash(c),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		metrics.RecordLoginAttempt("invalid")
		web.Error(c, "Email and password are required")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	admin, err := h.repo.FindAdminByEmail(c.Request.Context(), req.Email)
	if err != nil || !CheckPassword(admin.PasswordHash, req.Password) {
		metrics.RecordLoginAttempt("failed")
		web.Error(c, "Invalid email or password")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	token, _, err := NewSessionToken(admin.ID, admin.Email, h.sessionSecret)
	if err != nil {
		logger.Errorf("Failed to mint session token: %v", err)
		web.Error(c, "Could not start session, please try again")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if err := h.repo.TouchLastLogin(c.Request.Context(), admin.ID); err != nil {
		logger.Errorf("Failed to record last login for admin %d: %v", admin.ID, err)
	}

	h.recordActivity(c, admin.ID, "login", "Admin signed in")
	metrics.RecordLoginAttempt("success")

	c.SetCookie(SessionCookie, token, int(SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) Logout(c *gin.Context) {
	if adminID, ok := GetAdminID(c); ok {
		h.recordActivity(c, adminID, "logout", "Admin signed out")
	}

	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	web.Success(c, "Signed out")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) recordActivity(c *gin.Context, adminID int, action, details string) {
	err := h.activityLog.Record(c.Request.Context(), activitylog.Entry{
		UserID:    adminID,
		UserType:  activitylog.UserTypeAdmin,
		Action:    action,
		Details:   details,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		logger.Errorf("Failed to record %s activity: %v", action, err)
	}
}
