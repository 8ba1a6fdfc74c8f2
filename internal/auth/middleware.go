package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/activitylog"
	"github.com/gaurav-prajapat/featuresgym-sub002/internal/web"
)

const SessionCookie = "fg_admin_session"

func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// RequireAdmin resolves the session cookie once per request and puts the
// admin identity into the request context. Pages redirect to the login form;
// fetch endpoints get a JSON 401.
func RequireAdmin(sessionSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			reject(c, "Please sign in to continue")
			return
		}

		claims, err := ValidateSession(cookie, sessionSecret)
		if err != nil {
			reject(c, "Session expired, please sign in again")
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_email", claims.Email)
		c.Set("csrf_token", claims.CSRFToken)

		c.Next()
	}
}

func reject(c *gin.Context, message string) {
	if wantsJSON(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
	} else {
		web.Error(c, message)
		c.Redirect(http.StatusSeeOther, "/login")
	}
	c.Abort()
}

// CSRF verifies the per-session token on every state-changing request,
// from the csrf_token form field or the X-CSRF-Token header.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		expected := c.GetString("csrf_token")
		got := c.PostForm("csrf_token")
		if got == "" {
			got = c.GetHeader("X-CSRF-Token")
		}

		if expected == "" || got != expected {
			if wantsJSON(c) {
				c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Invalid CSRF token"})
			} else {
				web.Error(c, "Invalid or missing CSRF token, please retry")
				web.RedirectBack(c, "/dashboard")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

// Actor captures the authenticated admin plus request metadata for the
// activity log.
func Actor(c *gin.Context) activitylog.Actor {
	id, _ := GetAdminID(c)
	return activitylog.Actor{
		ID:        id,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// GetAdminID returns the authenticated admin's id from the request context.
func GetAdminID(c *gin.Context) (int, bool) {
	adminID, exists := c.Get("admin_id")
	if !exists {
		return 0, false
	}

	id, ok := adminID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}
