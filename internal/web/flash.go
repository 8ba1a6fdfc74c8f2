package web

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "fg_flash"

// Flash is a one-time status message: set on a mutation, read and cleared on
// the next page render.
type Flash struct {
	Type    string
	Message string
}

func (f *Flash) IsError() bool {
	return f != nil && f.Type == "error"
}

func Success(c *gin.Context, message string) {
	setFlash(c, "success", message)
}

func Error(c *gin.Context, message string) {
	setFlash(c, "error", message)
}

func setFlash(c *gin.Context, typ, message string) {
	value := url.QueryEscape(typ + "|" + message)
	c.SetCookie(flashCookie, value, 300, "/", "", false, true)
}

// PopFlash reads and clears the pending flash message, if any.
func PopFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}

	typ, message, found := strings.Cut(decoded, "|")
	if !found || message == "" {
		return nil
	}
	return &Flash{Type: typ, Message: message}
}
