package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
)

// Render wraps c.HTML, injecting the state every page needs: flash message,
// CSRF token, admin identity and the current query string for links that
// must preserve filter/sort/page state.
func Render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if _, ok := data["Flash"]; !ok {
		data["Flash"] = PopFlash(c)
	}
	data["CSRFToken"] = c.GetString("csrf_token")
	data["AdminEmail"] = c.GetString("admin_email")
	data["Query"] = c.Request.URL.RawQuery

	c.HTML(http.StatusOK, name, data)
}

// RedirectBack sends the admin to the referring page, preserving its
// filter/sort/page query string, with a list-page fallback.
func RedirectBack(c *gin.Context, fallback string) {
	target := c.Request.Referer()
	if target == "" {
		target = fallback
	}
	c.Redirect(http.StatusSeeOther, target)
}

// TemplateFuncs is registered on the HTML engine at server start.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(amount float64) string {
			return fmt.Sprintf("₹%.2f", amount)
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("Jan 2, 2006")
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("Jan 2, 2006 15:04")
		},
		"markdown": RenderMarkdown,
		"pageURL":  PageURL,
	}
}

// PageURL rebuilds the current query string with the page parameter swapped,
// so pagination links carry the active filters and sort along.
func PageURL(rawQuery string, page int) string {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	values.Set("page", strconv.Itoa(page))
	return "?" + values.Encode()
}

// RenderMarkdown converts stored homepage copy to HTML for the settings
// preview pane.
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}
