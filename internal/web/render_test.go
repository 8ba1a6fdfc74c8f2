package web

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prajapat/featuresgym-sub002/internal/listing"
)

func TestPageURL(t *testing.T) {
	assert.Equal(t, "?page=2&search=Iron&status=pending",
		PageURL("status=pending&search=Iron&page=1", 2))
	assert.Equal(t, "?page=3", PageURL("", 3))
	assert.Equal(t, "?page=1", PageURL("%zz", 1), "malformed query falls back to page only")
}

// The pagination partial must carry the active filters into the Previous and
// Next links, not just the page number.
func TestPaginationPartialKeepsFilterState(t *testing.T) {
	tmpl, err := template.New("pagination.html").
		Funcs(TemplateFuncs()).
		ParseFiles("../../web/templates/pagination.html")
	require.NoError(t, err)

	meta := listing.NewMeta(25, 2, 10)
	data := map[string]interface{}{
		"Meta":    meta,
		"Caption": meta.Caption(),
		"Query":   "status=pending&search=Iron&page=2",
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "pagination", data))
	out := buf.String()

	assert.Contains(t, out, `href="?page=1&amp;search=Iron&amp;status=pending"`,
		"previous link points at the prior page with the filters intact")
	assert.Contains(t, out, `href="?page=3&amp;search=Iron&amp;status=pending"`,
		"next link points at the following page with the filters intact")
}
