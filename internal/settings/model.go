package settings

import (
	"strconv"
	"time"
)

const (
	GroupTheme    = "theme"
	GroupHomepage = "homepage"
	GroupSEO      = "seo"
	GroupFooter   = "footer"
)

type Setting struct {
	ID        int       `db:"id"`
	Category  string    `db:"category"`
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Values is one settings group as stored, plus typed accessors that fall
// back to a caller-supplied default for unset or malformed entries.
type Values map[string]string

func (v Values) String(key, def string) string {
	if s, ok := v[key]; ok && s != "" {
		return s
	}
	return def
}

func (v Values) Int(key string, def int) int {
	s, ok := v[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func (v Values) Bool(key string, def bool) bool {
	s, ok := v[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

// groupKeys is the allow-list of editable keys per group. Posted fields
// outside the list are dropped, never written.
var groupKeys = map[string][]string{
	GroupTheme:    {"primary_color", "secondary_color", "logo_text", "dark_mode"},
	GroupHomepage: {"hero_title", "hero_subtitle", "about_markdown", "show_featured_gyms", "featured_count"},
	GroupSEO:      {"meta_title", "meta_description", "meta_keywords"},
	GroupFooter:   {"footer_text", "contact_email", "contact_phone", "facebook_url", "instagram_url"},
}

var groupDefaults = map[string]Values{
	GroupTheme: {
		"primary_color":   "#4f46e5",
		"secondary_color": "#10b981",
		"logo_text":       "FeaturesGym",
		"dark_mode":       "false",
	},
	GroupHomepage: {
		"hero_title":         "Find your gym",
		"hero_subtitle":      "Book visits at gyms across the city",
		"about_markdown":     "",
		"show_featured_gyms": "true",
		"featured_count":     "6",
	},
	GroupSEO: {
		"meta_title":       "FeaturesGym",
		"meta_description": "Multi-gym booking platform",
		"meta_keywords":    "gym, fitness, booking",
	},
	GroupFooter: {
		"footer_text":   "",
		"contact_email": "",
		"contact_phone": "",
		"facebook_url":  "",
		"instagram_url": "",
	},
}

func ValidGroup(category string) bool {
	_, ok := groupKeys[category]
	return ok
}
