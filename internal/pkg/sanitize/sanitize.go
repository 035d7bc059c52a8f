package sanitize

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
)

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	controlPattern = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
)

// Text strips HTML tags and control characters from a single-line field and
// collapses surrounding whitespace.
func Text(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = controlPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}

// Textarea is like Text but keeps line breaks.
func Textarea(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = controlPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Email normalizes an address to its lower-cased addr-spec form. Inputs that
// do not parse as an address are only tag-stripped and lower-cased.
func Email(s string) string {
	s = Text(s)
	if addr, err := mail.ParseAddress(s); err == nil {
		return strings.ToLower(addr.Address)
	}
	return strings.ToLower(s)
}

// Date formats accepted for the schedule field. The long form is what the
// date picker submits.
var dateLayouts = []string{"2006-01-02", "January 2, 2006"}

func Date(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
