package works

import (
	"regexp"
	"strings"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	nonSlug     = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash   = regexp.MustCompile(`-+`)
)

// ValidSlug reports whether s is lowercase letters and digits in hyphen-separated runs.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// MakeSlug derives a URL-safe slug from a title.
// Example: "Body Works, No. 3" -> "body-works-no-3"
func MakeSlug(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = strings.NewReplacer(" ", "-", "_", "-", ".", "-", "/", "-").Replace(base)
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	return strings.Trim(base, "-")
}
