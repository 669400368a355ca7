package datasource

import (
	"regexp"
	"strings"
)

var (
	slugDropRE     = regexp.MustCompile(`[^a-zA-Z0-9\s-]`)
	slugSpaceRE    = regexp.MustCompile(`\s+`)
	slugCollapseRE = regexp.MustCompile(`-+`)
)

// NormalizeID derives a datasource ID from a display name: special
// characters are dropped, whitespace runs become single hyphens, hyphen runs
// collapse, and the result is trimmed and lowercased. "My App 2.0" becomes
// "my-app-20".
func NormalizeID(displayName string) string {
	id := slugDropRE.ReplaceAllString(displayName, "")
	id = slugSpaceRE.ReplaceAllString(id, "-")
	id = slugCollapseRE.ReplaceAllString(id, "-")
	id = strings.Trim(id, "-")

	return strings.ToLower(id)
}
