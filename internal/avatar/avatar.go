// Package avatar derives default avatar URLs from a login name.
package avatar

import "net/url"

// DefaultTemplate is the external avatar-generator endpoint. The login is
// interpolated as the path segment before the extension.
const DefaultTemplate = "https://avatars.dicebear.com/api/croodles/"

// Template builds deterministic avatar URLs for new players
type Template struct {
	base string
}

// New creates a Template rooted at the given generator base URL
func New(base string) Template {
	if base == "" {
		base = DefaultTemplate
	}
	return Template{base: base}
}

// URLFor returns the avatar URL for the given login
func (t Template) URLFor(login string) string {
	return t.base + url.PathEscape(login) + ".svg"
}
