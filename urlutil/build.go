package urlutil

import (
	"slices"
	"strconv"
	"strings"
)

// Schemes written with "//" even when the host is empty.
var emptyAuthoritySchemes = []string{"file"}

// Build assembles c into a URL string. Absent components leave no
// punctuation behind and every component is trimmed of surrounding space.
//
// A scheme is followed by "//" when the URL has an authority, or when it
// is a file URL. Any other scheme is written as scheme:path, as in
// mailto:user@example.com or foo:/bar.
func Build(c Components) string {
	scheme := strings.TrimSpace(c.Scheme)
	user := strings.TrimSpace(c.User)
	password := strings.TrimSpace(c.Password)
	host := strings.TrimSpace(c.Host)
	path := strings.TrimSpace(c.Path)
	query := strings.TrimSpace(c.Query)
	fragment := strings.TrimSpace(c.Fragment)

	var b strings.Builder

	authority := host != "" || user != "" || c.Port != nil ||
		slices.Contains(emptyAuthoritySchemes, strings.ToLower(scheme))
	opaque := scheme != "" && !authority && path != "" && !strings.HasPrefix(path, "/")
	switch {
	case scheme != "" && authority:
		b.WriteString(scheme)
		b.WriteString("://")
	case scheme != "":
		b.WriteString(scheme)
		b.WriteByte(':')
	case host != "":
		b.WriteString("//")
	}

	if user != "" {
		b.WriteString(user)
		if password != "" {
			b.WriteByte(':')
			b.WriteString(password)
		}
		b.WriteByte('@')
	}

	b.WriteString(host)

	if c.Port != nil {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(*c.Port))
	}

	switch {
	case opaque:
		b.WriteString(path)
	case path != "":
		// A lone "/" after a host adds nothing.
		rest := strings.TrimLeft(path, "/")
		if rest != "" || host == "" {
			b.WriteByte('/')
			b.WriteString(rest)
		}
	}

	if query != "" {
		b.WriteByte('?')
		b.WriteString(query)
	}

	if fragment != "" {
		b.WriteByte('#')
		b.WriteString(fragment)
	}

	return b.String()
}
