package urlutil

import (
	"net/url"
	"strings"
)

// IsSameHost checks if targetURL is served by baseHost or one of its
// subdomains (blog.example.com matches example.com). Both sides are compared
// in their normalized form, so Bücher.example and xn--bcher-kva.example match.
func IsSameHost(targetURL string, baseHost string) bool {
	parsed, err := url.Parse(strings.TrimSpace(targetURL))
	if err != nil {
		return false
	}

	host, err := normalizeHost(parsed.Hostname())
	if err != nil || host == "" {
		return false
	}
	baseHost, err = normalizeHost(strings.TrimSuffix(strings.TrimSpace(baseHost), "."))
	if err != nil || baseHost == "" {
		return false
	}

	return host == baseHost || strings.HasSuffix(host, "."+baseHost)
}

// IsHTTPScheme returns true if the URL has an http or https scheme.
// Returns false for empty strings, non-HTTP schemes, or unparseable URLs.
func IsHTTPScheme(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)
	return scheme == "http" || scheme == "https"
}

// IsAbsolute reports whether rawURL has both a scheme and a host.
func IsAbsolute(rawURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
