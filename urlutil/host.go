package urlutil

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// zoneSep separates an IPv6 address from its zone inside brackets.
const zoneSep = "%25"

// normalizeHost lower-cases ASCII hosts and converts internationalized
// names to their punycode form. IPv6 literals keep their brackets and
// their zone as given.
func normalizeHost(host string) (string, error) {
	if host == "" {
		return "", nil
	}
	if strings.HasPrefix(host, "[") {
		if addr, zone, ok := strings.Cut(host, zoneSep); ok {
			return strings.ToLower(addr) + zoneSep + zone, nil
		}
		return strings.ToLower(host), nil
	}
	if isASCII(host) {
		return strings.ToLower(host), nil
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", err
	}
	return strings.ToLower(ascii), nil
}

// escapeZone re-encodes the zone of a bracketed IPv6 host, which net/url
// hands back decoded: [fe80::1%en0] becomes [fe80::1%25en0].
func escapeZone(host string) string {
	if !strings.HasPrefix(host, "[") {
		return host
	}
	i := strings.IndexByte(host, '%')
	end := strings.LastIndexByte(host, ']')
	if i < 0 || end < i {
		return host
	}
	return host[:i] + zoneSep + url.PathEscape(host[i+1:end]) + host[end:]
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
