package urlutil

import (
	"regexp"
	"strings"
)

var repeatedSlashes = regexp.MustCompile(`/{2,}`)

// normalizePath applies the enabled path steps in a fixed order: dot
// segments, then empty segments, then the trailing slash. Each step can
// expose work for the next one ("/a/./" -> "/a/" -> "/a").
func normalizePath(path string, policy PathPolicy) string {
	if path == "" {
		return ""
	}
	if policy.WithoutDotSegments {
		path = removeDotSegments(path)
	}
	if policy.WithoutEmptySegments {
		path = repeatedSlashes.ReplaceAllString(path, "/")
	}
	if policy.WithoutTrailingSlash {
		path = removeTrailingSlash(path)
	}
	return path
}

// removeDotSegments implements RFC 3986 section 5.2.4.
func removeDotSegments(in string) string {
	var out []string
	pop := func() {
		if len(out) > 0 {
			out = out[:len(out)-1]
		}
	}

	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			pop()
		case in == "/..":
			in = "/"
			pop()
		case in == "." || in == "..":
			in = ""
		default:
			// Move the first segment, with its leading slash, to the output.
			start := 0
			if in[0] == '/' {
				start = 1
			}
			end := strings.IndexByte(in[start:], '/')
			if end < 0 {
				out = append(out, in)
				in = ""
			} else {
				out = append(out, in[:start+end])
				in = in[start+end:]
			}
		}
	}

	return strings.Join(out, "")
}

// removeTrailingSlash drops one trailing slash but leaves a bare "/" alone.
func removeTrailingSlash(path string) string {
	if path == "/" || !strings.HasSuffix(path, "/") {
		return path
	}
	return path[:len(path)-1]
}
